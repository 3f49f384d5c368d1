// Package setting stores key/value preferences on SQLite.
package setting

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

// Repo provides settings persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new settings repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Get returns the value stored under key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var (
		s       domain.Setting
		updated int64
	)
	err := q.QueryRowContext(ctx, `SELECT key, value, updated_at FROM settings WHERE key = ?`, key).
		Scan(&s.Key, &s.Value, &updated)
	if err != nil {
		return nil, sqlite.MapError(err, "setting", key)
	}
	s.UpdatedAt = sqlite.FromMillis(updated)
	return &s, nil
}

// Set creates or replaces a setting.
func (r *Repo) Set(ctx context.Context, key, value string, at time.Time) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	_, err := q.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, sqlite.ToMillis(at))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// All returns every setting ordered by key.
func (r *Repo) All(ctx context.Context) ([]*domain.Setting, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := []*domain.Setting{}
	for rows.Next() {
		var (
			s       domain.Setting
			updated int64
		)
		if err := rows.Scan(&s.Key, &s.Value, &updated); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		s.UpdatedAt = sqlite.FromMillis(updated)
		settings = append(settings, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}
