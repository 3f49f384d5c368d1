// Package insight keeps assistant replies on SQLite. Rows are append-only.
package insight

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

// Repo provides insight persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new insight repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create appends an insight and returns its id.
func (r *Repo) Create(ctx context.Context, in *domain.AIInsight) (int64, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx,
		`INSERT INTO ai_insights (type, data, insight, confidence, generated_at) VALUES (?, ?, ?, ?, ?)`,
		string(in.Type), in.Data, in.Insight, in.Confidence, sqlite.ToMillis(in.GeneratedAt))
	if err != nil {
		return 0, sqlite.MapError(err, "insight", in.Type)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insight id: %w", err)
	}
	return id, nil
}

// List returns the newest insights first, optionally of one agent type.
// A non-positive limit returns everything.
func (r *Repo) List(ctx context.Context, typ domain.AgentType, limit int) ([]*domain.AIInsight, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().
		Select("id", "type", "data", "insight", "confidence", "generated_at").
		From("ai_insights").
		OrderBy("generated_at DESC", "id DESC")
	if typ != "" {
		b = b.Where(squirrel.Eq{"type": string(typ)})
	}
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list insights: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	defer rows.Close()

	insights := []*domain.AIInsight{}
	for rows.Next() {
		var (
			in        domain.AIInsight
			typ       string
			generated int64
		)
		if err := rows.Scan(&in.ID, &typ, &in.Data, &in.Insight, &in.Confidence, &generated); err != nil {
			return nil, fmt.Errorf("scan insight: %w", err)
		}
		in.Type = domain.AgentType(typ)
		in.GeneratedAt = sqlite.FromMillis(generated)
		insights = append(insights, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return insights, nil
}
