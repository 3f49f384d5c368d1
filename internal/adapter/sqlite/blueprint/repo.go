// Package blueprint implements drawing-revision storage on SQLite.
package blueprint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

const table = "blueprints"

// columns excludes content; listings never load the blob.
var columns = []string{"id", "name", "version", "size", "path", "checksum", "project_id", "uploaded_at"}

// Repo provides blueprint persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new blueprint repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create stores a revision including its content. A duplicate (name, version)
// pair yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *domain.Blueprint) (*domain.Blueprint, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert(table).
		Columns("name", "version", "size", "path", "checksum", "content", "project_id", "uploaded_at").
		Values(b.Name, b.Version, b.Size, b.Path, b.Checksum, b.Content,
			sqlite.NullID(b.ProjectID), sqlite.ToMillis(b.UploadedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert blueprint: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "blueprint", fmt.Sprintf("%s v%d", b.Name, b.Version))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("blueprint id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns revision metadata without content.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Blueprint, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get blueprint: %w", err)
	}

	b, err := scanBlueprint(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "blueprint", id)
	}
	return b, nil
}

// GetContent returns the stored bytes of a revision.
func (r *Repo) GetContent(ctx context.Context, id int64) ([]byte, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var content []byte
	err := q.QueryRowContext(ctx, `SELECT content FROM blueprints WHERE id = ?`, id).Scan(&content)
	if err != nil {
		return nil, sqlite.MapError(err, "blueprint", id)
	}
	return content, nil
}

// LatestByName returns the highest version stored under name, or
// domain.ErrNotFound when there is none.
func (r *Repo) LatestByName(ctx context.Context, name string) (*domain.Blueprint, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"name": name}).OrderBy("version DESC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest blueprint: %w", err)
	}

	b, err := scanBlueprint(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blueprint %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("latest blueprint %q: %w", name, err)
	}
	return b, nil
}

// FindByChecksum returns revisions whose content hashes to checksum.
func (r *Repo) FindByChecksum(ctx context.Context, checksum string) ([]*domain.Blueprint, error) {
	return r.list(ctx, squirrel.Eq{"checksum": checksum})
}

// List returns revision metadata ordered by name and version, optionally
// restricted to one project.
func (r *Repo) List(ctx context.Context, projectID *int64) ([]*domain.Blueprint, error) {
	if projectID != nil {
		return r.list(ctx, squirrel.Eq{"project_id": *projectID})
	}
	return r.list(ctx, nil)
}

func (r *Repo) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Blueprint, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From(table).OrderBy("name ASC", "version DESC")
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blueprints: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blueprints: %w", err)
	}
	defer rows.Close()

	blueprints := []*domain.Blueprint{}
	for rows.Next() {
		bp, err := scanBlueprint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blueprint: %w", err)
		}
		blueprints = append(blueprints, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list blueprints: %w", err)
	}
	return blueprints, nil
}

// Delete removes a revision.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM blueprints WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "blueprint", id)
	}
	return sqlite.ExpectAffected(res, "blueprint", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlueprint(row scanner) (*domain.Blueprint, error) {
	var (
		b         domain.Blueprint
		projectID sql.NullInt64
		uploaded  int64
	)
	if err := row.Scan(&b.ID, &b.Name, &b.Version, &b.Size, &b.Path, &b.Checksum, &projectID, &uploaded); err != nil {
		return nil, err
	}
	b.ProjectID = sqlite.IDPtr(projectID)
	b.UploadedAt = sqlite.FromMillis(uploaded)
	return &b, nil
}
