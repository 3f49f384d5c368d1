// Package report stores generated reports on SQLite.
package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

var columns = []string{"id", "title", "type", "content", "period", "generated_by", "project_id", "generated_at"}

// Repo provides report persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new report repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create stores a report and returns the stored row.
func (r *Repo) Create(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert("reports").
		Columns("title", "type", "content", "period", "generated_by", "project_id", "generated_at").
		Values(rep.Title, rep.Type, rep.Content, rep.Period, rep.GeneratedBy,
			sqlite.NullID(rep.ProjectID), sqlite.ToMillis(rep.GeneratedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert report: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "report", rep.Title)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("report id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a report by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From("reports").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get report: %w", err)
	}

	rep, err := scanReport(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "report", id)
	}
	return rep, nil
}

// List returns reports newest first, optionally of one type.
func (r *Repo) List(ctx context.Context, typ string) ([]*domain.Report, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From("reports").OrderBy("generated_at DESC", "id DESC")
	if typ != "" {
		b = b.Where(squirrel.Eq{"type": typ})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reports: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*domain.Report, error) {
	var (
		rep       domain.Report
		projectID sql.NullInt64
		generated int64
	)
	if err := row.Scan(&rep.ID, &rep.Title, &rep.Type, &rep.Content, &rep.Period, &rep.GeneratedBy,
		&projectID, &generated); err != nil {
		return nil, err
	}
	rep.ProjectID = sqlite.IDPtr(projectID)
	rep.GeneratedAt = sqlite.FromMillis(generated)
	return &rep, nil
}
