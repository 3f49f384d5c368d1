// Package project implements the project repository on SQLite.
package project

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

var columns = []string{
	"id", "name", "location", "start_date", "end_date", "status", "budget", "spent", "created_at",
}

// Repo provides project persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new project repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a project. Spent always starts at zero.
func (r *Repo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert("projects").
		Columns("name", "location", "start_date", "end_date", "status", "budget", "spent", "created_at").
		Values(p.Name, p.Location, sqlite.NullMillis(p.StartDate), sqlite.NullMillis(p.EndDate),
			string(p.Status), p.Budget, 0.0, sqlite.ToMillis(p.CreatedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert project: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "project", p.Name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("project id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a project by primary key.
// Returns domain.ErrNotFound if the project does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From("projects").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get project: %w", err)
	}

	p, err := scanProject(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "project", id)
	}
	return p, nil
}

// List returns all projects ordered by id.
func (r *Repo) List(ctx context.Context) ([]*domain.Project, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From("projects").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list projects: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// AddSpent adjusts spent by delta, flooring the result at zero.
// It is the only write path for spent.
func (r *Repo) AddSpent(ctx context.Context, id int64, delta float64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx,
		`UPDATE projects SET spent = MAX(0, spent + ?) WHERE id = ?`, delta, id)
	if err != nil {
		return sqlite.MapError(err, "project", id)
	}
	return sqlite.ExpectAffected(res, "project", id)
}

// Delete removes a project. Fails with domain.ErrConflict while tasks,
// materials, transactions or blueprints still reference it.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "project", id)
	}
	return sqlite.ExpectAffected(res, "project", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*domain.Project, error) {
	var (
		p          domain.Project
		start, end sql.NullInt64
		status     string
		created    int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Location, &start, &end, &status, &p.Budget, &p.Spent, &created); err != nil {
		return nil, err
	}
	p.StartDate = sqlite.TimePtr(start)
	p.EndDate = sqlite.TimePtr(end)
	p.Status = domain.ProjectStatus(status)
	p.CreatedAt = sqlite.FromMillis(created)
	return &p, nil
}
