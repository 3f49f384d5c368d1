// Package allocation implements the allocation repository on SQLite.
package allocation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

const table = "allocations"

var columns = []string{
	"id", "resource", "amount", "assigned_to", "site", "status", "date", "notes", "created_at", "updated_at",
}

// Repo provides allocation persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new allocation repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts an allocation and returns the stored row.
func (r *Repo) Create(ctx context.Context, a *domain.Allocation) (*domain.Allocation, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert(table).
		Columns("resource", "amount", "assigned_to", "site", "status", "date", "notes", "created_at").
		Values(a.Resource, a.Amount, sqlite.NullID(a.AssignedTo), a.Site, string(a.Status),
			sqlite.ToMillis(a.Date), a.Notes, sqlite.ToMillis(a.CreatedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert allocation: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "allocation", a.Resource)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("allocation id: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns an allocation by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Allocation, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get allocation: %w", err)
	}

	a, err := scanAllocation(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "allocation", id)
	}
	return a, nil
}

// List returns allocations matching the filter, most recent date first.
func (r *Repo) List(ctx context.Context, filter domain.AllocationFilter) ([]*domain.Allocation, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From(table).OrderBy("date DESC", "id DESC")
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.AssignedTo != nil {
		b = b.Where(squirrel.Eq{"assigned_to": *filter.AssignedTo})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list allocations: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	allocations := []*domain.Allocation{}
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return allocations, nil
}

// UpdateStatus moves an allocation to a new status and returns the stored row.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status domain.AllocationStatus, at time.Time) (*domain.Allocation, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx,
		`UPDATE allocations SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), sqlite.ToMillis(at), id)
	if err != nil {
		return nil, sqlite.MapError(err, "allocation", id)
	}
	if err := sqlite.ExpectAffected(res, "allocation", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes an allocation.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM allocations WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "allocation", id)
	}
	return sqlite.ExpectAffected(res, "allocation", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAllocation(row scanner) (*domain.Allocation, error) {
	var (
		a                   domain.Allocation
		assignedTo, updated sql.NullInt64
		status              string
		date, created       int64
	)
	if err := row.Scan(&a.ID, &a.Resource, &a.Amount, &assignedTo, &a.Site, &status,
		&date, &a.Notes, &created, &updated); err != nil {
		return nil, err
	}
	a.AssignedTo = sqlite.IDPtr(assignedTo)
	a.Status = domain.AllocationStatus(status)
	a.Date = sqlite.FromMillis(date)
	a.CreatedAt = sqlite.FromMillis(created)
	a.UpdatedAt = sqlite.TimePtr(updated)
	return &a, nil
}
