// Package employee implements the roster repository on SQLite.
package employee

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

const table = "employees"

var columns = []string{
	"id", "name", "role", "skills", "phone", "email", "availability",
	"status", "joined_date", "salary", "created_at", "updated_at",
}

// Repo provides employee persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new employee repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts an employee and returns the stored row.
func (r *Repo) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert(table).
		Columns("name", "role", "skills", "phone", "email", "availability",
			"status", "joined_date", "salary", "created_at").
		Values(e.Name, e.Role, sqlite.EncodeStrings(e.Skills), e.Phone, e.Email, string(e.Availability),
			string(e.Status), sqlite.ToMillis(e.JoinedDate), e.Salary, sqlite.ToMillis(e.CreatedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert employee: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "employee", e.Name)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("employee id: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns an employee by primary key.
// Returns domain.ErrNotFound if the employee does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get employee: %w", err)
	}

	e, err := scanEmployee(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "employee", id)
	}
	return e, nil
}

// GetByIDs returns the employees with the given ids in unspecified order.
// Missing ids are simply absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Employee, error) {
	if len(ids) == 0 {
		return []*domain.Employee{}, nil
	}
	return r.list(ctx, sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": ids}))
}

// List returns employees matching the filter ordered by name.
func (r *Repo) List(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error) {
	b := sqlite.Builder().Select(columns...).From(table).OrderBy("name ASC", "id ASC")
	if filter.Role != "" {
		b = b.Where(squirrel.Eq{"role": filter.Role})
	}
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Availability != nil {
		b = b.Where(squirrel.Eq{"availability": string(*filter.Availability)})
	}
	return r.list(ctx, b)
}

// Update applies a partial update and returns the stored row.
func (r *Repo) Update(ctx context.Context, id int64, params domain.EmployeeUpdateParams) (*domain.Employee, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Update(table).
		Set("updated_at", sqlite.ToMillis(params.UpdatedAt)).
		Where(squirrel.Eq{"id": id})
	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.Role != nil {
		b = b.Set("role", *params.Role)
	}
	if params.Skills != nil {
		b = b.Set("skills", sqlite.EncodeStrings(*params.Skills))
	}
	if params.Phone != nil {
		b = b.Set("phone", *params.Phone)
	}
	if params.Email != nil {
		b = b.Set("email", *params.Email)
	}
	if params.Availability != nil {
		b = b.Set("availability", string(*params.Availability))
	}
	if params.Status != nil {
		b = b.Set("status", string(*params.Status))
	}
	if params.Salary != nil {
		b = b.Set("salary", *params.Salary)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update employee: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "employee", id)
	}
	if err := sqlite.ExpectAffected(res, "employee", id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes an employee. Task and allocation references are nulled
// by the schema's ON DELETE SET NULL.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "employee", id)
	}
	return sqlite.ExpectAffected(res, "employee", id)
}

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]*domain.Employee, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list employees: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := []*domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*domain.Employee, error) {
	var (
		e                   domain.Employee
		skills              string
		availability, state string
		joined, created     int64
		updated             sql.NullInt64
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Role, &skills, &e.Phone, &e.Email, &availability,
		&state, &joined, &e.Salary, &created, &updated); err != nil {
		return nil, err
	}
	e.Skills = sqlite.DecodeStrings(skills)
	e.Availability = domain.Availability(availability)
	e.Status = domain.EmployeeStatus(state)
	e.JoinedDate = sqlite.FromMillis(joined)
	e.CreatedAt = sqlite.FromMillis(created)
	e.UpdatedAt = sqlite.TimePtr(updated)
	return &e, nil
}
