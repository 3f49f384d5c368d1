// Package task implements the task-board repository on SQLite.
package task

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

const table = "tasks"

var columns = []string{
	"id", "title", "description", "assigned_to", "project_id", "status", "priority",
	"due_date", "created_at", "updated_at", "completed_at",
}

// Repo provides task persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new task repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a task and returns the stored row.
func (r *Repo) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Insert(table).
		Columns("title", "description", "assigned_to", "project_id", "status", "priority",
			"due_date", "created_at", "completed_at").
		Values(t.Title, t.Description, sqlite.NullID(t.AssignedTo), sqlite.NullID(t.ProjectID),
			string(t.Status), string(t.Priority), sqlite.NullMillis(t.DueDate),
			sqlite.ToMillis(t.CreatedAt), sqlite.NullMillis(t.CompletedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert task: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "task", t.Title)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("task id: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns a task by primary key.
// Returns domain.ErrNotFound if the task does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sqlite.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get task: %w", err)
	}

	t, err := scanTask(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "task", id)
	}
	return t, nil
}

// List returns tasks matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Select(columns...).From(table).OrderBy("created_at DESC", "id DESC")
	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Priority != nil {
		b = b.Where(squirrel.Eq{"priority": string(*filter.Priority)})
	}
	if filter.AssignedTo != nil {
		b = b.Where(squirrel.Eq{"assigned_to": *filter.AssignedTo})
	}
	if filter.ProjectID != nil {
		b = b.Where(squirrel.Eq{"project_id": *filter.ProjectID})
	}
	if filter.CreatedFrom != nil {
		b = b.Where(squirrel.GtOrEq{"created_at": sqlite.ToMillis(*filter.CreatedFrom)})
	}
	if filter.CreatedTo != nil {
		b = b.Where(squirrel.Lt{"created_at": sqlite.ToMillis(*filter.CreatedTo)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tasks: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update and returns the stored row.
func (r *Repo) Update(ctx context.Context, id int64, params domain.TaskUpdateParams) (*domain.Task, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sqlite.Builder().Update(table).
		Set("updated_at", sqlite.ToMillis(params.UpdatedAt)).
		Where(squirrel.Eq{"id": id})
	if params.Title != nil {
		b = b.Set("title", *params.Title)
	}
	if params.Description != nil {
		b = b.Set("description", *params.Description)
	}
	if params.AssignedTo != nil {
		b = b.Set("assigned_to", sqlite.NullID(params.AssignedTo))
	}
	if params.ProjectID != nil {
		b = b.Set("project_id", sqlite.NullID(params.ProjectID))
	}
	if params.Status != nil {
		b = b.Set("status", string(*params.Status))
	}
	if params.Priority != nil {
		b = b.Set("priority", string(*params.Priority))
	}
	if params.DueDate != nil {
		b = b.Set("due_date", sqlite.NullMillis(params.DueDate))
	}
	if params.CompletedAt != nil {
		b = b.Set("completed_at", sqlite.NullMillis(params.CompletedAt))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update task: %w", err)
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "task", id)
	}
	if err := sqlite.ExpectAffected(res, "task", id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// UnassignEmployee clears assigned_to on every task of the employee and
// returns how many tasks were touched.
func (r *Repo) UnassignEmployee(ctx context.Context, employeeID int64, at time.Time) (int64, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx,
		`UPDATE tasks SET assigned_to = NULL, updated_at = ? WHERE assigned_to = ?`, sqlite.ToMillis(at), employeeID)
	if err != nil {
		return 0, fmt.Errorf("unassign tasks of employee %d: %w", employeeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unassign tasks of employee %d: %w", employeeID, err)
	}
	return n, nil
}

// Delete removes a task. Transactions referencing it keep their row with
// task_id nulled.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return sqlite.MapDeleteError(err, "task", id)
	}
	return sqlite.ExpectAffected(res, "task", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		t                       domain.Task
		assignedTo, projectID   sql.NullInt64
		status, priority        string
		due, updated, completed sql.NullInt64
		created                 int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &assignedTo, &projectID, &status, &priority,
		&due, &created, &updated, &completed); err != nil {
		return nil, err
	}
	t.AssignedTo = sqlite.IDPtr(assignedTo)
	t.ProjectID = sqlite.IDPtr(projectID)
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.TaskPriority(priority)
	t.DueDate = sqlite.TimePtr(due)
	t.CreatedAt = sqlite.FromMillis(created)
	t.UpdatedAt = sqlite.TimePtr(updated)
	t.CompletedAt = sqlite.TimePtr(completed)
	return &t, nil
}
