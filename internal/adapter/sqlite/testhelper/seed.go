package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

func insert(t *testing.T, store *sqlite.Store, query string, args ...any) int64 {
	t.Helper()
	res, err := store.DB().ExecContext(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("testhelper: insert: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("testhelper: last insert id: %v", err)
	}
	return id
}

// SeedProject inserts a project with the given budget and spent.
func SeedProject(t *testing.T, store *sqlite.Store, budget, spent float64) int64 {
	t.Helper()
	return insert(t, store,
		`INSERT INTO projects (name, location, status, budget, spent, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"Test Project", "Test Site", string(domain.ProjectStatusInProgress), budget, spent,
		sqlite.ToMillis(time.Now()),
	)
}

// SeedEmployee inserts an active employee with the given availability.
func SeedEmployee(t *testing.T, store *sqlite.Store, name string, availability domain.Availability) int64 {
	t.Helper()
	now := sqlite.ToMillis(time.Now())
	return insert(t, store,
		`INSERT INTO employees (name, role, availability, status, joined_date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		name, "Mason", string(availability), string(domain.EmployeeStatusActive), now, now,
	)
}

// SeedTask inserts a task. assignedTo may be nil.
func SeedTask(t *testing.T, store *sqlite.Store, title string, status domain.TaskStatus, assignedTo *int64, due *time.Time) int64 {
	t.Helper()
	return insert(t, store,
		`INSERT INTO tasks (title, assigned_to, status, priority, due_date, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		title, sqlite.NullID(assignedTo), string(status), string(domain.TaskPriorityMedium),
		sqlite.NullMillis(due), sqlite.ToMillis(time.Now()),
	)
}

// SeedMaterial inserts a material. minQuantity may be nil.
func SeedMaterial(t *testing.T, store *sqlite.Store, name string, quantity float64, minQuantity *float64) int64 {
	t.Helper()
	return insert(t, store,
		`INSERT INTO materials (name, quantity, unit, category, cost, min_quantity, last_updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, quantity, "bags", "Building Materials", 10.0, sqlite.NullFloat(minQuantity),
		sqlite.ToMillis(time.Now()),
	)
}

// Count returns the number of rows in table.
func Count(t *testing.T, store *sqlite.Store, table string) int {
	t.Helper()
	var n int
	if err := store.DB().QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
