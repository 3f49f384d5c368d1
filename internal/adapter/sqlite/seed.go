package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ycsite/siteops/internal/domain"
)

type seedEmployee struct {
	name, role, phone, email string
	skills                   []string
	availability             domain.Availability
	joined                   time.Time
	salary                   float64
}

var seedContacts = [][4]string{
	{"Nandha Kumar", "Lead Supervisor", "nandha@yc.com", "555-0101"},
	{"Ravi Singh", "Site Engineer", "ravi@yc.com", "555-0102"},
	{"Yogesh Kumar", "Project Manager", "yogesh@yc.com", "555-0100"},
}

var seedEmployees = []seedEmployee{
	{"Nandha Kumar", "Lead Supervisor", "555-0101", "nandha@yc.com",
		[]string{"Project Management", "Safety", "Quality Control"},
		domain.AvailabilityAvailable, date(2024, 1, 15), 75000},
	{"Ravi Singh", "Site Engineer", "555-0102", "ravi@yc.com",
		[]string{"Structural Design", "CAD", "Site Planning"},
		domain.AvailabilityAvailable, date(2024, 2, 1), 65000},
	{"Priya Sharma", "Mason", "555-0103", "priya@yc.com",
		[]string{"Bricklaying", "Plastering", "Foundation Work"},
		domain.AvailabilityAvailable, date(2024, 3, 10), 45000},
	{"Arjun Patel", "Electrician", "555-0104", "arjun@yc.com",
		[]string{"Wiring", "Panel Installation", "Troubleshooting"},
		domain.AvailabilityOnLeave, date(2024, 1, 20), 50000},
	{"Lakshmi Iyer", "Plumber", "555-0105", "lakshmi@yc.com",
		[]string{"Pipe Fitting", "Drainage", "Water Systems"},
		domain.AvailabilityAvailable, date(2024, 2, 15), 48000},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seed inserts the demonstration records once. The seed.applied setting is
// written in the same transaction, so a crash never leaves half a seed.
func (s *Store) seed(ctx context.Context) error {
	var marker string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, domain.SettingSeedApplied,
	).Scan(&marker)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check seed marker: %w", err)
	}

	batch := uuid.NewString()
	now := time.Now().UTC()

	err = NewTxManager(s.db).RunInTx(ctx, func(txCtx context.Context) error {
		return seedRecords(txCtx, QuerierFromCtx(txCtx, s.db), now, batch)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "demonstration data seeded", slog.String("batch", batch))
	return nil
}

func seedRecords(ctx context.Context, q Querier, now time.Time, batch string) error {
	nowMs := ToMillis(now)

	for _, c := range seedContacts {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO contacts (name, role, email, phone, created_at) VALUES (?, ?, ?, ?, ?)`,
			c[0], c[1], c[2], c[3], nowMs,
		); err != nil {
			return fmt.Errorf("seed contact %s: %w", c[0], err)
		}
	}

	employeeIDs := make([]int64, len(seedEmployees))
	for i, e := range seedEmployees {
		res, err := q.ExecContext(ctx,
			`INSERT INTO employees (name, role, skills, phone, email, availability, status, joined_date, salary, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.name, e.role, EncodeStrings(e.skills), e.phone, e.email,
			string(e.availability), string(domain.EmployeeStatusActive), ToMillis(e.joined), e.salary, nowMs,
		)
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", e.name, err)
		}
		if employeeIDs[i], err = res.LastInsertId(); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.name, err)
		}
	}

	res, err := q.ExecContext(ctx,
		`INSERT INTO projects (name, location, start_date, end_date, status, budget, spent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"Residential Complex - Phase 1", "North Wing Construction Site",
		ToMillis(date(2024, 1, 1)), ToMillis(date(2024, 12, 31)),
		string(domain.ProjectStatusInProgress), 5000000.0, 1250000.0, nowMs,
	)
	if err != nil {
		return fmt.Errorf("seed project: %w", err)
	}
	projectID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	materials := []struct {
		name, unit, category, supplier string
		quantity, cost                 float64
	}{
		{"Cement", "bags", "Building Materials", "ABC Suppliers", 500, 350},
		{"Steel Rods (12mm)", "kg", "Structural", "Steel Works Ltd", 2000, 45},
		{"Bricks", "pieces", "Building Materials", "Local Brick Factory", 10000, 8},
	}
	for _, m := range materials {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO materials (name, quantity, unit, category, supplier, cost, project_id, last_updated)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.name, m.quantity, m.unit, m.category, m.supplier, m.cost, projectID, nowMs,
		); err != nil {
			return fmt.Errorf("seed material %s: %w", m.name, err)
		}
	}

	day := 24 * time.Hour
	tasks := []struct {
		title, description string
		assignee           int64
		status             domain.TaskStatus
		priority           domain.TaskPriority
		due                time.Time
	}{
		{"Foundation Inspection", "Inspect foundation work for quality and compliance",
			employeeIDs[1], domain.TaskStatusActive, domain.TaskPriorityHigh, now.Add(2 * day)},
		{"Electrical Wiring - 1st Floor", "Complete electrical wiring for first floor apartments",
			employeeIDs[3], domain.TaskStatusPending, domain.TaskPriorityMedium, now.Add(7 * day)},
		{"Plumbing Installation", "Install water supply and drainage systems",
			employeeIDs[4], domain.TaskStatusPending, domain.TaskPriorityMedium, now.Add(5 * day)},
	}
	for _, t := range tasks {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO tasks (title, description, assigned_to, project_id, status, priority, due_date, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.title, t.description, t.assignee, projectID,
			string(t.status), string(t.priority), ToMillis(t.due), nowMs,
		); err != nil {
			return fmt.Errorf("seed task %s: %w", t.title, err)
		}
	}

	settings := [][2]string{
		{domain.SettingTheme, "dark"},
		{domain.SettingAIModel, "phi3"},
		{domain.SettingAutoBackup, "true"},
		{domain.SettingSiteLocation, "Mumbai, Maharashtra"},
		{domain.SettingSeedApplied, batch},
	}
	for _, kv := range settings {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (key) DO NOTHING`,
			kv[0], kv[1], nowMs,
		); err != nil {
			return fmt.Errorf("seed setting %s: %w", kv[0], err)
		}
	}

	return nil
}
