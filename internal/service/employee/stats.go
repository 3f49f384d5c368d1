package employee

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

// ComputeStats derives roster statistics.
func ComputeStats(employees []*domain.Employee) Stats {
	st := Stats{Total: len(employees), ByRole: make(map[string]int)}
	for _, e := range employees {
		if e.Status == domain.EmployeeStatusActive {
			st.Active++
		}
		switch e.Availability {
		case domain.AvailabilityOnLeave:
			st.OnLeave++
		case domain.AvailabilityAvailable:
			st.Available++
		}
		role := e.Role
		if role == "" {
			role = "Unassigned"
		}
		st.ByRole[role]++
	}
	return st
}

// Stats returns roster counts and the per-role breakdown.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	employees, err := s.employees.List(ctx, domain.EmployeeFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("list employees: %w", err)
	}
	return ComputeStats(employees), nil
}

// Performance reports task outcomes for one employee. The average completion
// time only counts tasks that carry both timestamps.
func (s *Service) Performance(ctx context.Context, id int64) (Performance, error) {
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		return Performance{}, fmt.Errorf("get employee: %w", err)
	}
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{AssignedTo: &id})
	if err != nil {
		return Performance{}, fmt.Errorf("list employee tasks: %w", err)
	}

	p := Performance{TotalTasks: len(tasks)}
	var (
		total time.Duration
		timed int
	)
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusCompleted:
			p.Completed++
			if t.CompletedAt != nil && !t.CreatedAt.IsZero() {
				total += t.CompletedAt.Sub(t.CreatedAt)
				timed++
			}
		case domain.TaskStatusPending:
			p.Pending++
		case domain.TaskStatusActive:
			p.InProgress++
		}
	}
	if p.TotalTasks > 0 {
		p.CompletionRate = int(math.Round(float64(p.Completed) / float64(p.TotalTasks) * 100))
	}
	if timed > 0 {
		avg := total / time.Duration(timed)
		p.AvgCompletionDays = int(math.Round(avg.Hours() / 24))
	}
	return p, nil
}
