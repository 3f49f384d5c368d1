package task

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

// Stats summarises the board.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	Active         int `json:"active"`
	Scheduled      int `json:"scheduled"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// Board groups tasks by status.
type Board struct {
	Pending   []*domain.Task `json:"pending"`
	Active    []*domain.Task `json:"active"`
	Scheduled []*domain.Task `json:"scheduled"`
	Completed []*domain.Task `json:"completed"`
}

// ComputeStats derives board statistics from a task list.
func ComputeStats(tasks []*domain.Task, now time.Time) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusPending:
			st.Pending++
		case domain.TaskStatusActive:
			st.Active++
		case domain.TaskStatusScheduled:
			st.Scheduled++
		case domain.TaskStatusCompleted:
			st.Completed++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// Stats returns counts per status, overdue tasks and the completion rate.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("list tasks: %w", err)
	}
	return ComputeStats(tasks, s.now()), nil
}

// Board returns all tasks grouped by status.
func (s *Service) Board(ctx context.Context) (*Board, error) {
	tasks, err := s.ListTasks(ctx, domain.TaskFilter{})
	if err != nil {
		return nil, err
	}

	b := &Board{
		Pending:   []*domain.Task{},
		Active:    []*domain.Task{},
		Scheduled: []*domain.Task{},
		Completed: []*domain.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusPending:
			b.Pending = append(b.Pending, t)
		case domain.TaskStatusActive:
			b.Active = append(b.Active, t)
		case domain.TaskStatusScheduled:
			b.Scheduled = append(b.Scheduled, t)
		case domain.TaskStatusCompleted:
			b.Completed = append(b.Completed, t)
		}
	}
	return b, nil
}
