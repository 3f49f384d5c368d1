package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ycsite/siteops/internal/dataloader"
	"github.com/ycsite/siteops/internal/domain"
)

type taskRepo interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, id int64, params domain.TaskUpdateParams) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type employeeRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Employee, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the task board.
type Service struct {
	tasks     taskRepo
	employees employeeRepo
	tx        txManager
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new Task service.
func NewService(
	log *slog.Logger,
	tasks taskRepo,
	employees employeeRepo,
	tx txManager,
) *Service {
	return &Service{
		tasks:     tasks,
		employees: employees,
		tx:        tx,
		log:       log.With("service", "task"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// enrich attaches the assignee snapshot to each task in one batched lookup.
func (s *Service) enrich(ctx context.Context, tasks ...*domain.Task) error {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		if t.AssignedTo != nil {
			ids = append(ids, *t.AssignedTo)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	byID, err := dataloader.FromContext(ctx, s.employees).Employees(ctx, ids)
	if err != nil {
		return fmt.Errorf("load assignees: %w", err)
	}
	for _, t := range tasks {
		if t.AssignedTo != nil {
			t.Assignee = byID[*t.AssignedTo]
		}
	}
	return nil
}

// checkEmployee verifies that a non-zero assignee exists.
func (s *Service) checkEmployee(ctx context.Context, id *int64) error {
	if id == nil || *id == 0 {
		return nil
	}
	if _, err := s.employees.GetByID(ctx, *id); err != nil {
		return fmt.Errorf("get assignee: %w", err)
	}
	return nil
}

// completionStamp returns the completedAt to persist when moving from prev to
// next: set exactly on the transition into completed, otherwise untouched.
func completionStamp(prev, next domain.TaskStatus, now time.Time) *time.Time {
	if next == domain.TaskStatusCompleted && prev != domain.TaskStatusCompleted {
		return &now
	}
	return nil
}
