package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// ListTasks returns tasks matching the filter, newest first, with assignees resolved.
func (s *Service) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if err := s.enrich(ctx, tasks...); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns one task with its assignee resolved.
func (s *Service) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if err := s.enrich(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTask creates a task. Status defaults to pending, priority to medium.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkEmployee(ctx, input.AssignedTo); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	now := s.now()
	t, err := s.tasks.Create(ctx, &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		AssignedTo:  input.AssignedTo,
		ProjectID:   input.ProjectID,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		CompletedAt: completionStamp("", status, now),
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.InfoContext(ctx, "task created",
		slog.Int64("task_id", t.ID),
		slog.String("status", string(t.Status)),
	)

	if err := s.enrich(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask merges the given fields into the task and stamps updatedAt.
func (s *Service) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var t *domain.Task
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.tasks.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get task: %w", err)
		}
		if err := s.checkEmployee(txCtx, input.AssignedTo); err != nil {
			return err
		}

		now := s.now()
		params := domain.TaskUpdateParams{
			Description: input.Description,
			AssignedTo:  input.AssignedTo,
			ProjectID:   input.ProjectID,
			Status:      input.Status,
			Priority:    input.Priority,
			DueDate:     input.DueDate,
			UpdatedAt:   now,
		}
		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			params.Title = &title
		}
		if input.Status != nil {
			params.CompletedAt = completionStamp(current.Status, *input.Status, now)
		}

		t, err = s.tasks.Update(txCtx, input.ID, params)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "task updated", slog.Int64("task_id", t.ID))

	if err := s.enrich(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTaskStatus moves a task to status. Synonyms such as "done" are
// accepted. completedAt is stamped only when the task enters completed from
// another status and is never cleared.
func (s *Service) UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	return s.UpdateTask(ctx, UpdateTaskInput{ID: id, Status: &status})
}

// AssignTask sets or, with a nil employeeID, clears the assignee.
func (s *Service) AssignTask(ctx context.Context, taskID int64, employeeID *int64) (*domain.Task, error) {
	assignee := int64(0)
	if employeeID != nil {
		assignee = *employeeID
	}
	return s.UpdateTask(ctx, UpdateTaskInput{ID: taskID, AssignedTo: &assignee})
}

// DeleteTask removes a task. Nothing else is deleted with it.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.log.InfoContext(ctx, "task deleted", slog.Int64("task_id", id))
	return nil
}

// EmployeeTasks returns every task assigned to the employee.
func (s *Service) EmployeeTasks(ctx context.Context, employeeID int64) ([]*domain.Task, error) {
	return s.ListTasks(ctx, domain.TaskFilter{AssignedTo: &employeeID})
}
