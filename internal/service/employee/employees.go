package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// ListEmployees returns the roster ordered by name.
func (s *Service) ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error) {
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// GetEmployee returns an employee with their assigned tasks.
func (s *Service) GetEmployee(ctx context.Context, id int64) (*Detail, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	tasks, err := s.tasks.List(ctx, domain.TaskFilter{AssignedTo: &id})
	if err != nil {
		return nil, fmt.Errorf("list employee tasks: %w", err)
	}
	return &Detail{Employee: e, Tasks: tasks}, nil
}

// CreateEmployee adds an employee. Status defaults to active, availability
// to available and the joined date to now.
func (s *Service) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	joined := now
	if input.JoinedDate != nil {
		joined = *input.JoinedDate
	}
	status := input.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}
	availability := input.Availability
	if availability == "" {
		availability = domain.AvailabilityAvailable
	}

	e, err := s.employees.Create(ctx, &domain.Employee{
		Name:         strings.TrimSpace(input.Name),
		Role:         strings.TrimSpace(input.Role),
		Skills:       input.Skills,
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.TrimSpace(input.Email),
		Availability: availability,
		Status:       status,
		JoinedDate:   joined,
		Salary:       input.Salary,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.log.InfoContext(ctx, "employee created",
		slog.Int64("employee_id", e.ID),
		slog.String("role", e.Role),
	)
	return e, nil
}

// UpdateEmployee merges the given fields and stamps updatedAt.
func (s *Service) UpdateEmployee(ctx context.Context, input UpdateEmployeeInput) (*domain.Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.EmployeeUpdateParams{
		Role:         input.Role,
		Skills:       input.Skills,
		Phone:        input.Phone,
		Email:        input.Email,
		Availability: input.Availability,
		Status:       input.Status,
		Salary:       input.Salary,
		UpdatedAt:    s.now(),
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		params.Name = &name
	}

	e, err := s.employees.Update(ctx, input.ID, params)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}

	s.log.InfoContext(ctx, "employee updated", slog.Int64("employee_id", e.ID))
	return e, nil
}

// UpdateAvailability sets the employee's availability.
func (s *Service) UpdateAvailability(ctx context.Context, id int64, availability domain.Availability) (*domain.Employee, error) {
	return s.UpdateEmployee(ctx, UpdateEmployeeInput{ID: id, Availability: &availability})
}

// DeleteEmployee clears the employee from every task and removes them, in
// one transaction.
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	var unassigned int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.employees.GetByID(txCtx, id); err != nil {
			return fmt.Errorf("get employee: %w", err)
		}

		n, err := s.tasks.UnassignEmployee(txCtx, id, s.now())
		if err != nil {
			return fmt.Errorf("unassign tasks: %w", err)
		}
		unassigned = n

		if err := s.employees.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "employee deleted",
		slog.Int64("employee_id", id),
		slog.Int64("tasks_unassigned", unassigned),
	)
	return nil
}

// SearchEmployees matches term case-insensitively against name, role, email and phone.
func (s *Service) SearchEmployees(ctx context.Context, term string) ([]*domain.Employee, error) {
	employees, err := s.employees.List(ctx, domain.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if strings.TrimSpace(term) == "" {
		return employees, nil
	}

	out := make([]*domain.Employee, 0, len(employees))
	for _, e := range employees {
		if domain.MatchesAny(term, e.Name, e.Role, e.Email, e.Phone) {
			out = append(out, e)
		}
	}
	return out, nil
}

// AvailableEmployees returns active employees who are available for assignment.
func (s *Service) AvailableEmployees(ctx context.Context) ([]*domain.Employee, error) {
	available := domain.AvailabilityAvailable
	active := domain.EmployeeStatusActive
	return s.ListEmployees(ctx, domain.EmployeeFilter{Availability: &available, Status: &active})
}
