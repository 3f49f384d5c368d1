package finance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// ListProjects returns all projects.
func (s *Service) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project.
func (s *Service) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// CreateProject adds a project. Status defaults to planned.
func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.ProjectStatusPlanned
	}

	p, err := s.projects.Create(ctx, &domain.Project{
		Name:      strings.TrimSpace(input.Name),
		Location:  strings.TrimSpace(input.Location),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    status,
		Budget:    input.Budget,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.InfoContext(ctx, "project created",
		slog.Int64("project_id", p.ID),
		slog.Float64("budget", p.Budget),
	)
	return p, nil
}

// DeleteProject removes a project. Projects that still have tasks,
// materials, transactions or blueprints fail with domain.ErrConflict.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.log.InfoContext(ctx, "project deleted", slog.Int64("project_id", id))
	return nil
}

// ProjectBudgetStatus reports the budget position of one project.
func (s *Service) ProjectBudgetStatus(ctx context.Context, id int64) (domain.BudgetStatus, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return domain.BudgetStatus{}, fmt.Errorf("get project: %w", err)
	}
	return p.BudgetStatus(), nil
}
