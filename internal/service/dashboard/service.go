// Package dashboard aggregates the other services into the operations overview.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/ycsite/siteops/internal/domain"
	"github.com/ycsite/siteops/internal/service/employee"
	"github.com/ycsite/siteops/internal/service/finance"
)

//go:generate moq -out tasks_mock_test.go -pkg dashboard . taskLister
//go:generate moq -out logs_mock_test.go -pkg dashboard . logLister
//go:generate moq -out employees_mock_test.go -pkg dashboard . employeeStatter
//go:generate moq -out materials_mock_test.go -pkg dashboard . materialLister
//go:generate moq -out finance_mock_test.go -pkg dashboard . financeSummarizer

type taskLister interface {
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
}

type logLister interface {
	ListLogs(ctx context.Context, filter domain.LogFilter) ([]*domain.SiteLog, error)
}

type employeeStatter interface {
	Stats(ctx context.Context) (employee.Stats, error)
}

type materialLister interface {
	ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]*domain.Material, error)
}

type financeSummarizer interface {
	Summary(ctx context.Context, projectID *int64) (finance.Summary, error)
}

// DefaultExpectedLocations is the reference list used for report health
// when none is configured.
var DefaultExpectedLocations = []string{"North Gate", "Structure A", "Sector 9", "Main Office", "Drainage Area"}

// Service builds the dashboard.
type Service struct {
	tasks     taskLister
	logs      logLister
	employees employeeStatter
	materials materialLister
	finance   financeSummarizer
	expected  []string
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new Dashboard service. An empty expected list falls
// back to DefaultExpectedLocations.
func NewService(
	log *slog.Logger,
	tasks taskLister,
	logs logLister,
	employees employeeStatter,
	materials materialLister,
	finance financeSummarizer,
	expected []string,
) *Service {
	if len(expected) == 0 {
		expected = DefaultExpectedLocations
	}
	return &Service{
		tasks:     tasks,
		logs:      logs,
		employees: employees,
		materials: materials,
		finance:   finance,
		expected:  expected,
		log:       log.With("service", "dashboard"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}
