package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

type employeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error)
	Update(ctx context.Context, id int64, params domain.EmployeeUpdateParams) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type taskRepo interface {
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
	UnassignEmployee(ctx context.Context, employeeID int64, at time.Time) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the site roster.
type Service struct {
	employees employeeRepo
	tasks     taskRepo
	tx        txManager
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new Employee service.
func NewService(
	log *slog.Logger,
	employees employeeRepo,
	tasks taskRepo,
	tx txManager,
) *Service {
	return &Service{
		employees: employees,
		tasks:     tasks,
		tx:        tx,
		log:       log.With("service", "employee"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Detail is an employee together with the tasks currently assigned.
type Detail struct {
	*domain.Employee
	Tasks []*domain.Task
}

// Stats summarises the roster.
type Stats struct {
	Total     int            `json:"total"`
	Active    int            `json:"active"`
	OnLeave   int            `json:"onLeave"`
	Available int            `json:"available"`
	ByRole    map[string]int `json:"byRole"`
}

// Performance summarises one employee's task record.
type Performance struct {
	TotalTasks        int `json:"totalTasks"`
	Completed         int `json:"completed"`
	Pending           int `json:"pending"`
	InProgress        int `json:"inProgress"`
	CompletionRate    int `json:"completionRate"`
	AvgCompletionDays int `json:"avgCompletionDays"`
}
