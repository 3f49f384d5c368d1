package finance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ycsite/siteops/internal/dataloader"
	"github.com/ycsite/siteops/internal/domain"
)

type transactionRepo interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	Update(ctx context.Context, id int64, params domain.TransactionUpdateParams) (*domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type allocationRepo interface {
	Create(ctx context.Context, a *domain.Allocation) (*domain.Allocation, error)
	GetByID(ctx context.Context, id int64) (*domain.Allocation, error)
	List(ctx context.Context, filter domain.AllocationFilter) ([]*domain.Allocation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AllocationStatus, at time.Time) (*domain.Allocation, error)
	Delete(ctx context.Context, id int64) error
}

type projectRepo interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	AddSpent(ctx context.Context, id int64, delta float64) error
	Delete(ctx context.Context, id int64) error
}

type employeeRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Employee, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages the ledger, allocations and project budgets.
// Project.spent is only ever changed here, in the same SQLite transaction as
// the ledger write that causes it.
type Service struct {
	transactions transactionRepo
	allocations  allocationRepo
	projects     projectRepo
	employees    employeeRepo
	tx           txManager
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new Finance service.
func NewService(
	log *slog.Logger,
	transactions transactionRepo,
	allocations allocationRepo,
	projects projectRepo,
	employees employeeRepo,
	tx txManager,
) *Service {
	return &Service{
		transactions: transactions,
		allocations:  allocations,
		projects:     projects,
		employees:    employees,
		tx:           tx,
		log:          log.With("service", "finance"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// applySpend adds each project's delta to its spent total. Zero deltas are skipped.
func (s *Service) applySpend(ctx context.Context, deltas map[int64]float64) error {
	for projectID, delta := range deltas {
		if delta == 0 {
			continue
		}
		if err := s.projects.AddSpent(ctx, projectID, delta); err != nil {
			return fmt.Errorf("adjust project spent: %w", err)
		}
	}
	return nil
}

// spendDelta returns the per-project change in spent when ledger entry prev
// becomes next. Either may be nil.
func spendDelta(prev, next *domain.Transaction) map[int64]float64 {
	deltas := make(map[int64]float64, 2)
	if prev != nil && prev.ProjectID != nil {
		deltas[*prev.ProjectID] -= prev.SpendOn(*prev.ProjectID)
	}
	if next != nil && next.ProjectID != nil {
		deltas[*next.ProjectID] += next.SpendOn(*next.ProjectID)
	}
	return deltas
}

func (s *Service) enrich(ctx context.Context, allocations ...*domain.Allocation) error {
	ids := make([]int64, 0, len(allocations))
	for _, a := range allocations {
		if a.AssignedTo != nil {
			ids = append(ids, *a.AssignedTo)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	byID, err := dataloader.FromContext(ctx, s.employees).Employees(ctx, ids)
	if err != nil {
		return fmt.Errorf("load assignees: %w", err)
	}
	for _, a := range allocations {
		if a.AssignedTo != nil {
			a.Assignee = byID[*a.AssignedTo]
		}
	}
	return nil
}
