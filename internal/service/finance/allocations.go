package finance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// AllocationStats counts allocations per status.
type AllocationStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Utilized  int `json:"utilized"`
	Cancelled int `json:"cancelled"`
}

// ListAllocations returns allocations newest first with their assignee attached.
func (s *Service) ListAllocations(ctx context.Context, filter domain.AllocationFilter) ([]*domain.Allocation, error) {
	allocations, err := s.allocations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	if err := s.enrich(ctx, allocations...); err != nil {
		return nil, err
	}
	return allocations, nil
}

// CreateAllocation dispatches a resource. Status defaults to pending and date to now.
func (s *Service) CreateAllocation(ctx context.Context, input CreateAllocationInput) (*domain.Allocation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.AssignedTo != nil {
		if _, err := s.employees.GetByID(ctx, *input.AssignedTo); err != nil {
			return nil, fmt.Errorf("get assignee: %w", err)
		}
	}

	now := s.now()
	status := input.Status
	if status == "" {
		status = domain.AllocationStatusPending
	}
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	a, err := s.allocations.Create(ctx, &domain.Allocation{
		Resource:   strings.TrimSpace(input.Resource),
		Amount:     input.Amount,
		AssignedTo: input.AssignedTo,
		Site:       strings.TrimSpace(input.Site),
		Status:     status,
		Date:       date,
		Notes:      input.Notes,
		CreatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create allocation: %w", err)
	}
	if err := s.enrich(ctx, a); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "allocation created",
		slog.Int64("allocation_id", a.ID),
		slog.String("resource", a.Resource),
	)
	return a, nil
}

// UpdateAllocationStatus moves an allocation to status. The first move of a
// cash advance into utilized books an ALLOCATIONS expense in the same
// transaction.
func (s *Service) UpdateAllocationStatus(ctx context.Context, id int64, status domain.AllocationStatus) (*domain.Allocation, error) {
	status, err := domain.ParseAllocationStatus(string(status))
	if err != nil {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{{Field: "status", Message: "invalid value"}}}
	}

	var (
		updated *domain.Allocation
		booked  *domain.Transaction
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		prev, err := s.allocations.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get allocation: %w", err)
		}

		now := s.now()
		next, err := s.allocations.UpdateStatus(txCtx, id, status, now)
		if err != nil {
			return fmt.Errorf("update allocation status: %w", err)
		}
		updated = next

		if status != domain.AllocationStatusUtilized || prev.Status == domain.AllocationStatusUtilized || !prev.IsCashAdvance() {
			return nil
		}
		booked, err = s.transactions.Create(txCtx, &domain.Transaction{
			Type:        domain.TransactionTypeExpense,
			Amount:      math.Abs(prev.Amount),
			Category:    domain.AllocationsCategory,
			Description: fmt.Sprintf("Allocation utilized: %s - %s", prev.Resource, prev.Site),
			Date:        now,
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("book allocation expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, updated); err != nil {
		return nil, err
	}

	attrs := []any{
		slog.Int64("allocation_id", id),
		slog.String("status", string(status)),
	}
	if booked != nil {
		attrs = append(attrs, slog.Int64("transaction_id", booked.ID))
	}
	s.log.InfoContext(ctx, "allocation status updated", attrs...)
	return updated, nil
}

// DeleteAllocation removes an allocation. Expenses already booked from it stay.
func (s *Service) DeleteAllocation(ctx context.Context, id int64) error {
	if err := s.allocations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	s.log.InfoContext(ctx, "allocation deleted", slog.Int64("allocation_id", id))
	return nil
}

// AllocationStats counts allocations per status.
func (s *Service) AllocationStats(ctx context.Context) (AllocationStats, error) {
	allocations, err := s.allocations.List(ctx, domain.AllocationFilter{})
	if err != nil {
		return AllocationStats{}, fmt.Errorf("list allocations: %w", err)
	}

	st := AllocationStats{Total: len(allocations)}
	for _, a := range allocations {
		switch a.Status {
		case domain.AllocationStatusPending:
			st.Pending++
		case domain.AllocationStatusUtilized:
			st.Utilized++
		case domain.AllocationStatusCancelled:
			st.Cancelled++
		}
	}
	return st, nil
}
