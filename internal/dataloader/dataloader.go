// Package dataloader batches employee lookups made while enriching tasks and
// allocations into single SQL calls. Loaders cache within one request or one
// service call and are never shared across them.
package dataloader

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/ycsite/siteops/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type employeeRepo interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Employee, error)
}

// Loaders contains the per-request DataLoaders.
type Loaders struct {
	EmployeeByID *dataloader.Loader[int64, *domain.Employee]
}

// NewLoaders creates a fresh set of loaders backed by the repository.
func NewLoaders(employees employeeRepo) *Loaders {
	return &Loaders{
		EmployeeByID: newLoader(newEmployeeBatchFn(employees)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[int64, V]) *dataloader.Loader[int64, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[int64, V](wait),
		dataloader.WithBatchCapacity[int64, V](maxBatch),
	)
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext returns the loaders stored in ctx, or a fresh set backed by
// fallback when the caller is outside an HTTP request (CLI, tests).
func FromContext(ctx context.Context, fallback employeeRepo) *Loaders {
	if l, ok := ctx.Value(loadersKey).(*Loaders); ok && l != nil {
		return l
	}
	return NewLoaders(fallback)
}

// Employees resolves ids in one batch. Unknown ids resolve to nil entries;
// the result is keyed by id.
func (l *Loaders) Employees(ctx context.Context, ids []int64) (map[int64]*domain.Employee, error) {
	out := make(map[int64]*domain.Employee, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	employees, errs := l.EmployeeByID.LoadMany(ctx, unique)()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	for i, id := range unique {
		if employees[i] != nil {
			out[id] = employees[i]
		}
	}
	return out, nil
}
