package dataloader

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/ycsite/siteops/internal/domain"
)

func newEmployeeBatchFn(repo employeeRepo) dataloader.BatchFunc[int64, *domain.Employee] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[*domain.Employee] {
		rows, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Employee](len(keys), err)
		}

		byID := make(map[int64]*domain.Employee, len(rows))
		for _, e := range rows {
			byID[e.ID] = e
		}

		results := make([]*dataloader.Result[*domain.Employee], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Employee]{Data: byID[key]}
		}
		return results
	}
}

// errorResults creates n results all carrying the same error.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}
