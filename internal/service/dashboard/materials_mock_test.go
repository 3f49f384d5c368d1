package dashboard

import (
	"context"
	"sync"

	"github.com/ycsite/siteops/internal/domain"
)

var _ materialLister = &materialListerMock{}

type materialListerMock struct {
	ListMaterialsFunc func(ctx context.Context, filter domain.MaterialFilter) ([]*domain.Material, error)

	calls struct {
		ListMaterials []struct {
			Ctx    context.Context
			Filter domain.MaterialFilter
		}
	}
	lockListMaterials sync.RWMutex
}

func (mock *materialListerMock) ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]*domain.Material, error) {
	if mock.ListMaterialsFunc == nil {
		panic("materialListerMock.ListMaterialsFunc: method is nil but materialLister.ListMaterials was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.MaterialFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockListMaterials.Lock()
	mock.calls.ListMaterials = append(mock.calls.ListMaterials, callInfo)
	mock.lockListMaterials.Unlock()
	return mock.ListMaterialsFunc(ctx, filter)
}

func (mock *materialListerMock) ListMaterialsCalls() []struct {
	Ctx    context.Context
	Filter domain.MaterialFilter
} {
	mock.lockListMaterials.RLock()
	calls := mock.calls.ListMaterials
	mock.lockListMaterials.RUnlock()
	return calls
}
