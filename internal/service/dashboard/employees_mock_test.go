package dashboard

import (
	"context"
	"sync"

	"github.com/ycsite/siteops/internal/service/employee"
)

var _ employeeStatter = &employeeStatterMock{}

type employeeStatterMock struct {
	StatsFunc func(ctx context.Context) (employee.Stats, error)

	calls struct {
		Stats []struct {
			Ctx context.Context
		}
	}
	lockStats sync.RWMutex
}

func (mock *employeeStatterMock) Stats(ctx context.Context) (employee.Stats, error) {
	if mock.StatsFunc == nil {
		panic("employeeStatterMock.StatsFunc: method is nil but employeeStatter.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *employeeStatterMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
