package dashboard

import (
	"context"
	"sync"

	"github.com/ycsite/siteops/internal/domain"
)

var _ logLister = &logListerMock{}

type logListerMock struct {
	ListLogsFunc func(ctx context.Context, filter domain.LogFilter) ([]*domain.SiteLog, error)

	calls struct {
		ListLogs []struct {
			Ctx    context.Context
			Filter domain.LogFilter
		}
	}
	lockListLogs sync.RWMutex
}

func (mock *logListerMock) ListLogs(ctx context.Context, filter domain.LogFilter) ([]*domain.SiteLog, error) {
	if mock.ListLogsFunc == nil {
		panic("logListerMock.ListLogsFunc: method is nil but logLister.ListLogs was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.LogFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockListLogs.Lock()
	mock.calls.ListLogs = append(mock.calls.ListLogs, callInfo)
	mock.lockListLogs.Unlock()
	return mock.ListLogsFunc(ctx, filter)
}

func (mock *logListerMock) ListLogsCalls() []struct {
	Ctx    context.Context
	Filter domain.LogFilter
} {
	mock.lockListLogs.RLock()
	calls := mock.calls.ListLogs
	mock.lockListLogs.RUnlock()
	return calls
}
