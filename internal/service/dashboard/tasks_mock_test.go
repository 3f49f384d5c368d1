package dashboard

import (
	"context"
	"sync"

	"github.com/ycsite/siteops/internal/domain"
)

var _ taskLister = &taskListerMock{}

type taskListerMock struct {
	ListTasksFunc func(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)

	calls struct {
		ListTasks []struct {
			Ctx    context.Context
			Filter domain.TaskFilter
		}
	}
	lockListTasks sync.RWMutex
}

func (mock *taskListerMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	if mock.ListTasksFunc == nil {
		panic("taskListerMock.ListTasksFunc: method is nil but taskLister.ListTasks was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.TaskFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockListTasks.Lock()
	mock.calls.ListTasks = append(mock.calls.ListTasks, callInfo)
	mock.lockListTasks.Unlock()
	return mock.ListTasksFunc(ctx, filter)
}

func (mock *taskListerMock) ListTasksCalls() []struct {
	Ctx    context.Context
	Filter domain.TaskFilter
} {
	mock.lockListTasks.RLock()
	calls := mock.calls.ListTasks
	mock.lockListTasks.RUnlock()
	return calls
}
