package material

import (
	"context"
	"sync"

	"github.com/ycsite/siteops/internal/adapter/shell"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyFunc func(ctx context.Context, title string, body string) shell.Result

	calls struct {
		Notify []struct {
			Ctx   context.Context
			Title string
			Body  string
		}
	}
	lockNotify sync.RWMutex
}

func (mock *notifierMock) Notify(ctx context.Context, title string, body string) shell.Result {
	if mock.NotifyFunc == nil {
		panic("notifierMock.NotifyFunc: method is nil but notifier.Notify was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Title string
		Body  string
	}{Ctx: ctx, Title: title, Body: body}
	mock.lockNotify.Lock()
	mock.calls.Notify = append(mock.calls.Notify, callInfo)
	mock.lockNotify.Unlock()
	return mock.NotifyFunc(ctx, title, body)
}

func (mock *notifierMock) NotifyCalls() []struct {
	Ctx   context.Context
	Title string
	Body  string
} {
	mock.lockNotify.RLock()
	calls := mock.calls.Notify
	mock.lockNotify.RUnlock()
	return calls
}
