package dashboard

import (
	"context"
	"sync"

	"github.com/ycsite/siteops/internal/service/finance"
)

var _ financeSummarizer = &financeSummarizerMock{}

type financeSummarizerMock struct {
	SummaryFunc func(ctx context.Context, projectID *int64) (finance.Summary, error)

	calls struct {
		Summary []struct {
			Ctx       context.Context
			ProjectID *int64
		}
	}
	lockSummary sync.RWMutex
}

func (mock *financeSummarizerMock) Summary(ctx context.Context, projectID *int64) (finance.Summary, error) {
	if mock.SummaryFunc == nil {
		panic("financeSummarizerMock.SummaryFunc: method is nil but financeSummarizer.Summary was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProjectID *int64
	}{Ctx: ctx, ProjectID: projectID}
	mock.lockSummary.Lock()
	mock.calls.Summary = append(mock.calls.Summary, callInfo)
	mock.lockSummary.Unlock()
	return mock.SummaryFunc(ctx, projectID)
}

func (mock *financeSummarizerMock) SummaryCalls() []struct {
	Ctx       context.Context
	ProjectID *int64
} {
	mock.lockSummary.RLock()
	calls := mock.calls.Summary
	mock.lockSummary.RUnlock()
	return calls
}
