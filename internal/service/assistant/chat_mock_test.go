package assistant

import (
	"context"
	"sync"

	"github.com/ycsite/siteops/internal/adapter/provider/llm"
)

var _ chatClient = &chatClientMock{}

type chatClientMock struct {
	ChatFunc       func(ctx context.Context, model string, messages []llm.Message, opts llm.Options) (string, error)
	ListModelsFunc func(ctx context.Context) ([]string, error)

	calls struct {
		Chat []struct {
			Ctx      context.Context
			Model    string
			Messages []llm.Message
			Opts     llm.Options
		}
		ListModels []struct {
			Ctx context.Context
		}
	}
	lockChat       sync.RWMutex
	lockListModels sync.RWMutex
}

func (mock *chatClientMock) Chat(ctx context.Context, model string, messages []llm.Message, opts llm.Options) (string, error) {
	if mock.ChatFunc == nil {
		panic("chatClientMock.ChatFunc: method is nil but chatClient.Chat was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Model    string
		Messages []llm.Message
		Opts     llm.Options
	}{Ctx: ctx, Model: model, Messages: messages, Opts: opts}
	mock.lockChat.Lock()
	mock.calls.Chat = append(mock.calls.Chat, callInfo)
	mock.lockChat.Unlock()
	return mock.ChatFunc(ctx, model, messages, opts)
}

func (mock *chatClientMock) ChatCalls() []struct {
	Ctx      context.Context
	Model    string
	Messages []llm.Message
	Opts     llm.Options
} {
	mock.lockChat.RLock()
	calls := mock.calls.Chat
	mock.lockChat.RUnlock()
	return calls
}

func (mock *chatClientMock) ListModels(ctx context.Context) ([]string, error) {
	if mock.ListModelsFunc == nil {
		panic("chatClientMock.ListModelsFunc: method is nil but chatClient.ListModels was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListModels.Lock()
	mock.calls.ListModels = append(mock.calls.ListModels, callInfo)
	mock.lockListModels.Unlock()
	return mock.ListModelsFunc(ctx)
}

func (mock *chatClientMock) ListModelsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListModels.RLock()
	calls := mock.calls.ListModels
	mock.lockListModels.RUnlock()
	return calls
}
