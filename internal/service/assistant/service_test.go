package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycsite/siteops/internal/adapter/provider/llm"
	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/adapter/sqlite/employee"
	"github.com/ycsite/siteops/internal/adapter/sqlite/insight"
	"github.com/ycsite/siteops/internal/adapter/sqlite/material"
	"github.com/ycsite/siteops/internal/adapter/sqlite/project"
	"github.com/ycsite/siteops/internal/adapter/sqlite/task"
	"github.com/ycsite/siteops/internal/adapter/sqlite/testhelper"
	"github.com/ycsite/siteops/internal/adapter/sqlite/transaction"
	"github.com/ycsite/siteops/internal/domain"
)

func newTestService(t *testing.T, client chatClient) (*Service, *sqlite.Store) {
	t.Helper()
	store := testhelper.SetupTestDB(t)
	db := store.DB()
	svc := NewService(testhelper.Logger(), client, insight.New(db), Sources{
		Employees:    employee.New(db),
		Tasks:        task.New(db),
		Transactions: transaction.New(db),
		Materials:    material.New(db),
		Projects:     project.New(db),
	}, Config{})
	svc.now = func() time.Time { return time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func modelsMock(models ...string) *chatClientMock {
	return &chatClientMock{
		ListModelsFunc: func(context.Context) ([]string, error) { return models, nil },
		ChatFunc: func(context.Context, string, []llm.Message, llm.Options) (string, error) {
			return "ok", nil
		},
	}
}

func TestDetectAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  domain.AgentType
	}{
		{"What is our budget position?", domain.AgentFinance},
		{"Who can take the plumbing TASK?", domain.AgentHR},
		{"Write the weekly summary", domain.AgentReports},
		{"How much cement is left?", domain.AgentMaterials},
		{"Hello there", domain.AgentGeneral},
		{"cost of the staff report", domain.AgentFinance},
		{"stock report", domain.AgentReports},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectAgent(tt.query))
		})
	}
}

func TestFallbackReply(t *testing.T) {
	t.Parallel()

	assert.Equal(t, offlineFinance, FallbackReply("Show BUDGET"))
	assert.Equal(t, offlineRoster, FallbackReply("roster for today"))
	assert.Equal(t, offlineReports, FallbackReply("morning briefing"))
	assert.Equal(t, offlineGeneral, FallbackReply("hello"))
}

func TestCheckConnection_PicksPreferredModel(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, modelsMock("qwen2:7b", "mistral:latest", "llama3.2:3b"))

	require.True(t, svc.CheckConnection(context.Background()))
	assert.Equal(t, Status{Connected: true, Model: "llama3.2:3b"}, svc.Status())
}

func TestCheckConnection_FirstServedWhenNonePreferred(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, modelsMock("qwen2:7b", "gemma:2b"))

	require.True(t, svc.CheckConnection(context.Background()))
	assert.Equal(t, "qwen2:7b", svc.Status().Model)
}

func TestCheckConnection_Unreachable(t *testing.T) {
	t.Parallel()
	client := &chatClientMock{ListModelsFunc: func(context.Context) ([]string, error) {
		return nil, errors.New("connection refused")
	}}
	svc, _ := newTestService(t, client)

	assert.False(t, svc.CheckConnection(context.Background()))
	assert.Equal(t, Status{Connected: false, Model: "phi3"}, svc.Status())
}

func TestAsk_OfflineNeverCallsModel(t *testing.T) {
	t.Parallel()
	client := modelsMock()
	svc, store := newTestService(t, client)

	reply := svc.Ask(context.Background(), AskInput{Prompt: "what is the budget?"})
	assert.Equal(t, Reply{Text: offlineFinance, Agent: domain.AgentFinance, Offline: true}, reply)
	assert.Empty(t, client.ChatCalls())
	assert.Equal(t, 0, testhelper.Count(t, store, "ai_insights"))
}

func TestAsk_BuildsRequestAndStoresInsight(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 800)
	client := modelsMock("phi3:mini")
	client.ChatFunc = func(context.Context, string, []llm.Message, llm.Options) (string, error) {
		return long, nil
	}
	svc, store := newTestService(t, client)
	ctx := context.Background()
	testhelper.SeedEmployee(t, store, "Ravi", domain.AvailabilityAvailable)
	require.True(t, svc.CheckConnection(ctx))

	reply := svc.Ask(ctx, AskInput{
		Prompt: "Who is free for the roof task?",
		History: []llm.Message{
			{Role: llm.RoleUser, Content: "hi"},
			{Role: "bot", Content: "hello"},
		},
	})
	assert.Equal(t, Reply{Text: long, Agent: domain.AgentHR, Model: "phi3:mini"}, reply)

	require.Len(t, client.ChatCalls(), 1)
	call := client.ChatCalls()[0]
	assert.Equal(t, "phi3:mini", call.Model)
	assert.Equal(t, llm.Options{Temperature: 0.7, TopP: 0.9}, call.Opts)
	require.Len(t, call.Messages, 4)
	assert.Equal(t, llm.RoleSystem, call.Messages[0].Role)
	assert.Contains(t, call.Messages[0].Content, "Roster Official")
	assert.Contains(t, call.Messages[0].Content, "Available for Deployment: 1 / 1")
	assert.Equal(t, llm.RoleAssistant, call.Messages[2].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Who is free for the roof task?"}, call.Messages[3])
	_, hasDeadline := call.Ctx.Deadline()
	assert.True(t, hasDeadline)

	stored, err := svc.RecentInsights(ctx, domain.AgentHR, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Insight, 500)
	assert.Equal(t, 0.8, stored[0].Confidence)
	assert.Equal(t, "Who is free for the roof task?", stored[0].Data)
}

func TestAsk_GeneralStoresNoInsight(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, modelsMock("phi3"))
	require.True(t, svc.CheckConnection(context.Background()))

	reply := svc.Ask(context.Background(), AskInput{Prompt: "good morning"})
	assert.Equal(t, "ok", reply.Text)
	assert.Equal(t, domain.AgentGeneral, reply.Agent)
	assert.Equal(t, 0, testhelper.Count(t, store, "ai_insights"))
}

func TestAsk_ModelErrorFallsBack(t *testing.T) {
	t.Parallel()
	client := modelsMock("phi3")
	client.ChatFunc = func(context.Context, string, []llm.Message, llm.Options) (string, error) {
		return "", context.DeadlineExceeded
	}
	svc, _ := newTestService(t, client)
	require.True(t, svc.CheckConnection(context.Background()))

	reply := svc.Ask(context.Background(), AskInput{Prompt: "daily report please"})
	assert.True(t, reply.Offline)
	assert.Equal(t, offlineReports, reply.Text)
}

func TestHelpersForcePersona(t *testing.T) {
	t.Parallel()
	client := modelsMock("phi3")
	svc, _ := newTestService(t, client)
	ctx := context.Background()
	require.True(t, svc.CheckConnection(ctx))

	assert.Equal(t, domain.AgentFinance, svc.FinancialReport(ctx, "").Agent)
	assert.Equal(t, domain.AgentHR, svc.SuggestAssignment(ctx, "tile the lobby").Agent)
	r := svc.NarrateDailyLogs(ctx, []*domain.SiteLog{{Caption: "Slab poured", Location: "Block A"}})
	assert.Equal(t, domain.AgentReports, r.Agent)

	calls := client.ChatCalls()
	require.Len(t, calls, 3)
	assert.Contains(t, calls[0].Messages[1].Content, "report for this month")
	assert.Contains(t, calls[1].Messages[1].Content, `"tile the lobby"`)
	assert.Contains(t, calls[2].Messages[1].Content, "- Slab poured (Block A)")
}

func TestSystemPrompt_FinanceBalance(t *testing.T) {
	t.Parallel()
	sc := &SiteContext{Finance: FinanceBrief{TotalIncome: 1000, TotalExpense: 250.5}}

	p := SystemPrompt(domain.AgentFinance, sc)
	assert.Contains(t, p, "Site Balance: ₹749.5")
	assert.Contains(t, p, "Money Out: ₹250.5")

	g := SystemPrompt(domain.AgentGeneral, nil)
	assert.Contains(t, g, "Officials currently on Roster: None")
}

type failingProjects struct{ err error }

func (f failingProjects) List(context.Context) ([]*domain.Project, error) { return nil, f.err }

func TestBuildContext(t *testing.T) {
	t.Parallel()
	svc, store := newTestService(t, modelsMock())
	ctx := context.Background()

	emp := testhelper.SeedEmployee(t, store, "Ravi", domain.AvailabilityAvailable)
	testhelper.SeedTask(t, store, "Lay bricks", domain.TaskStatusPending, &emp, nil)
	testhelper.SeedMaterial(t, store, "Cement", 40, nil)
	testhelper.SeedProject(t, store, 1000, 200)

	sc, err := svc.BuildContext(ctx)
	require.NoError(t, err)
	require.Len(t, sc.Employees, 1)
	assert.Equal(t, "Ravi", sc.Employees[0].Name)
	require.Len(t, sc.Tasks, 1)
	assert.Equal(t, &emp, sc.Tasks[0].AssignedTo)
	require.Len(t, sc.Materials, 1)
	assert.Equal(t, "Cement", sc.Materials[0].Name)
	require.Len(t, sc.Projects, 1)
	assert.Equal(t, 200.0, sc.Projects[0].Spent)
}

func TestBuildContext_SourceFailureAborts(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t, modelsMock())
	boom := errors.New("disk I/O error")
	svc.src.Projects = failingProjects{err: boom}

	sc, err := svc.BuildContext(context.Background())
	assert.Nil(t, sc)
	assert.ErrorIs(t, err, boom)
}
