package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ycsite/siteops/internal/adapter/provider/llm"
	"github.com/ycsite/siteops/internal/domain"
)

// CheckConnection probes the endpoint and selects a model: the first
// preferred model served, else the first served. It records and returns
// the connected state.
func (s *Service) CheckConnection(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout)
	defer cancel()

	models, err := s.client.ListModels(probeCtx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil || len(models) == 0 {
		s.log.WarnContext(ctx, "language model unavailable, using fallback replies",
			slog.Any("error", err))
		s.connected = false
		return false
	}

	s.connected = true
	s.model = pickModel(models, s.cfg.PreferredModels)
	s.log.InfoContext(ctx, "language model connected", slog.String("model", s.model))
	return true
}

func pickModel(models, preferred []string) string {
	for _, p := range preferred {
		for _, m := range models {
			if strings.Contains(m, p) {
				return m
			}
		}
	}
	return models[0]
}

// AskInput is one question to the assistant.
type AskInput struct {
	Prompt  string
	History []llm.Message
	// Agent forces a persona; empty means detect from Prompt.
	Agent domain.AgentType
}

// Reply is the assistant's answer.
type Reply struct {
	Text    string           `json:"text"`
	Agent   domain.AgentType `json:"agent"`
	Model   string           `json:"model,omitempty"`
	Offline bool             `json:"offline"`
}

// Ask answers a question. When disconnected, or on any failure talking to
// the model, the reply is a canned offline text. Replies from a non-general
// persona are kept as insights.
func (s *Service) Ask(ctx context.Context, input AskInput) Reply {
	agent := input.Agent
	if !agent.IsValid() {
		agent = DetectAgent(input.Prompt)
	}
	offline := Reply{Text: FallbackReply(input.Prompt), Agent: agent, Offline: true}

	st := s.Status()
	if !st.Connected {
		return offline
	}

	sc, err := s.BuildContext(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "build assistant context", slog.String("error", err.Error()))
		return offline
	}

	messages := make([]llm.Message, 0, len(input.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: SystemPrompt(agent, sc)})
	for _, m := range input.History {
		role := llm.RoleAssistant
		if m.Role == llm.RoleUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input.Prompt})

	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	text, err := s.client.Chat(reqCtx, st.Model, messages, llm.Options{
		Temperature: s.cfg.Temperature,
		TopP:        s.cfg.TopP,
	})
	if err != nil {
		s.log.WarnContext(ctx, "assistant request failed, using fallback reply",
			slog.String("agent", string(agent)),
			slog.String("error", err.Error()),
		)
		return offline
	}
	if strings.TrimSpace(text) == "" {
		return Reply{Text: emptyReply, Agent: agent, Model: st.Model}
	}

	if agent != domain.AgentGeneral {
		s.storeInsight(ctx, agent, input.Prompt, text)
	}
	return Reply{Text: text, Agent: agent, Model: st.Model}
}

func (s *Service) storeInsight(ctx context.Context, agent domain.AgentType, query, text string) {
	insight := text
	if r := []rune(insight); len(r) > s.cfg.InsightMaxLen {
		insight = string(r[:s.cfg.InsightMaxLen])
	}
	id, err := s.insights.Create(ctx, &domain.AIInsight{
		Type:        agent,
		Data:        query,
		Insight:     insight,
		Confidence:  0.8,
		GeneratedAt: s.now(),
	})
	if err != nil {
		s.log.WarnContext(ctx, "store insight failed", slog.String("error", err.Error()))
		return
	}
	s.log.InfoContext(ctx, "insight stored",
		slog.Int64("insight_id", id),
		slog.String("agent", string(agent)),
	)
}

// FinancialReport asks the finance persona for an analysis of period
// ("month" when empty).
func (s *Service) FinancialReport(ctx context.Context, period string) Reply {
	if period == "" {
		period = "month"
	}
	prompt := fmt.Sprintf(`Generate a comprehensive financial analysis report for this %s. Include:
1. Total income and expenses
2. Category-wise breakdown
3. Spending trends
4. Budget utilization
5. Recommendations for cost optimization

Keep it professional and actionable.`, period)
	return s.Ask(ctx, AskInput{Prompt: prompt, Agent: domain.AgentFinance})
}

// SuggestAssignment asks the roster persona who should take a task.
func (s *Service) SuggestAssignment(ctx context.Context, description string) Reply {
	prompt := fmt.Sprintf(`I need to assign a task: %q.
Which employee should I assign this to? Consider their skills, current workload, and availability.
Provide your recommendation with reasoning.`, description)
	return s.Ask(ctx, AskInput{Prompt: prompt, Agent: domain.AgentHR})
}

// NarrateDailyLogs asks the reports persona to write a daily report from logs.
func (s *Service) NarrateDailyLogs(ctx context.Context, logs []*domain.SiteLog) Reply {
	lines := make([]string, 0, len(logs))
	for _, l := range logs {
		lines = append(lines, fmt.Sprintf("- %s (%s)", l.Caption, l.Location))
	}
	prompt := "Generate a professional daily site report based on these activities:\n" +
		strings.Join(lines, "\n") +
		"\n\nInclude progress summary, issues, and recommendations."
	return s.Ask(ctx, AskInput{Prompt: prompt, Agent: domain.AgentReports})
}

// RecentInsights returns stored insights, newest first, optionally of one
// agent.
func (s *Service) RecentInsights(ctx context.Context, agent domain.AgentType, limit int) ([]*domain.AIInsight, error) {
	list, err := s.insights.List(ctx, agent, limit)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return list, nil
}
