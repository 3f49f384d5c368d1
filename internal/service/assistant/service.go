// Package assistant routes site questions to a local language model with a
// snapshot of the store as context, and degrades to canned answers when the
// model is unreachable.
package assistant

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ycsite/siteops/internal/adapter/provider/llm"
	"github.com/ycsite/siteops/internal/domain"
)

//go:generate moq -out chat_mock_test.go -pkg assistant . chatClient

type chatClient interface {
	ListModels(ctx context.Context) ([]string, error)
	Chat(ctx context.Context, model string, messages []llm.Message, opts llm.Options) (string, error)
}

type insightRepo interface {
	Create(ctx context.Context, in *domain.AIInsight) (int64, error)
	List(ctx context.Context, typ domain.AgentType, limit int) ([]*domain.AIInsight, error)
}

type employeeLister interface {
	List(ctx context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error)
}

type taskLister interface {
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
}

type transactionLister interface {
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

type materialLister interface {
	List(ctx context.Context, filter domain.MaterialFilter) ([]*domain.Material, error)
}

type projectLister interface {
	List(ctx context.Context) ([]*domain.Project, error)
}

// Sources are the collections the assistant snapshots for context.
type Sources struct {
	Employees    employeeLister
	Tasks        taskLister
	Transactions transactionLister
	Materials    materialLister
	Projects     projectLister
}

// Config tunes model selection and requests.
type Config struct {
	Model           string
	PreferredModels []string
	ProbeTimeout    time.Duration
	RequestTimeout  time.Duration
	Temperature     float64
	TopP            float64
	InsightMaxLen   int
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = "phi3"
	}
	if len(c.PreferredModels) == 0 {
		c.PreferredModels = []string{"phi3", "llama3.2", "tinyllama", "mistral", "llama3"}
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = 3 * time.Second
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	if c.TopP == 0 {
		c.TopP = 0.9
	}
	if c.InsightMaxLen <= 0 {
		c.InsightMaxLen = 500
	}
	return c
}

// Service is the AI assistant bridge. It never returns an error because the
// model is unavailable.
type Service struct {
	client   chatClient
	insights insightRepo
	src      Sources
	cfg      Config
	log      *slog.Logger
	now      func() time.Time

	mu        sync.RWMutex
	connected bool
	model     string
}

// NewService creates a new Assistant service. The bridge starts
// disconnected; call CheckConnection to probe the endpoint.
func NewService(
	log *slog.Logger,
	client chatClient,
	insights insightRepo,
	src Sources,
	cfg Config,
) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		client:   client,
		insights: insights,
		src:      src,
		cfg:      cfg,
		model:    cfg.Model,
		log:      log.With("service", "assistant"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Status is the current connection state.
type Status struct {
	Connected bool   `json:"connected"`
	Model     string `json:"model"`
}

// Status reports whether the last probe succeeded and which model is in use.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{Connected: s.connected, Model: s.model}
}
