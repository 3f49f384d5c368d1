package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

type logRepo interface {
	Create(ctx context.Context, l *domain.SiteLog) (*domain.SiteLog, error)
	GetByID(ctx context.Context, id int64) (*domain.SiteLog, error)
	List(ctx context.Context, filter domain.LogFilter) ([]*domain.SiteLog, error)
	Update(ctx context.Context, id int64, params domain.SiteLogUpdateParams) (*domain.SiteLog, error)
	Delete(ctx context.Context, id int64) error
}

type taskRepo interface {
	List(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error)
}

type transactionRepo interface {
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

type reportRepo interface {
	Create(ctx context.Context, rep *domain.Report) (*domain.Report, error)
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	List(ctx context.Context, typ string) ([]*domain.Report, error)
}

type publisher interface {
	Publish(ctx context.Context, topic string)
}

// Service manages the site diary and the daily report built from it.
type Service struct {
	logs         logRepo
	tasks        taskRepo
	transactions transactionRepo
	reports      reportRepo
	events       publisher
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new Report service.
func NewService(
	log *slog.Logger,
	logs logRepo,
	tasks taskRepo,
	transactions transactionRepo,
	reports reportRepo,
	events publisher,
) *Service {
	return &Service{
		logs:         logs,
		tasks:        tasks,
		transactions: transactions,
		reports:      reports,
		events:       events,
		log:          log.With("service", "report"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}
