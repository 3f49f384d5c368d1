package material

import (
	"context"
	"log/slog"
	"time"

	"github.com/ycsite/siteops/internal/adapter/shell"
	"github.com/ycsite/siteops/internal/domain"
)

type materialRepo interface {
	Create(ctx context.Context, m *domain.Material) (*domain.Material, error)
	GetByID(ctx context.Context, id int64) (*domain.Material, error)
	List(ctx context.Context, filter domain.MaterialFilter) ([]*domain.Material, error)
	Update(ctx context.Context, id int64, params domain.MaterialUpdateParams) (*domain.Material, error)
	SetQuantity(ctx context.Context, id int64, quantity float64, at time.Time) (*domain.Material, error)
	Delete(ctx context.Context, id int64) error
}

type logRepo interface {
	Create(ctx context.Context, l *domain.SiteLog) (*domain.SiteLog, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Notify(ctx context.Context, title, body string) shell.Result
}

// Service manages site inventory.
type Service struct {
	materials   materialRepo
	logs        logRepo
	tx          txManager
	notifier    notifier
	minQuantity float64
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a new Material service. minQuantity is the low-stock
// threshold for materials without their own; zero means
// domain.DefaultMinQuantity.
func NewService(
	log *slog.Logger,
	materials materialRepo,
	logs logRepo,
	tx txManager,
	notifier notifier,
	minQuantity float64,
) *Service {
	if minQuantity <= 0 {
		minQuantity = domain.DefaultMinQuantity
	}
	return &Service{
		materials:   materials,
		logs:        logs,
		tx:          tx,
		notifier:    notifier,
		minQuantity: minQuantity,
		log:         log.With("service", "material"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}
