package material

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

// AdjustStock changes the on-hand quantity by delta, never below zero, and
// writes exactly one audit log in the same transaction. Crossing into low
// stock raises a desktop notification after commit.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta float64, reason string) (*domain.Material, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{{Field: "delta", Message: "must be a number"}}}
	}

	var prev, updated *domain.Material
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := s.materials.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get material: %w", err)
		}
		prev = m

		now := s.now()
		updated, err = s.materials.SetQuantity(txCtx, id, math.Max(0, m.Quantity+delta), now)
		if err != nil {
			return fmt.Errorf("set quantity: %w", err)
		}

		if _, err := s.logs.Create(txCtx, stockAuditLog(m, delta, reason, now)); err != nil {
			return fmt.Errorf("create stock audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "stock adjusted",
		slog.Int64("material_id", id),
		slog.Float64("delta", delta),
		slog.Float64("quantity", updated.Quantity),
	)

	if !prev.IsLowStock(s.minQuantity) && updated.IsLowStock(s.minQuantity) {
		res := s.notifier.Notify(ctx, "Low stock: "+updated.Name,
			fmt.Sprintf("%s %s left, minimum is %s.",
				formatQty(updated.Quantity), updated.Unit, formatQty(updated.Threshold(s.minQuantity))))
		if !res.OK {
			s.log.WarnContext(ctx, "low stock notification failed",
				slog.Int64("material_id", id),
				slog.String("error", res.Error),
			)
		}
	}
	return updated, nil
}

func stockAuditLog(m *domain.Material, delta float64, reason string, now time.Time) *domain.SiteLog {
	verb := "Added"
	if delta < 0 {
		verb = "Removed"
	}
	return &domain.SiteLog{
		Caption:     "Stock Update: " + m.Name,
		Description: fmt.Sprintf("%s %s %s. Reason: %s", verb, formatQty(math.Abs(delta)), m.Unit, strings.TrimSpace(reason)),
		Priority:    domain.LogPriorityNormal,
		Status:      domain.LogStatusActive,
		Location:    "Inventory",
		Tags:        []string{"inventory", "stock-update"},
		CreatedAt:   now,
	}
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
