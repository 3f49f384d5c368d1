package material

import (
	"context"
	"fmt"
	"sort"

	"github.com/ycsite/siteops/internal/domain"
)

// CategoryStock is the item count and value of one category.
type CategoryStock struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// Stats summarises the inventory.
type Stats struct {
	TotalItems    int                      `json:"totalItems"`
	TotalValue    float64                  `json:"totalValue"`
	LowStockCount int                      `json:"lowStockCount"`
	ByCategory    map[string]CategoryStock `json:"byCategory"`
}

// LowStockAlert is one item below its threshold.
type LowStockAlert struct {
	MaterialID  int64   `json:"materialId"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"minQuantity"`
	Unit        string  `json:"unit"`
	Deficit     float64 `json:"deficit"`
}

// ComputeStats derives inventory statistics using def as the default threshold.
func ComputeStats(materials []*domain.Material, def float64) Stats {
	st := Stats{TotalItems: len(materials), ByCategory: make(map[string]CategoryStock)}
	for _, m := range materials {
		value := m.Value()
		st.TotalValue += value
		if m.IsLowStock(def) {
			st.LowStockCount++
		}
		c := st.ByCategory[m.Category]
		c.Count++
		c.Value += value
		st.ByCategory[m.Category] = c
	}
	return st
}

// InventoryStats returns totals, low-stock count and the per-category breakdown.
func (s *Service) InventoryStats(ctx context.Context) (Stats, error) {
	materials, err := s.materials.List(ctx, domain.MaterialFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("list materials: %w", err)
	}
	return ComputeStats(materials, s.minQuantity), nil
}

// LowStockAlerts lists items below their threshold, largest deficit first.
func (s *Service) LowStockAlerts(ctx context.Context) ([]LowStockAlert, error) {
	low, err := s.ListMaterials(ctx, domain.MaterialFilter{LowStock: true})
	if err != nil {
		return nil, err
	}

	alerts := make([]LowStockAlert, 0, len(low))
	for _, m := range low {
		threshold := m.Threshold(s.minQuantity)
		alerts = append(alerts, LowStockAlert{
			MaterialID:  m.ID,
			Name:        m.Name,
			Quantity:    m.Quantity,
			MinQuantity: threshold,
			Unit:        m.Unit,
			Deficit:     threshold - m.Quantity,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].Deficit > alerts[j].Deficit })
	return alerts, nil
}

// ProjectMaterialCost returns the value of all materials held for a project.
func (s *Service) ProjectMaterialCost(ctx context.Context, projectID int64) (float64, error) {
	materials, err := s.materials.List(ctx, domain.MaterialFilter{ProjectID: &projectID})
	if err != nil {
		return 0, fmt.Errorf("list project materials: %w", err)
	}
	var total float64
	for _, m := range materials {
		total += m.Value()
	}
	return total, nil
}
