package material

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// ListMaterials returns materials ordered by name. filter.LowStock keeps
// only items below their threshold.
func (s *Service) ListMaterials(ctx context.Context, filter domain.MaterialFilter) ([]*domain.Material, error) {
	materials, err := s.materials.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	if !filter.LowStock {
		return materials, nil
	}

	low := materials[:0]
	for _, m := range materials {
		if m.IsLowStock(s.minQuantity) {
			low = append(low, m)
		}
	}
	return low, nil
}

// GetMaterial returns one material.
func (s *Service) GetMaterial(ctx context.Context, id int64) (*domain.Material, error) {
	m, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// AddMaterial adds an inventory item.
func (s *Service) AddMaterial(ctx context.Context, input AddMaterialInput) (*domain.Material, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	m, err := s.materials.Create(ctx, &domain.Material{
		Name:        strings.TrimSpace(input.Name),
		Quantity:    input.Quantity,
		Unit:        strings.TrimSpace(input.Unit),
		Category:    strings.TrimSpace(input.Category),
		Supplier:    strings.TrimSpace(input.Supplier),
		Cost:        input.Cost,
		MinQuantity: input.MinQuantity,
		ProjectID:   input.ProjectID,
		LastUpdated: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}

	s.log.InfoContext(ctx, "material added",
		slog.Int64("material_id", m.ID),
		slog.String("name", m.Name),
	)
	return m, nil
}

// UpdateMaterial merges the given fields and stamps lastUpdated.
func (s *Service) UpdateMaterial(ctx context.Context, input UpdateMaterialInput) (*domain.Material, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.MaterialUpdateParams{
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		Category:    input.Category,
		Supplier:    input.Supplier,
		Cost:        input.Cost,
		MinQuantity: input.MinQuantity,
		ProjectID:   input.ProjectID,
		LastUpdated: s.now(),
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		params.Name = &name
	}

	m, err := s.materials.Update(ctx, input.ID, params)
	if err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}

	s.log.InfoContext(ctx, "material updated", slog.Int64("material_id", m.ID))
	return m, nil
}

// DeleteMaterial removes a material.
func (s *Service) DeleteMaterial(ctx context.Context, id int64) error {
	if err := s.materials.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	s.log.InfoContext(ctx, "material deleted", slog.Int64("material_id", id))
	return nil
}

// MaterialsByCategory returns the materials of one category.
func (s *Service) MaterialsByCategory(ctx context.Context, category string) ([]*domain.Material, error) {
	return s.ListMaterials(ctx, domain.MaterialFilter{Category: category})
}

// SearchMaterials matches term case-insensitively against name, category and supplier.
func (s *Service) SearchMaterials(ctx context.Context, term string) ([]*domain.Material, error) {
	materials, err := s.materials.List(ctx, domain.MaterialFilter{})
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	out := make([]*domain.Material, 0, len(materials))
	for _, m := range materials {
		if domain.MatchesAny(term, m.Name, m.Category, m.Supplier) {
			out = append(out, m)
		}
	}
	return out, nil
}
