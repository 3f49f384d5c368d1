package material

import (
	"math"
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// AddMaterialInput holds the parameters for a new inventory item.
type AddMaterialInput struct {
	Name        string
	Quantity    float64
	Unit        string
	Category    string
	Supplier    string
	Cost        float64
	MinQuantity *float64
	ProjectID   *int64
}

// Validate checks all fields and collects all errors.
func (i AddMaterialInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	errs = append(errs, nonNegative("quantity", i.Quantity)...)
	errs = append(errs, nonNegative("cost", i.Cost)...)
	if i.MinQuantity != nil {
		errs = append(errs, nonNegative("min_quantity", *i.MinQuantity)...)
	}
	if i.ProjectID != nil && *i.ProjectID <= 0 {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "invalid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateMaterialInput holds a partial update. Nil fields are left unchanged.
type UpdateMaterialInput struct {
	ID          int64
	Name        *string
	Quantity    *float64
	Unit        *string
	Category    *string
	Supplier    *string
	Cost        *float64
	MinQuantity *float64
	ProjectID   *int64
}

// Validate checks all fields and collects all errors.
func (i UpdateMaterialInput) Validate() error {
	var errs []domain.FieldError

	if i.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if i.Quantity != nil {
		errs = append(errs, nonNegative("quantity", *i.Quantity)...)
	}
	if i.Cost != nil {
		errs = append(errs, nonNegative("cost", *i.Cost)...)
	}
	if i.MinQuantity != nil {
		errs = append(errs, nonNegative("min_quantity", *i.MinQuantity)...)
	}
	if i.ProjectID != nil && *i.ProjectID < 0 {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "invalid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func nonNegative(field string, v float64) []domain.FieldError {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return []domain.FieldError{{Field: field, Message: "must be a non-negative number"}}
	}
	return nil
}
