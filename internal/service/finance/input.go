package finance

import (
	"math"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

// CreateTransactionInput holds the parameters for a ledger entry.
// The sign of Amount is ignored; Type decides it.
type CreateTransactionInput struct {
	Type        domain.TransactionType
	Amount      float64
	Category    string
	Description string
	Date        *time.Time
	ProjectID   *int64
	TaskID      *int64
}

// Validate checks all fields and collects all errors.
func (i CreateTransactionInput) Validate() error {
	var errs []domain.FieldError

	if i.Type != "" && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	errs = append(errs, validateAmount(i.Amount)...)
	if strings.TrimSpace(i.Category) == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	}
	if len(i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}
	errs = append(errs, validateRef("project_id", i.ProjectID)...)
	errs = append(errs, validateRef("task_id", i.TaskID)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTransactionInput holds a partial ledger update. Nil fields are left
// unchanged; ProjectID or TaskID pointing at 0 clears the reference.
type UpdateTransactionInput struct {
	ID          int64
	Type        *domain.TransactionType
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
	ProjectID   *int64
	TaskID      *int64
}

// Validate checks all fields and collects all errors.
func (i UpdateTransactionInput) Validate() error {
	var errs []domain.FieldError

	if i.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Type != nil && !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	if i.Amount != nil {
		errs = append(errs, validateAmount(*i.Amount)...)
	}
	if i.Category != nil && strings.TrimSpace(*i.Category) == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "must not be empty"})
	}
	if i.Description != nil && len(*i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 1000 characters"})
	}
	if i.ProjectID != nil && *i.ProjectID < 0 {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "invalid id"})
	}
	if i.TaskID != nil && *i.TaskID < 0 {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "invalid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateAllocationInput holds the parameters for dispatching a resource.
type CreateAllocationInput struct {
	Resource   string
	Amount     float64
	AssignedTo *int64
	Site       string
	Status     domain.AllocationStatus
	Date       *time.Time
	Notes      string
}

// Validate checks all fields and collects all errors. Enum synonyms are
// replaced with their canonical values.
func (i *CreateAllocationInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Resource) == "" {
		errs = append(errs, domain.FieldError{Field: "resource", Message: "required"})
	}
	if math.IsNaN(i.Amount) || math.IsInf(i.Amount, 0) || i.Amount < 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be a non-negative number"})
	}
	if i.Status != "" {
		status, err := domain.ParseAllocationStatus(string(i.Status))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
		} else {
			i.Status = status
		}
	}
	errs = append(errs, validateRef("assigned_to", i.AssignedTo)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateProjectInput holds the parameters for a new project. Spent always
// starts at zero.
type CreateProjectInput struct {
	Name      string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	Status    domain.ProjectStatus
	Budget    float64
}

// Validate checks all fields and collects all errors.
func (i CreateProjectInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if math.IsNaN(i.Budget) || i.Budget < 0 {
		errs = append(errs, domain.FieldError{Field: "budget", Message: "must be non-negative"})
	}
	if i.StartDate != nil && i.EndDate != nil && i.EndDate.Before(*i.StartDate) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "before start date"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateAmount(amount float64) []domain.FieldError {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return []domain.FieldError{{Field: "amount", Message: "must be a number"}}
	}
	if amount == 0 {
		return []domain.FieldError{{Field: "amount", Message: "must not be zero"}}
	}
	return nil
}

func validateRef(field string, id *int64) []domain.FieldError {
	if id != nil && *id <= 0 {
		return []domain.FieldError{{Field: field, Message: "invalid id"}}
	}
	return nil
}
