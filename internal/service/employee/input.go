package employee

import (
	"net/mail"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

// CreateEmployeeInput holds the parameters for adding an employee.
type CreateEmployeeInput struct {
	Name         string
	Role         string
	Skills       []string
	Phone        string
	Email        string
	Availability domain.Availability
	Status       domain.EmployeeStatus
	JoinedDate   *time.Time
	Salary       float64
}

// Validate checks all fields and collects all errors. Enum synonyms are
// replaced with their canonical values.
func (i *CreateEmployeeInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	errs = append(errs, validateEmail(i.Email)...)
	if i.Salary < 0 {
		errs = append(errs, domain.FieldError{Field: "salary", Message: "must be non-negative"})
	}
	if i.Availability != "" {
		availability, err := domain.ParseAvailability(string(i.Availability))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "availability", Message: "invalid value"})
		} else {
			i.Availability = availability
		}
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateEmployeeInput holds a partial update. Nil fields are left unchanged.
type UpdateEmployeeInput struct {
	ID           int64
	Name         *string
	Role         *string
	Skills       *[]string
	Phone        *string
	Email        *string
	Availability *domain.Availability
	Status       *domain.EmployeeStatus
	Salary       *float64
}

// Validate checks all fields and collects all errors. Enum synonyms are
// replaced with their canonical values.
func (i *UpdateEmployeeInput) Validate() error {
	var errs []domain.FieldError

	if i.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	if i.Email != nil {
		errs = append(errs, validateEmail(*i.Email)...)
	}
	if i.Salary != nil && *i.Salary < 0 {
		errs = append(errs, domain.FieldError{Field: "salary", Message: "must be non-negative"})
	}
	if i.Availability != nil {
		availability, err := domain.ParseAvailability(string(*i.Availability))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "availability", Message: "invalid value"})
		} else {
			i.Availability = &availability
		}
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []domain.FieldError{{Field: "email", Message: "invalid email"}}
	}
	return nil
}
