package report

import (
	"strings"

	"github.com/ycsite/siteops/internal/domain"
)

// CreateLogInput holds the parameters for a diary entry.
type CreateLogInput struct {
	Caption     string
	Description string
	Priority    domain.LogPriority
	Status      domain.LogStatus
	Location    string
	Tags        []string
	Notes       string
}

// Validate checks all fields and collects all errors. Enum synonyms are
// replaced with their canonical values.
func (i *CreateLogInput) Validate() error {
	var errs []domain.FieldError

	caption := strings.TrimSpace(i.Caption)
	if caption == "" {
		errs = append(errs, domain.FieldError{Field: "caption", Message: "required"})
	}
	if len(caption) > 200 {
		errs = append(errs, domain.FieldError{Field: "caption", Message: "max 200 characters"})
	}
	if len(i.Description) > 10000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 10000 characters"})
	}
	if i.Priority != "" {
		priority, err := domain.ParseLogPriority(string(i.Priority))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
		} else {
			i.Priority = priority
		}
	}
	if i.Status != "" && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	errs = append(errs, validateTags(i.Tags)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateLogInput holds a partial update. Nil fields are left unchanged.
type UpdateLogInput struct {
	ID          int64
	Caption     *string
	Description *string
	Priority    *domain.LogPriority
	Status      *domain.LogStatus
	Location    *string
	Tags        *[]string
	Notes       *string
}

// Validate checks all fields and collects all errors. Enum synonyms are
// replaced with their canonical values.
func (i *UpdateLogInput) Validate() error {
	var errs []domain.FieldError

	if i.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Caption != nil && strings.TrimSpace(*i.Caption) == "" {
		errs = append(errs, domain.FieldError{Field: "caption", Message: "must not be empty"})
	}
	if i.Priority != nil {
		priority, err := domain.ParseLogPriority(string(*i.Priority))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
		} else {
			i.Priority = &priority
		}
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}
	if i.Tags != nil {
		errs = append(errs, validateTags(*i.Tags)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateTags(tags []string) []domain.FieldError {
	if len(tags) > 20 {
		return []domain.FieldError{{Field: "tags", Message: "max 20 tags"}}
	}
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			return []domain.FieldError{{Field: "tags", Message: "must not contain empty tags"}}
		}
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, strings.TrimSpace(t))
	}
	return out
}
