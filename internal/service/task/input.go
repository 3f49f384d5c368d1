package task

import (
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

// CreateTaskInput holds the parameters for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  *int64
	ProjectID   *int64
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// Validate checks all fields and collects all errors. Enum synonyms are
// replaced with their canonical values.
func (i *CreateTaskInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if len(i.Description) > 5000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}
	if i.Status != "" {
		status, err := domain.ParseTaskStatus(string(i.Status))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
		} else {
			i.Status = status
		}
	}
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
	}
	if i.AssignedTo != nil && *i.AssignedTo < 0 {
		errs = append(errs, domain.FieldError{Field: "assigned_to", Message: "invalid id"})
	}
	if i.ProjectID != nil && *i.ProjectID <= 0 {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "invalid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTaskInput holds a partial task update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	ID          int64
	Title       *string
	Description *string
	AssignedTo  *int64
	ProjectID   *int64
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// Validate checks all fields and collects all errors. Enum synonyms are
// replaced with their canonical values.
func (i *UpdateTaskInput) Validate() error {
	var errs []domain.FieldError

	if i.ID <= 0 {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
		}
		if len(title) > 200 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
		}
	}
	if i.Description != nil && len(*i.Description) > 5000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}
	if i.Status != nil {
		status, err := domain.ParseTaskStatus(string(*i.Status))
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
		} else {
			i.Status = &status
		}
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid value"})
	}
	if i.AssignedTo != nil && *i.AssignedTo < 0 {
		errs = append(errs, domain.FieldError{Field: "assigned_to", Message: "invalid id"})
	}
	if i.ProjectID != nil && *i.ProjectID < 0 {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "invalid id"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
