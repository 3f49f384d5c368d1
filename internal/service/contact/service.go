package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

type contactRepo interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context, role string) ([]*domain.Contact, error)
	Delete(ctx context.Context, id int64) error
}

// Service manages the contact directory.
type Service struct {
	contacts contactRepo
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new Contact service.
func NewService(log *slog.Logger, contacts contactRepo) *Service {
	return &Service{
		contacts: contacts,
		log:      log.With("service", "contact"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateContactInput holds the parameters for a directory entry.
type CreateContactInput struct {
	Name  string
	Role  string
	Email string
	Phone string
}

// Validate checks all fields and collects all errors.
func (i CreateContactInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if email := strings.TrimSpace(i.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RoleGroup is the directory section of one role.
type RoleGroup struct {
	Role     string            `json:"role"`
	Contacts []*domain.Contact `json:"contacts"`
}

// ListContacts returns contacts ordered by name, optionally of one role.
func (s *Service) ListContacts(ctx context.Context, role string) ([]*domain.Contact, error) {
	contacts, err := s.contacts.List(ctx, strings.TrimSpace(role))
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// CreateContact adds a directory entry.
func (s *Service) CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.contacts.Create(ctx, &domain.Contact{
		Name:      strings.TrimSpace(input.Name),
		Role:      strings.TrimSpace(input.Role),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.log.InfoContext(ctx, "contact created", slog.Int64("contact_id", c.ID))
	return c, nil
}

// DeleteContact removes a directory entry.
func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	s.log.InfoContext(ctx, "contact deleted", slog.Int64("contact_id", id))
	return nil
}

// Directory groups all contacts by role, roles in alphabetical order.
// Contacts without a role are listed under "Other".
func (s *Service) Directory(ctx context.Context) ([]RoleGroup, error) {
	contacts, err := s.contacts.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	byRole := make(map[string][]*domain.Contact)
	for _, c := range contacts {
		role := c.Role
		if role == "" {
			role = "Other"
		}
		byRole[role] = append(byRole[role], c)
	}

	groups := make([]RoleGroup, 0, len(byRole))
	for role, cs := range byRole {
		groups = append(groups, RoleGroup{Role: role, Contacts: cs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Role < groups[j].Role })
	return groups, nil
}
