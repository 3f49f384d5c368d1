// Package blueprint keeps versioned drawing uploads.
package blueprint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/ycsite/siteops/internal/adapter/shell"
	"github.com/ycsite/siteops/internal/domain"
)

// DefaultFolder is the drawings folder name under the shell base dir.
const DefaultFolder = "Drawings"

type blueprintRepo interface {
	Create(ctx context.Context, b *domain.Blueprint) (*domain.Blueprint, error)
	GetByID(ctx context.Context, id int64) (*domain.Blueprint, error)
	GetContent(ctx context.Context, id int64) ([]byte, error)
	LatestByName(ctx context.Context, name string) (*domain.Blueprint, error)
	FindByChecksum(ctx context.Context, checksum string) ([]*domain.Blueprint, error)
	List(ctx context.Context, projectID *int64) ([]*domain.Blueprint, error)
	Delete(ctx context.Context, id int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type folderOpener interface {
	OpenFolder(ctx context.Context, name string) shell.Result
}

// Service manages drawing revisions.
type Service struct {
	blueprints blueprintRepo
	tx         txManager
	opener     folderOpener
	folder     string
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new Blueprint service. An empty folder falls back to
// DefaultFolder.
func NewService(log *slog.Logger, blueprints blueprintRepo, tx txManager, opener folderOpener, folder string) *Service {
	if strings.TrimSpace(folder) == "" {
		folder = DefaultFolder
	}
	return &Service{
		blueprints: blueprints,
		tx:         tx,
		opener:     opener,
		folder:     folder,
		log:        log.With("service", "blueprint"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// UploadInput holds a drawing to store.
type UploadInput struct {
	Name      string
	ProjectID *int64
	Content   []byte
}

// Validate checks all fields and collects all errors.
func (i UploadInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if strings.ContainsAny(name, `/\`) {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not contain path separators"})
	}
	if len(i.Content) == 0 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if i.ProjectID != nil && *i.ProjectID <= 0 {
		errs = append(errs, domain.FieldError{Field: "project_id", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Checksum returns the hex blake2b-256 digest of content.
func Checksum(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Upload stores content as the next revision of name. Uploading bytes that
// match the latest revision returns that revision unchanged.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*domain.Blueprint, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	checksum := Checksum(input.Content)

	var (
		result  *domain.Blueprint
		created bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		version := 1

		latest, err := s.blueprints.LatestByName(ctx, name)
		switch {
		case err == nil:
			if latest.Checksum == checksum {
				result = latest
				return nil
			}
			version = latest.Version + 1
		case errors.Is(err, domain.ErrNotFound):
		default:
			return fmt.Errorf("latest revision: %w", err)
		}

		result, err = s.blueprints.Create(ctx, &domain.Blueprint{
			Name:       name,
			Version:    version,
			Size:       int64(len(input.Content)),
			Path:       path.Join(s.folder, name, fmt.Sprintf("v%d", version)),
			Checksum:   checksum,
			ProjectID:  input.ProjectID,
			UploadedAt: s.now(),
			Content:    input.Content,
		})
		if err != nil {
			return fmt.Errorf("create revision: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upload blueprint: %w", err)
	}

	if created {
		s.log.InfoContext(ctx, "blueprint uploaded",
			slog.String("name", result.Name),
			slog.Int("version", result.Version),
			slog.Int64("size", result.Size),
		)
	}
	return result, nil
}

// ListBlueprints returns revision metadata, optionally of one project.
func (s *Service) ListBlueprints(ctx context.Context, projectID *int64) ([]*domain.Blueprint, error) {
	list, err := s.blueprints.List(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list blueprints: %w", err)
	}
	return list, nil
}

// GetBlueprint returns revision metadata without content.
func (s *Service) GetBlueprint(ctx context.Context, id int64) (*domain.Blueprint, error) {
	b, err := s.blueprints.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blueprint: %w", err)
	}
	return b, nil
}

// Download returns a revision with its content loaded.
func (s *Service) Download(ctx context.Context, id int64) (*domain.Blueprint, error) {
	b, err := s.blueprints.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blueprint: %w", err)
	}
	b.Content, err = s.blueprints.GetContent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blueprint content: %w", err)
	}
	return b, nil
}

// DuplicatesOf returns other revisions, under any name, with identical bytes.
func (s *Service) DuplicatesOf(ctx context.Context, id int64) ([]*domain.Blueprint, error) {
	b, err := s.blueprints.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blueprint: %w", err)
	}
	same, err := s.blueprints.FindByChecksum(ctx, b.Checksum)
	if err != nil {
		return nil, fmt.Errorf("find by checksum: %w", err)
	}

	out := make([]*domain.Blueprint, 0, len(same))
	for _, other := range same {
		if other.ID != id {
			out = append(out, other)
		}
	}
	return out, nil
}

// DeleteBlueprint removes one revision.
func (s *Service) DeleteBlueprint(ctx context.Context, id int64) error {
	if err := s.blueprints.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blueprint: %w", err)
	}
	s.log.InfoContext(ctx, "blueprint deleted", slog.Int64("blueprint_id", id))
	return nil
}

// OpenDrawingsFolder asks the desktop shell to reveal the drawings folder.
func (s *Service) OpenDrawingsFolder(ctx context.Context) shell.Result {
	res := s.opener.OpenFolder(ctx, s.folder)
	if !res.OK {
		s.log.WarnContext(ctx, "open drawings folder failed", slog.String("error", res.Error))
	}
	return res
}
