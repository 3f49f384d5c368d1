// Package setting exposes user preferences stored as key/value pairs.
package setting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

type settingRepo interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, key, value string, at time.Time) error
	All(ctx context.Context) ([]*domain.Setting, error)
}

// Service reads and writes settings.
type Service struct {
	settings settingRepo
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new Setting service.
func NewService(log *slog.Logger, settings settingRepo) *Service {
	return &Service{
		settings: settings,
		log:      log.With("service", "setting"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the value under key, or def when the key is unset.
func (s *Service) Get(ctx context.Context, key, def string) (string, error) {
	st, err := s.settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return def, nil
		}
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return st.Value, nil
}

// Set stores value under key.
func (s *Service) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.NewValidationError("key", "required")
	}

	if err := s.settings.Set(ctx, key, value, s.now()); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	s.log.InfoContext(ctx, "setting updated", slog.String("key", key))
	return nil
}

// All returns every setting as a map.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	list, err := s.settings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	out := make(map[string]string, len(list))
	for _, st := range list {
		out[st.Key] = st.Value
	}
	return out, nil
}
