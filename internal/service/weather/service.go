// Package weather serves site conditions through a read-through cache and
// never fails because the upstream is down.
package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

type fetcher interface {
	Fetch(ctx context.Context, location string) (*domain.Weather, error)
}

type cacheRepo interface {
	Get(ctx context.Context, location string) (*domain.Weather, error)
	Upsert(ctx context.Context, w *domain.Weather) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

const offlineForecast = "Weather data unavailable. Check connection."

// Config tunes the cache.
type Config struct {
	DefaultLocation string
	Freshness       time.Duration
	Retention       time.Duration
}

// Service is the weather bridge.
type Service struct {
	upstream fetcher
	cache    cacheRepo
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new Weather service.
func NewService(log *slog.Logger, upstream fetcher, cache cacheRepo, cfg Config) *Service {
	if cfg.DefaultLocation == "" {
		cfg.DefaultLocation = "Mumbai"
	}
	if cfg.Freshness <= 0 {
		cfg.Freshness = 30 * time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	return &Service{
		upstream: upstream,
		cache:    cache,
		cfg:      cfg,
		log:      log.With("service", "weather"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetWeather returns conditions for location (the default location when
// empty). A fresh cached reading is served as is; otherwise the upstream is
// asked and the cache refreshed. If the upstream fails, a stale reading is
// served flagged Expired, and with no reading at all an Offline placeholder.
func (s *Service) GetWeather(ctx context.Context, location string) *domain.Weather {
	location = strings.TrimSpace(location)
	if location == "" {
		location = s.cfg.DefaultLocation
	}
	now := s.now()

	cached, err := s.cache.Get(ctx, location)
	cacheFailed := false
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.ErrorContext(ctx, "read weather cache",
				slog.String("location", location),
				slog.String("error", err.Error()),
			)
			cacheFailed = true
		}
		cached = nil
	}
	if cached != nil && now.Sub(cached.Timestamp) < s.cfg.Freshness {
		return cached
	}

	fresh, err := s.upstream.Fetch(ctx, location)
	if err == nil {
		if fresh.Timestamp.IsZero() {
			fresh.Timestamp = now
		}
		if err := s.cache.Upsert(ctx, fresh); err != nil {
			s.log.ErrorContext(ctx, "write weather cache",
				slog.String("location", location),
				slog.String("error", err.Error()),
			)
		}
		return fresh
	}

	s.log.WarnContext(ctx, "weather upstream unavailable",
		slog.String("location", location),
		slog.String("error", err.Error()),
	)
	if cached != nil {
		cached.Expired = true
		return cached
	}
	return &domain.Weather{
		Location:  location,
		Condition: "Unknown",
		Forecast:  offlineForecast,
		Timestamp: now,
		Offline:   true,
		Error:     cacheFailed,
	}
}

// PruneCache evicts readings older than the retention window.
func (s *Service) PruneCache(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.cfg.Retention)
	n, err := s.cache.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "weather cache pruned",
		slog.Int64("removed", n),
		slog.Time("cutoff", cutoff),
	)
	return n, nil
}
