// Package weather fetches current site conditions from an HTTP weather
// endpoint serving `GET <base>/api/weather/{location}`.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Provider fetches weather readings over HTTP.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider for baseURL. A non-positive timeout uses 10s.
func NewProvider(logger *slog.Logger, baseURL string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "weather"),
	}
}

// Fetch returns the current reading for location.
func (p *Provider) Fetch(ctx context.Context, location string) (*domain.Weather, error) {
	reqURL := p.baseURL + "/api/weather/" + url.PathEscape(location)

	p.log.DebugContext(ctx, "weather request", slog.String("location", location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Single attempt: callers degrade to cached or offline readings.
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "weather request failed",
			slog.String("location", location), slog.String("error", err.Error()))
		return nil, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.WarnContext(ctx, "weather unexpected status",
			slog.String("location", location), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("weather: read body: %w", err)
	}

	var r apiReading
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("weather: decode json: %w", err)
	}

	w := r.toDomain(location)
	p.log.DebugContext(ctx, "weather response",
		slog.String("location", location),
		slog.String("condition", w.Condition),
	)
	return w, nil
}

// Static serves a fixed reading. It stands in for the upstream when none is
// configured, matching what the site backend reports.
type Static struct {
	Now func() time.Time
}

// Fetch returns the fixed reading stamped with the current time.
func (s Static) Fetch(_ context.Context, location string) (*domain.Weather, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	temp, humidity, wind := 28.0, 65.0, 12.0
	return &domain.Weather{
		Location:    location,
		Temperature: &temp,
		Condition:   "Partly Cloudy",
		Humidity:    &humidity,
		WindSpeed:   &wind,
		Forecast:    "Good conditions for outdoor work",
		Timestamp:   now().UTC(),
	}, nil
}
