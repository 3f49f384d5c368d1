// Package weather caches upstream weather readings on SQLite, one row per location.
package weather

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ycsite/siteops/internal/adapter/sqlite"
	"github.com/ycsite/siteops/internal/domain"
)

// Repo provides the weather cache backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new weather cache repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Get returns the cached reading for location, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, location string) (*domain.Weather, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var (
		w                    domain.Weather
		temp, humidity, wind sql.NullFloat64
		ts                   int64
	)
	err := q.QueryRowContext(ctx,
		`SELECT location, temperature, condition, humidity, wind_speed, forecast, timestamp
		 FROM weather_cache WHERE location = ?`, location,
	).Scan(&w.Location, &temp, &w.Condition, &humidity, &wind, &w.Forecast, &ts)
	if err != nil {
		return nil, sqlite.MapError(err, "weather", location)
	}
	w.Temperature = sqlite.FloatPtr(temp)
	w.Humidity = sqlite.FloatPtr(humidity)
	w.WindSpeed = sqlite.FloatPtr(wind)
	w.Timestamp = sqlite.FromMillis(ts)
	return &w, nil
}

// Upsert replaces the cached reading for w.Location.
func (r *Repo) Upsert(ctx context.Context, w *domain.Weather) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	_, err := q.ExecContext(ctx,
		`INSERT INTO weather_cache (location, temperature, condition, humidity, wind_speed, forecast, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (location) DO UPDATE SET
		   temperature = excluded.temperature,
		   condition = excluded.condition,
		   humidity = excluded.humidity,
		   wind_speed = excluded.wind_speed,
		   forecast = excluded.forecast,
		   timestamp = excluded.timestamp`,
		w.Location, sqlite.NullFloat(w.Temperature), w.Condition, sqlite.NullFloat(w.Humidity),
		sqlite.NullFloat(w.WindSpeed), w.Forecast, sqlite.ToMillis(w.Timestamp))
	if err != nil {
		return fmt.Errorf("upsert weather %s: %w", w.Location, err)
	}
	return nil
}

// DeleteOlderThan evicts readings taken before cutoff and returns how many were removed.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM weather_cache WHERE timestamp < ?`, sqlite.ToMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("evict weather cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("evict weather cache: %w", err)
	}
	return n, nil
}
