package weather

import (
	"time"

	"github.com/ycsite/siteops/internal/domain"
)

type apiReading struct {
	Location    string   `json:"location"`
	Temperature *float64 `json:"temperature"`
	Condition   string   `json:"condition"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"windSpeed"`
	Forecast    string   `json:"forecast"`
	Timestamp   string   `json:"timestamp"`
}

// toDomain maps the payload. A missing or malformed timestamp is replaced by
// the time of receipt.
func (r apiReading) toDomain(requested string) *domain.Weather {
	loc := r.Location
	if loc == "" {
		loc = requested
	}
	ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		ts = time.Now()
	}
	return &domain.Weather{
		Location:    loc,
		Temperature: r.Temperature,
		Condition:   r.Condition,
		Humidity:    r.Humidity,
		WindSpeed:   r.WindSpeed,
		Forecast:    r.Forecast,
		Timestamp:   ts.UTC(),
	}
}
