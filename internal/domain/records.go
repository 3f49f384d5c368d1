package domain

import "time"

// Report is a persisted generated report.
type Report struct {
	ID          int64
	Title       string
	Type        string
	Content     string
	Period      string
	GeneratedBy string
	ProjectID   *int64
	GeneratedAt time.Time
}

// ReportTypeDaily marks persisted daily site reports.
const ReportTypeDaily = "daily"

// AIInsight is an assistant reply kept for later reference. Append-only.
type AIInsight struct {
	ID          int64
	Type        AgentType
	Data        string
	Insight     string
	Confidence  float64
	GeneratedAt time.Time
}

// Weather is one location's conditions, either fresh from the upstream or
// served from the local cache.
type Weather struct {
	Location    string    `json:"location"`
	Temperature *float64  `json:"temperature"`
	Condition   string    `json:"condition"`
	Humidity    *float64  `json:"humidity"`
	WindSpeed   *float64  `json:"windSpeed"`
	Forecast    string    `json:"forecast"`
	Timestamp   time.Time `json:"timestamp"`

	Expired bool `json:"isExpired,omitempty"`
	Error   bool `json:"isError,omitempty"`
	Offline bool `json:"isOffline,omitempty"`
}

// Setting is a key/value application preference.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Well-known settings keys.
const (
	SettingAIModel      = "ai_model"
	SettingSiteLocation = "site_location"
	SettingTheme        = "theme"
	SettingAutoBackup   = "auto_backup"
	SettingSeedApplied  = "seed.applied"
)
