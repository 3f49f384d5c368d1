package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	AI        AIConfig        `yaml:"ai"`
	Weather   WeatherConfig   `yaml:"weather"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Inventory InventoryConfig `yaml:"inventory"`
	Drawings  DrawingsConfig  `yaml:"drawings"`
	Shell     ShellConfig     `yaml:"shell"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig holds the local database settings.
type StoreConfig struct {
	Path        string        `yaml:"path"         env:"STORE_PATH"         env-default:"siteops.db"`
	BusyTimeout time.Duration `yaml:"busy_timeout" env:"STORE_BUSY_TIMEOUT" env-default:"5s"`
	Seed        bool          `yaml:"seed"         env:"STORE_SEED"         env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AIConfig holds settings for the local model server.
type AIConfig struct {
	BaseURL            string        `yaml:"base_url"         env:"AI_BASE_URL"         env-default:"http://localhost:11434/v1"`
	APIKey             string        `yaml:"api_key"          env:"AI_API_KEY"`
	Model              string        `yaml:"model"            env:"AI_MODEL"            env-default:"phi3"`
	PreferredModelsRaw string        `yaml:"preferred_models" env:"AI_PREFERRED_MODELS" env-default:"phi3,llama3.2,mistral,llama2"`
	RequestTimeout     time.Duration `yaml:"request_timeout"  env:"AI_REQUEST_TIMEOUT"  env-default:"30s"`
	ProbeTimeout       time.Duration `yaml:"probe_timeout"    env:"AI_PROBE_TIMEOUT"    env-default:"3s"`
	Temperature        float64       `yaml:"temperature"      env:"AI_TEMPERATURE"      env-default:"0.7"`
	TopP               float64       `yaml:"top_p"            env:"AI_TOP_P"            env-default:"0.9"`
	InsightMaxLen      int           `yaml:"insight_max_len"  env:"AI_INSIGHT_MAX_LEN"  env-default:"500"`

	// PreferredModels is parsed from PreferredModelsRaw during validation.
	PreferredModels []string `yaml:"-" env:"-"`
}

// WeatherConfig holds settings for the weather bridge and its cache.
type WeatherConfig struct {
	BaseURL         string        `yaml:"base_url"         env:"WEATHER_BASE_URL"`
	DefaultLocation string        `yaml:"default_location" env:"WEATHER_DEFAULT_LOCATION" env-default:"Mumbai"`
	Freshness       time.Duration `yaml:"freshness"        env:"WEATHER_FRESHNESS"        env-default:"30m"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"WEATHER_REQUEST_TIMEOUT"  env-default:"5s"`
	Retention       time.Duration `yaml:"retention"        env:"WEATHER_RETENTION"        env-default:"24h"`
}

// DashboardConfig holds dashboard metric settings.
type DashboardConfig struct {
	ExpectedLocationsRaw string `yaml:"expected_locations" env:"DASHBOARD_EXPECTED_LOCATIONS" env-default:"North Gate,Structure A,Sector 9,Main Office,Drainage Area"`

	// ExpectedLocations is parsed from ExpectedLocationsRaw during validation.
	ExpectedLocations []string `yaml:"-" env:"-"`
}

// InventoryConfig holds stock settings.
type InventoryConfig struct {
	DefaultMinQuantity float64 `yaml:"default_min_quantity" env:"INVENTORY_DEFAULT_MIN_QUANTITY" env-default:"100"`
}

// DrawingsConfig holds blueprint folder settings.
type DrawingsConfig struct {
	Folder string `yaml:"folder" env:"DRAWINGS_FOLDER" env-default:"Drawings"`
}

// ShellConfig holds desktop shell settings.
type ShellConfig struct {
	Enabled bool   `yaml:"enabled" env:"SHELL_ENABLED" env-default:"false"`
	BaseDir string `yaml:"base_dir" env:"SHELL_BASE_DIR" env-default:"."`
	Opener  string `yaml:"opener"  env:"SHELL_OPENER"  env-default:"xdg-open"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SplitList parses a comma-separated list, dropping empty items.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
