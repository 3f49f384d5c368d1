package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "0.0.0.0"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "5s"

store:
  path: "/tmp/site.db"
  busy_timeout: "2s"
  seed: false

log:
  level: "debug"
  format: "text"

ai:
  base_url: "http://ollama:11434/v1"
  model: "mistral"
  preferred_models: "mistral, llama3.2"
  temperature: 0.2

weather:
  base_url: "http://weather.local"
  default_location: "Pune"
  freshness: "10m"

dashboard:
  expected_locations: "Gate 1,Tower B"

inventory:
  default_min_quantity: 50

drawings:
  folder: "Plans"
`

// validConfig returns a Config with defaults equivalent to an empty file.
func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 5000},
		Store:  StoreConfig{Path: "siteops.db"},
		AI: AIConfig{
			BaseURL:            "http://localhost:11434/v1",
			PreferredModelsRaw: "phi3",
			RequestTimeout:     30 * time.Second,
			ProbeTimeout:       3 * time.Second,
			Temperature:        0.7,
			TopP:               0.9,
			InsightMaxLen:      500,
		},
		Weather:  WeatherConfig{Freshness: 30 * time.Minute, Retention: 24 * time.Hour},
		Drawings: DrawingsConfig{Folder: "Drawings"},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeYAML(t, dir, validYAML))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server.write_timeout = %v, want 30s (default)", cfg.Server.WriteTimeout)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("server addr = %q", cfg.Server.Addr())
	}

	if cfg.Store.Path != "/tmp/site.db" || cfg.Store.Seed {
		t.Errorf("store = %+v", cfg.Store)
	}

	if cfg.AI.Model != "mistral" {
		t.Errorf("ai.model = %q, want mistral", cfg.AI.Model)
	}
	if len(cfg.AI.PreferredModels) != 2 || cfg.AI.PreferredModels[1] != "llama3.2" {
		t.Errorf("ai.preferred_models = %v", cfg.AI.PreferredModels)
	}
	if cfg.AI.TopP != 0.9 {
		t.Errorf("ai.top_p = %v, want 0.9 (default)", cfg.AI.TopP)
	}

	if cfg.Weather.DefaultLocation != "Pune" || cfg.Weather.Freshness != 10*time.Minute {
		t.Errorf("weather = %+v", cfg.Weather)
	}
	if cfg.Weather.Retention != 24*time.Hour {
		t.Errorf("weather.retention = %v, want 24h (default)", cfg.Weather.Retention)
	}

	if len(cfg.Dashboard.ExpectedLocations) != 2 || cfg.Dashboard.ExpectedLocations[0] != "Gate 1" {
		t.Errorf("dashboard.expected_locations = %v", cfg.Dashboard.ExpectedLocations)
	}
	if cfg.Inventory.DefaultMinQuantity != 50 {
		t.Errorf("inventory.default_min_quantity = %v, want 50", cfg.Inventory.DefaultMinQuantity)
	}
	if cfg.Drawings.Folder != "Plans" {
		t.Errorf("drawings.folder = %q", cfg.Drawings.Folder)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeYAML(t, dir, validYAML))
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn (ENV override)", cfg.Log.Level)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("server.port = %d, want 5000 (default)", cfg.Server.Port)
	}
	if cfg.Store.Path != "siteops.db" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}
	if len(cfg.Dashboard.ExpectedLocations) != 5 {
		t.Errorf("dashboard.expected_locations = %v", cfg.Dashboard.ExpectedLocations)
	}
	if len(cfg.AI.PreferredModels) != 4 {
		t.Errorf("ai.preferred_models = %v", cfg.AI.PreferredModels)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeYAML(t, dir, `{{{invalid yaml`))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "empty store path", mutate: func(c *Config) { c.Store.Path = " " }, wantErr: true},
		{name: "temperature too high", mutate: func(c *Config) { c.AI.Temperature = 2.5 }, wantErr: true},
		{name: "top_p zero", mutate: func(c *Config) { c.AI.TopP = 0 }, wantErr: true},
		{name: "probe timeout zero", mutate: func(c *Config) { c.AI.ProbeTimeout = 0 }, wantErr: true},
		{name: "insight length zero", mutate: func(c *Config) { c.AI.InsightMaxLen = 0 }, wantErr: true},
		{name: "retention below freshness", mutate: func(c *Config) { c.Weather.Retention = time.Minute }, wantErr: true},
		{name: "negative minimum", mutate: func(c *Config) { c.Inventory.DefaultMinQuantity = -1 }, wantErr: true},
		{name: "drawings nested", mutate: func(c *Config) { c.Drawings.Folder = "a/b" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SplitList = %v", got)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Errorf("SplitList(\"\") = %v", got)
	}
}
