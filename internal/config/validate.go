package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path is required")
	}

	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	if err := c.Weather.validate(); err != nil {
		return fmt.Errorf("weather: %w", err)
	}

	if c.Inventory.DefaultMinQuantity < 0 {
		return fmt.Errorf("inventory.default_min_quantity must be >= 0 (got %v)", c.Inventory.DefaultMinQuantity)
	}

	if strings.ContainsAny(c.Drawings.Folder, `/\`) {
		return fmt.Errorf("drawings.folder must be a plain folder name (got %q)", c.Drawings.Folder)
	}

	c.Dashboard.ExpectedLocations = SplitList(c.Dashboard.ExpectedLocationsRaw)

	return nil
}

func (a *AIConfig) validate() error {
	if a.Temperature < 0 || a.Temperature > 2 {
		return fmt.Errorf("temperature must be in 0..2 (got %v)", a.Temperature)
	}
	if a.TopP <= 0 || a.TopP > 1 {
		return fmt.Errorf("top_p must be in (0, 1] (got %v)", a.TopP)
	}
	if a.RequestTimeout <= 0 || a.ProbeTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0")
	}
	if a.InsightMaxLen <= 0 {
		return fmt.Errorf("insight_max_len must be > 0 (got %d)", a.InsightMaxLen)
	}

	a.PreferredModels = SplitList(a.PreferredModelsRaw)
	return nil
}

func (w *WeatherConfig) validate() error {
	if w.Freshness <= 0 {
		return fmt.Errorf("freshness must be > 0 (got %s)", w.Freshness)
	}
	if w.Retention < w.Freshness {
		return fmt.Errorf("retention (%s) must not be shorter than freshness (%s)", w.Retention, w.Freshness)
	}
	return nil
}
