// Package config loads the service configuration from YAML or JSON files
// with environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gridwerk/microgrid/core/cycle"
	"github.com/gridwerk/microgrid/core/forecast"
	"github.com/gridwerk/microgrid/core/metrics"
	"github.com/gridwerk/microgrid/infra/alert"
)

// CarbonConfig selects the grid profile used for emissions reporting.
type CarbonConfig struct {
	// GridType is one of coal, natural_gas, mixed_grid, renewable.
	GridType string `json:"grid_type"`
}

// SetDefaults applies fallback values.
func (c *CarbonConfig) SetDefaults() {
	if c.GridType == "" {
		c.GridType = "mixed_grid"
	}
}

// Config aggregates all service settings.
type Config struct {
	Cycle    cycle.Config             `json:"cycle"`
	Forecast forecast.SyntheticConfig `json:"forecast"`
	Metrics  metrics.Config           `json:"metrics"`
	Alerts   alert.Config             `json:"alerts"`
	Carbon   CarbonConfig             `json:"carbon"`
}

// Load reads the configuration file at path. Environment variables prefixed
// with MG_ override file values, with "__" as the nesting separator.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("MG_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mg_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Cycle.SetDefaults()
	cfg.Forecast.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Alerts.SetDefaults()
	cfg.Carbon.SetDefaults()
	if err := cfg.Cycle.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
