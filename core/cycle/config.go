package cycle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridwerk/microgrid/core/model"
)

// SiteConstraint declares an additional operational limit registered on top
// of the guard rail defaults, e.g. battery power bounds derived from the
// installed inverter.
type SiteConstraint struct {
	Component string  `json:"component" yaml:"component"`
	Name      string  `json:"name" yaml:"name"`
	Type      string  `json:"type" yaml:"type"`
	Min       float64 `json:"min_value" yaml:"min_value"`
	Max       float64 `json:"max_value" yaml:"max_value"`
	Critical  bool    `json:"critical" yaml:"critical"`
}

// Constraint converts the declaration into a model constraint.
func (s SiteConstraint) Constraint() (model.Constraint, error) {
	t, err := parseConstraintType(s.Type)
	if err != nil {
		return model.Constraint{}, err
	}
	if s.Min > s.Max {
		return model.Constraint{}, fmt.Errorf("constraint %s: min %v > max %v", s.Name, s.Min, s.Max)
	}
	return model.Constraint{Name: s.Name, Type: t, Min: s.Min, Max: s.Max, Critical: s.Critical}, nil
}

func parseConstraintType(s string) (model.ConstraintType, error) {
	switch strings.ToLower(s) {
	case "voltage":
		return model.ConstraintVoltage, nil
	case "current":
		return model.ConstraintCurrent, nil
	case "power":
		return model.ConstraintPower, nil
	case "state_of_charge", "soc":
		return model.ConstraintSOC, nil
	case "temperature":
		return model.ConstraintTemperature, nil
	case "frequency":
		return model.ConstraintFrequency, nil
	default:
		return 0, fmt.Errorf("unknown constraint type: %s", s)
	}
}

// Config defines the planning parameters of the decision cycle.
type Config struct {
	HorizonHours       int     `json:"horizon_hours" yaml:"horizon_hours"`
	IntervalSeconds    int     `json:"interval_seconds" yaml:"interval_seconds"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh" yaml:"battery_capacity_kwh"`
	InitialSOCPct      float64 `json:"initial_soc_pct" yaml:"initial_soc_pct"`
	// PackVoltageV converts projected battery power to current for gating.
	PackVoltageV float64          `json:"pack_voltage_v" yaml:"pack_voltage_v"`
	Tariff       []float64        `json:"tariff" yaml:"tariff"`
	Constraints  []SiteConstraint `json:"constraints" yaml:"constraints"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.HorizonHours <= 0 {
		c.HorizonHours = 24
	}
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = 900
	}
	if c.BatteryCapacityKWh == 0 {
		c.BatteryCapacityKWh = 500
	}
	if c.InitialSOCPct == 0 {
		c.InitialSOCPct = 50
	}
	if c.PackVoltageV == 0 {
		c.PackVoltageV = 400
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BatteryCapacityKWh < 0 {
		return fmt.Errorf("battery_capacity_kwh must not be negative")
	}
	if c.InitialSOCPct < 0 || c.InitialSOCPct > 100 {
		return fmt.Errorf("initial_soc_pct must be within [0,100]")
	}
	if len(c.Tariff) > 0 && len(c.Tariff) < c.HorizonHours {
		return fmt.Errorf("tariff must cover the horizon: %d < %d", len(c.Tariff), c.HorizonHours)
	}
	for _, sc := range c.Constraints {
		if _, err := sc.Constraint(); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig loads a Config from a JSON or YAML file.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var cfg Config
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err != nil {
		return Config{}, err
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}

// DecodeConfig reads from r to decode a Config.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	cfg.SetDefaults()
	return cfg, cfg.Validate()
}
