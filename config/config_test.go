package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
cycle:
  horizon_hours: 12
  battery_capacity_kwh: 250
forecast:
  solar_peak_kw: 300
metrics:
  prometheus_enabled: true
carbon:
  grid_type: coal
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cycle.HorizonHours != 12 || cfg.Cycle.BatteryCapacityKWh != 250 {
		t.Fatalf("cycle config %+v", cfg.Cycle)
	}
	if cfg.Forecast.SolarPeakKW != 300 {
		t.Fatalf("forecast config %+v", cfg.Forecast)
	}
	if !cfg.Metrics.PrometheusEnabled || cfg.Metrics.PrometheusPort != "9090" {
		t.Fatalf("metrics config %+v", cfg.Metrics)
	}
	if cfg.Carbon.GridType != "coal" {
		t.Fatalf("carbon config %+v", cfg.Carbon)
	}
	// Defaults fill untouched sections.
	if cfg.Cycle.IntervalSeconds != 900 || cfg.Alerts.TopicPrefix != "microgrid/alerts" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"cycle":{"horizon_hours":6}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cycle.HorizonHours != 6 {
		t.Fatalf("cycle config %+v", cfg.Cycle)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "cycle:\n  horizon_hours: 12\n")
	t.Setenv("MG_CYCLE__HORIZON_HOURS", "48")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cycle.HorizonHours != 48 {
		t.Fatalf("env override not applied: %+v", cfg.Cycle)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1")
	if _, err := Load(path); err == nil {
		t.Fatalf("unsupported format must fail")
	}
}

func TestLoadRejectsInvalidCycle(t *testing.T) {
	path := writeConfig(t, "config.yaml", "cycle:\n  initial_soc_pct: 150\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("invalid cycle config must fail")
	}
}
