package cycle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridwerk/microgrid/core/model"
)

func TestConfigSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.HorizonHours != 24 || cfg.IntervalSeconds != 900 {
		t.Fatalf("bad defaults %+v", cfg)
	}
	if cfg.BatteryCapacityKWh != 500 || cfg.InitialSOCPct != 50 || cfg.PackVoltageV != 400 {
		t.Fatalf("bad defaults %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{HorizonHours: 24, BatteryCapacityKWh: 500, InitialSOCPct: 50}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	cfg.InitialSOCPct = 150
	if err := cfg.Validate(); err == nil {
		t.Fatalf("soc above 100 must be rejected")
	}
	cfg.InitialSOCPct = 50
	cfg.Tariff = []float64{1, 2, 3}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("short tariff must be rejected")
	}
}

func TestSiteConstraintConversion(t *testing.T) {
	sc := SiteConstraint{Component: "battery", Name: "Inverter Power", Type: "power", Min: -50, Max: 50, Critical: true}
	c, err := sc.Constraint()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if c.Type != model.ConstraintPower || !c.Critical {
		t.Fatalf("bad constraint %+v", c)
	}

	if _, err := (SiteConstraint{Type: "entropy"}).Constraint(); err == nil {
		t.Fatalf("unknown type must be rejected")
	}
	if _, err := (SiteConstraint{Type: "power", Min: 10, Max: -10}).Constraint(); err == nil {
		t.Fatalf("inverted bounds must be rejected")
	}
	// Both spellings of the SOC type are accepted.
	for _, s := range []string{"soc", "state_of_charge"} {
		if _, err := (SiteConstraint{Type: s, Max: 100}).Constraint(); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
}

func TestDecodeConfigYAML(t *testing.T) {
	data := "horizon_hours: 12\nbattery_capacity_kwh: 250\ninitial_soc_pct: 40\n"
	cfg, err := DecodeConfig(bytes.NewBufferString(data), "yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.HorizonHours != 12 || cfg.BatteryCapacityKWh != 250 || cfg.InitialSOCPct != 40 {
		t.Fatalf("bad cfg %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cycle.json")
	body := `{"horizon_hours":6,"battery_capacity_kwh":100,"constraints":[{"component":"battery","name":"Inverter Power","type":"power","min_value":-25,"max_value":25,"critical":true}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HorizonHours != 6 || len(cfg.Constraints) != 1 {
		t.Fatalf("bad cfg %+v", cfg)
	}
	if cfg.Constraints[0].Name != "Inverter Power" {
		t.Fatalf("constraint not decoded: %+v", cfg.Constraints[0])
	}

	if _, err := LoadConfig(filepath.Join(dir, "cycle.txt")); err == nil {
		t.Fatalf("unsupported extension must fail")
	}
}
