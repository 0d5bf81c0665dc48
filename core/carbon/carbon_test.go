package carbon

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordMixedGrid(t *testing.T) {
	r := NewReporter("mixed_grid")
	m := r.Record(100, 40, 0, 10)

	// 150 kWh total demand at 0.71 kg/kWh versus 100 kWh actually imported.
	if math.Abs(m.GridEmissionsKg-150*0.71) > 1e-9 {
		t.Fatalf("grid emissions: %v", m.GridEmissionsKg)
	}
	if math.Abs(m.CarbonSavedKg-50*0.71) > 1e-9 {
		t.Fatalf("carbon saved: %v", m.CarbonSavedKg)
	}
	if m.RenewableKWh != 50 {
		t.Fatalf("renewable: %v", m.RenewableKWh)
	}
	if math.Abs(m.RenewablePercentage-100.0/3) > 1e-9 {
		t.Fatalf("renewable pct: %v", m.RenewablePercentage)
	}
}

func TestRecordZeroEnergy(t *testing.T) {
	r := NewReporter("renewable")
	m := r.Record(0, 0, 0, 0)
	if m.CarbonIntensity != 0 || m.RenewablePercentage != 0 {
		t.Fatalf("zero sample: %+v", m)
	}
}

func TestUnknownGridTypeFallsBack(t *testing.T) {
	r := NewReporter("fusion")
	if r.intensity != defaultIntensity {
		t.Fatalf("intensity: %v", r.intensity)
	}
}

func TestDailyReport(t *testing.T) {
	r := NewReporter("coal")
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	clock := base.Add(-26 * time.Hour)
	r.now = func() time.Time { return clock }

	// One stale sample outside the 24h window, then three fresh ones.
	r.Record(100, 0, 0, 0)
	for i := 0; i < 3; i++ {
		clock = base.Add(time.Duration(i-3) * time.Hour)
		r.Record(50, 50, 0, 0)
	}
	clock = base

	report := r.Daily()
	if report.TotalDataPoints != 3 {
		t.Fatalf("data points: %d", report.TotalDataPoints)
	}
	if report.TotalRenewableKWh != 150 {
		t.Fatalf("renewable total: %v", report.TotalRenewableKWh)
	}
	// Each fresh sample saves 50 kWh at the coal factor.
	if math.Abs(report.TotalCarbonSavedKg-3*50*0.95) > 1e-9 {
		t.Fatalf("saved: %v", report.TotalCarbonSavedKg)
	}
	if math.Abs(report.AvgRenewablePct-50) > 1e-9 {
		t.Fatalf("avg renewable pct: %v", report.AvgRenewablePct)
	}
	if report.Date != "2026-08-30" {
		t.Fatalf("date: %q", report.Date)
	}
}

func TestDailyReportEmptyHistory(t *testing.T) {
	r := NewReporter("mixed_grid")
	if report := r.Daily(); report.TotalDataPoints != 0 {
		t.Fatalf("empty history report %+v", report)
	}
}

func TestMonthlyReport(t *testing.T) {
	r := NewReporter("natural_gas")
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	clock := base
	r.now = func() time.Time { return clock }

	for day := 0; day < 28; day++ {
		clock = base.Add(-time.Duration(day*24) * time.Hour)
		r.Record(50, 50, 0, 0)
	}
	clock = base

	report := r.Monthly()
	if report.TotalRenewableKWh != 28*50 {
		t.Fatalf("renewable total: %v", report.TotalRenewableKWh)
	}
	if math.Abs(report.TotalCarbonSavedT-report.TotalCarbonSavedKg/1000) > 1e-12 {
		t.Fatalf("tons conversion: %+v", report)
	}
	if len(report.WeeklyTrend) != 4 {
		t.Fatalf("weekly trend: %v", report.WeeklyTrend)
	}
}

func TestExport(t *testing.T) {
	r := NewReporter("mixed_grid")
	r.Record(100, 40, 0, 10)

	path := filepath.Join(t.TempDir(), "daily.json")
	if err := r.Export(path, "daily"); err != nil {
		t.Fatalf("export: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var report DailyReport
	if err := json.Unmarshal(b, &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.TotalDataPoints != 1 {
		t.Fatalf("report %+v", report)
	}

	if err := r.Export(path, "weekly"); err == nil {
		t.Fatalf("unknown report type must fail")
	}
}
