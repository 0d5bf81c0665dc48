package carbon

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Equivalence factors used to translate saved CO2 into relatable figures.
const (
	kgPerTreeYear   = 21.0   // one tree absorbs ~21 kg CO2 per year
	kgPerCarYear    = 4600.0 // an average car emits 4.6 t per year
	kWhPerHomeDay   = 30.0
	litersPerKWh    = 0.1
	coalKgPerKWhCO2 = 0.95
)

// DailyReport summarises the last 24 hours.
type DailyReport struct {
	Date                 string  `json:"date"`
	TotalCarbonSavedKg   float64 `json:"total_carbon_saved_kg"`
	TotalRenewableKWh    float64 `json:"total_renewable_generation_kwh"`
	AvgRenewablePct      float64 `json:"average_renewable_percentage"`
	TreesPlanted         float64 `json:"trees_planted"`
	CarsOffRoadDays      float64 `json:"cars_off_road_days"`
	HomesPowered         float64 `json:"homes_powered"`
	PeakRenewablePct     float64 `json:"peak_renewable_percentage"`
	MinCarbonIntensity   float64 `json:"minimum_carbon_intensity"`
	TotalDataPoints      int     `json:"total_data_points"`
}

// MonthlyReport summarises the last 30 days with a weekly trend.
type MonthlyReport struct {
	Period              string    `json:"period"`
	TotalCarbonSavedKg  float64   `json:"total_carbon_saved_kg"`
	TotalCarbonSavedT   float64   `json:"total_carbon_saved_tons"`
	TotalRenewableKWh   float64   `json:"total_renewable_generation_kwh"`
	AvgRenewablePct     float64   `json:"average_renewable_percentage"`
	WeeklyTrend         []float64 `json:"weekly_trend"`
	TreesEquivalent     float64   `json:"trees_equivalent"`
	FuelSavedLiters     float64   `json:"fuel_saved_liters"`
	CoalAvoidedKg       float64   `json:"coal_avoided_kg"`
}

// Daily builds the report for the 24 hours preceding now. An empty history
// yields a zero report.
func (r *Reporter) Daily() DailyReport {
	now := r.now()
	recent := r.since(now.Add(-24 * time.Hour))
	if len(recent) == 0 {
		return DailyReport{}
	}

	var saved, renewable float64
	pcts := make([]float64, len(recent))
	peak := recent[0].RenewablePercentage
	minIntensity := recent[0].CarbonIntensity
	for i, m := range recent {
		saved += m.CarbonSavedKg
		renewable += m.RenewableKWh
		pcts[i] = m.RenewablePercentage
		if m.RenewablePercentage > peak {
			peak = m.RenewablePercentage
		}
		if m.CarbonIntensity < minIntensity {
			minIntensity = m.CarbonIntensity
		}
	}

	return DailyReport{
		Date:               now.Format("2006-01-02"),
		TotalCarbonSavedKg: saved,
		TotalRenewableKWh:  renewable,
		AvgRenewablePct:    stat.Mean(pcts, nil),
		TreesPlanted:       saved / kgPerTreeYear * 365,
		CarsOffRoadDays:    saved / kgPerCarYear * 365,
		HomesPowered:       renewable / kWhPerHomeDay,
		PeakRenewablePct:   peak,
		MinCarbonIntensity: minIntensity,
		TotalDataPoints:    len(recent),
	}
}

// Monthly builds the report for the 30 days preceding now.
func (r *Reporter) Monthly() MonthlyReport {
	now := r.now()
	cutoff := now.Add(-30 * 24 * time.Hour)
	recent := r.since(cutoff)
	if len(recent) == 0 {
		return MonthlyReport{}
	}

	var saved, renewable float64
	pcts := make([]float64, len(recent))
	for i, m := range recent {
		saved += m.CarbonSavedKg
		renewable += m.RenewableKWh
		pcts[i] = m.RenewablePercentage
	}

	var weekly []float64
	for week := 0; week < 4; week++ {
		start := now.Add(-time.Duration(4-week) * 7 * 24 * time.Hour)
		end := start.Add(7 * 24 * time.Hour)
		sum := 0.0
		n := 0
		for _, m := range recent {
			if !m.Timestamp.Before(start) && m.Timestamp.Before(end) {
				sum += m.CarbonSavedKg
				n++
			}
		}
		if n > 0 {
			weekly = append(weekly, sum)
		}
	}

	return MonthlyReport{
		Period:             fmt.Sprintf("%s to %s", cutoff.Format("2006-01-02"), now.Format("2006-01-02")),
		TotalCarbonSavedKg: saved,
		TotalCarbonSavedT:  saved / 1000,
		TotalRenewableKWh:  renewable,
		AvgRenewablePct:    stat.Mean(pcts, nil),
		WeeklyTrend:        weekly,
		TreesEquivalent:    saved / kgPerTreeYear * 12,
		FuelSavedLiters:    renewable * litersPerKWh,
		CoalAvoidedKg:      saved / coalKgPerKWhCO2,
	}
}

// Export writes a daily or monthly report as indented JSON.
func (r *Reporter) Export(path, reportType string) error {
	var report any
	switch reportType {
	case "daily":
		report = r.Daily()
	case "monthly":
		report = r.Monthly()
	default:
		return fmt.Errorf("report type must be daily or monthly, got %q", reportType)
	}
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
