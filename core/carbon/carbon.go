// Package carbon tracks emissions avoided by renewable generation and
// battery discharge. It consumes accepted dispatch outcomes and produces
// daily and monthly summaries.
package carbon

import "time"

// Grid carbon intensity factors in kg CO2 per kWh.
var gridIntensity = map[string]float64{
	"coal":        0.95,
	"natural_gas": 0.45,
	"mixed_grid":  0.71,
	"renewable":   0.05,
}

const defaultIntensity = 0.71

// Metrics is one emissions sample.
type Metrics struct {
	Timestamp           time.Time `json:"timestamp"`
	GridEmissionsKg     float64   `json:"grid_emissions"`
	RenewableKWh        float64   `json:"renewable_generation"`
	CarbonSavedKg       float64   `json:"carbon_saved"`
	CarbonIntensity     float64   `json:"carbon_intensity"`
	RenewablePercentage float64   `json:"renewable_percentage"`
}

// Reporter accumulates emissions samples for one grid profile. Instances are
// not safe for concurrent use.
type Reporter struct {
	gridType  string
	intensity float64
	history   []Metrics
	now       func() time.Time
}

// NewReporter creates a Reporter for the given grid type. Unknown types fall
// back to the mixed-grid factor.
func NewReporter(gridType string) *Reporter {
	intensity, ok := gridIntensity[gridType]
	if !ok {
		intensity = defaultIntensity
	}
	return &Reporter{gridType: gridType, intensity: intensity, now: time.Now}
}

// Record computes the emissions metrics for one period and appends them to
// the history. All energies are kWh for the period.
func (r *Reporter) Record(gridConsumption, solarGeneration, windGeneration, batteryDischarge float64) Metrics {
	renewable := solarGeneration + windGeneration + batteryDischarge
	total := gridConsumption + renewable

	// Emissions had the whole demand been grid-supplied.
	gridEmissions := total * r.intensity
	actual := gridConsumption * r.intensity

	m := Metrics{
		Timestamp:       r.now(),
		GridEmissionsKg: gridEmissions,
		RenewableKWh:    renewable,
		CarbonSavedKg:   gridEmissions - actual,
	}
	if total > 0 {
		m.CarbonIntensity = actual / total
		m.RenewablePercentage = renewable / total * 100
	}
	r.history = append(r.history, m)
	return m
}

// since returns the samples recorded at or after the cutoff.
func (r *Reporter) since(cutoff time.Time) []Metrics {
	var out []Metrics
	for _, m := range r.history {
		if !m.Timestamp.Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}
