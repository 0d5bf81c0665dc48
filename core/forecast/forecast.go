// Package forecast defines the forecast source consumed by the decision
// cycle and a deterministic synthetic implementation for development and
// tests.
package forecast

// Source supplies hourly generation and load forecasts. Both vectors are
// non-negative and ordered from the next hour onward; implementations may
// return fewer entries than requested, the planner pads them to its horizon.
type Source interface {
	// Solar returns the predicted generation in kW for the next n hours.
	Solar(n int) []float64
	// Load returns the predicted consumption in kW for the next n hours.
	Load(n int) []float64
}
