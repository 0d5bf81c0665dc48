// Package solver produces always-available dispatch schedules for a rolling
// horizon. The current backend is a deterministic greedy heuristic; the
// Bridge contract is shaped so that a horizon-aware solver can be substituted
// later without changing callers.
package solver

import "time"

// Type identifies the optimization backend that produced a result.
type Type int

const (
	// Heuristic is the built-in greedy rule, always available.
	Heuristic Type = iota
	// LP is reserved for a future linear-programming backend.
	LP
)

// String returns a human-readable representation of the solver type.
func (t Type) String() string {
	switch t {
	case Heuristic:
		return "heuristic"
	case LP:
		return "lp"
	default:
		return "unknown"
	}
}

// Result is the outcome of one optimization call. BatterySchedule is signed:
// positive means charge, negative means discharge. GridSchedule is the
// non-negative grid import per hour. Both have length equal to the horizon.
// The result is immutable after return.
type Result struct {
	Success         bool          `json:"success"`
	ObjectiveValue  float64       `json:"objective_value"`
	BatterySchedule []float64     `json:"battery_schedule"`
	GridSchedule    []float64     `json:"grid_schedule"`
	SolveTime       time.Duration `json:"solve_time"`
	Solver          Type          `json:"solver_used"`
	Iterations      int           `json:"iterations"`
	CostSavingsPct  float64       `json:"cost_savings_pct"`
}

// PerformanceMetrics summarises solver activity since the bridge was created.
type PerformanceMetrics struct {
	TotalSolves    int           `json:"total_solves"`
	FailedSolves   int           `json:"failed_solves"`
	SuccessRatePct float64       `json:"success_rate_pct"`
	AvgSolveTime   time.Duration `json:"avg_solve_time"`
	TotalSolveTime time.Duration `json:"total_solve_time"`
}
