package solver

import (
	"time"

	"github.com/gridwerk/microgrid/core/logger"
)

// DefaultHorizonHours is the planning horizon used when callers pass a
// non-positive horizon.
const DefaultHorizonHours = 24

// Bridge wraps the optimization backend with timing, failure containment and
// running counters. One Bridge per site; instances hold no locks, so callers
// sharing one must serialize access.
type Bridge struct {
	log logger.Logger

	solveCount     int
	failedSolves   int
	totalSolveTime time.Duration
}

// NewBridge returns a Bridge using the built-in heuristic backend.
func NewBridge(log logger.Logger) *Bridge {
	return &Bridge{log: log}
}

// Optimize produces a dispatch schedule for the horizon. A nil tariff selects
// the default time-of-use vector. Forecasts are padded or truncated to the
// horizon. Optimize never returns an error: if the backend fails, the result
// is the safe fallback (all load from grid, zero battery action) with
// Success set to false.
func (b *Bridge) Optimize(solar, load []float64, capacityKWh, initialSOC float64, tariff []float64, horizon int) Result {
	start := time.Now()
	if horizon <= 0 {
		horizon = DefaultHorizonHours
	}
	if tariff == nil {
		tariff = DefaultTariff(horizon)
	}

	result, ok := b.trySolve(solar, load, capacityKWh, initialSOC, tariff, horizon)
	elapsed := time.Since(start)

	b.solveCount++
	b.totalSolveTime += elapsed

	if !ok {
		b.failedSolves++
		return Result{
			Success:         false,
			BatterySchedule: make([]float64, horizon),
			GridSchedule:    fallbackGrid(load, horizon),
			SolveTime:       elapsed,
			Solver:          Heuristic,
		}
	}

	result.SolveTime = elapsed
	if b.log != nil {
		b.log.Infof("optimization complete in %s, objective: %.2f", elapsed, result.ObjectiveValue)
	}
	return result
}

// trySolve pads the inputs and runs the heuristic, converting any panic from
// the backend into a failed solve. This is the sole failure path of the
// planner.
func (b *Bridge) trySolve(solar, load []float64, capacityKWh, initialSOC float64, tariff []float64, horizon int) (result Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if b.log != nil {
				b.log.Errorf("optimization failed: %v", r)
			}
			ok = false
		}
	}()
	solar = padForecast(solar, horizon)
	load = padForecast(load, horizon)
	tariff = padForecast(tariff, horizon)
	return solveHeuristic(solar, load, capacityKWh, initialSOC, tariff, horizon), true
}

// fallbackGrid supplies the entire load from grid. Missing tail hours are
// zero-filled so the fallback never panics itself.
func fallbackGrid(load []float64, horizon int) []float64 {
	grid := make([]float64, horizon)
	for h := 0; h < horizon && h < len(load); h++ {
		grid[h] = load[h]
	}
	return grid
}

// PerformanceMetrics reports running solver counters.
func (b *Bridge) PerformanceMetrics() PerformanceMetrics {
	m := PerformanceMetrics{
		TotalSolves:    b.solveCount,
		FailedSolves:   b.failedSolves,
		TotalSolveTime: b.totalSolveTime,
	}
	if b.solveCount > 0 {
		m.SuccessRatePct = float64(b.solveCount-b.failedSolves) / float64(b.solveCount) * 100
		m.AvgSolveTime = b.totalSolveTime / time.Duration(b.solveCount)
	}
	return m
}
