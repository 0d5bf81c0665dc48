// Package events defines the event types exchanged on the internal bus.
package events

import (
	"time"

	"github.com/gridwerk/microgrid/core/model"
)

// ViolationEvent is emitted for every constraint violation reported by the
// guard rail.
type ViolationEvent struct {
	Component string
	Message   string
	Critical  bool
	Time      time.Time
}

// BlockedHourEvent is emitted when the decision cycle replaces one schedule
// hour with the safe fallback.
type BlockedHourEvent struct {
	Hour       int
	Violations []string
	Time       time.Time
}

// CycleEvent summarises one completed decision cycle.
type CycleEvent struct {
	Horizon        int
	FallbackHours  int
	ObjectiveValue float64
	CostSavingsPct float64
	SolveTime      time.Duration
	Success        bool
	Time           time.Time
}

// HealthEvent carries the outcome of a telemetry health check.
type HealthEvent struct {
	Report model.HealthReport
	Time   time.Time
}
