// Package metrics defines the recording contracts used by the decision cycle
// for observability. Implementations live in infra/metrics.
package metrics

import "time"

// CycleRecord captures the outcome of one decision cycle.
type CycleRecord struct {
	Time           time.Time
	Horizon        int
	FallbackHours  int
	ObjectiveValue float64
	CostSavingsPct float64
	SolveTime      time.Duration
	Success        bool
	FinalSOC       float64
}

// ViolationRecord captures one constraint violation.
type ViolationRecord struct {
	Component  string
	Constraint string
	Value      float64
	Critical   bool
	Time       time.Time
}

// Sink records decision-cycle observability events.
type Sink interface {
	RecordCycle(CycleRecord) error
	RecordViolation(ViolationRecord) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordCycle(CycleRecord) error         { return nil }
func (NopSink) RecordViolation(ViolationRecord) error { return nil }
