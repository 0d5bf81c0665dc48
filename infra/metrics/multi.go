package metrics

import (
	"math"

	coremetrics "github.com/gridwerk/microgrid/core/metrics"
)

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCycle forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordCycle(r coremetrics.CycleRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordCycle(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordViolation forwards the record to all sinks.
func (m *MultiSink) RecordViolation(r coremetrics.ViolationRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordViolation(r); err != nil {
			return err
		}
	}
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
