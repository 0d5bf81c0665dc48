package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/gridwerk/microgrid/core/metrics"
)

type countSink struct {
	cycles     int
	violations int
	err        error
}

func (s *countSink) RecordCycle(coremetrics.CycleRecord) error {
	s.cycles++
	return s.err
}

func (s *countSink) RecordViolation(coremetrics.ViolationRecord) error {
	s.violations++
	return s.err
}

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &countSink{}, &countSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordCycle(coremetrics.CycleRecord{}); err != nil {
		t.Fatalf("record cycle: %v", err)
	}
	if err := m.RecordViolation(coremetrics.ViolationRecord{}); err != nil {
		t.Fatalf("record violation: %v", err)
	}
	if a.cycles != 1 || b.cycles != 1 || a.violations != 1 || b.violations != 1 {
		t.Fatalf("fan out: %+v %+v", a, b)
	}
}

func TestMultiSinkReturnsFirstError(t *testing.T) {
	boom := errors.New("sink down")
	a := &countSink{err: boom}
	b := &countSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordCycle(coremetrics.CycleRecord{}); !errors.Is(err, boom) {
		t.Fatalf("expected first error, got %v", err)
	}
	// The failing sink stops the fan-out.
	if b.cycles != 0 {
		t.Fatalf("second sink reached after error")
	}
}

func TestRound3(t *testing.T) {
	if got := round3(1.23456); got != 1.235 {
		t.Fatalf("round: %v", got)
	}
	if got := round3(-2.0004); got != -2 {
		t.Fatalf("round: %v", got)
	}
}
