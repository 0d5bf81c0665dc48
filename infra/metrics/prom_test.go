package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/gridwerk/microgrid/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}

	err = sink.RecordCycle(coremetrics.CycleRecord{
		Time:           time.Now(),
		Horizon:        24,
		FallbackHours:  2,
		CostSavingsPct: 12.5,
		SolveTime:      3 * time.Millisecond,
		Success:        true,
		FinalSOC:       64,
	})
	if err != nil {
		t.Fatalf("record cycle: %v", err)
	}
	if err := sink.RecordViolation(coremetrics.ViolationRecord{Component: "battery", Critical: true}); err != nil {
		t.Fatalf("record violation: %v", err)
	}

	if got := testutil.ToFloat64(sink.cycles.WithLabelValues("true")); got != 1 {
		t.Fatalf("cycles counter: %v", got)
	}
	if got := testutil.ToFloat64(sink.fallback); got != 2 {
		t.Fatalf("fallback counter: %v", got)
	}
	if got := testutil.ToFloat64(sink.savings); got != 12.5 {
		t.Fatalf("savings gauge: %v", got)
	}
	if got := testutil.ToFloat64(sink.soc); got != 64 {
		t.Fatalf("soc gauge: %v", got)
	}
	if got := testutil.ToFloat64(sink.violations.WithLabelValues("battery", "true")); got != 1 {
		t.Fatalf("violations counter: %v", got)
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	// A second sink on the same registry reuses the existing collectors.
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second sink: %v", err)
	}
	if err := sink.RecordCycle(coremetrics.CycleRecord{Success: true}); err != nil {
		t.Fatalf("record: %v", err)
	}
}
