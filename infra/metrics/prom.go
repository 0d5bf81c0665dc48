package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gridwerk/microgrid/core/metrics"
)

// PromSink records decision-cycle events in Prometheus metrics.
type PromSink struct {
	cycles     *prometheus.CounterVec
	violations *prometheus.CounterVec
	fallback   prometheus.Counter
	solveTime  prometheus.Histogram
	savings    prometheus.Gauge
	soc        prometheus.Gauge
}

// NewPromSink registers cycle metrics on the default Prometheus registerer.
// The metrics HTTP server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer. A nil
// registerer defaults to the global one.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cycles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_cycles_total",
		Help: "Total number of decision cycles",
	}, []string{"success"})
	violations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guardrail_violations_total",
		Help: "Total number of constraint violations",
	}, []string{"component", "critical"})
	fallback := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_fallback_hours_total",
		Help: "Total schedule hours replaced by the grid-only fallback",
	})
	solveTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_solve_seconds",
		Help:    "Wall-clock optimization duration",
		Buckets: prometheus.DefBuckets,
	})
	savings := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_cost_savings_pct",
		Help: "Cost savings of the last schedule versus the no-battery baseline",
	})
	soc := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "battery_projected_soc_pct",
		Help: "Projected battery state of charge after the accepted schedule",
	})

	collectors := []prometheus.Collector{cycles, violations, fallback, solveTime, savings, soc}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	cycles = collectors[0].(*prometheus.CounterVec)
	violations = collectors[1].(*prometheus.CounterVec)
	fallback = collectors[2].(prometheus.Counter)
	solveTime = collectors[3].(prometheus.Histogram)
	savings = collectors[4].(prometheus.Gauge)
	soc = collectors[5].(prometheus.Gauge)

	return &PromSink{
		cycles:     cycles,
		violations: violations,
		fallback:   fallback,
		solveTime:  solveTime,
		savings:    savings,
		soc:        soc,
	}, nil
}

// RecordCycle updates cycle counters and gauges.
func (s *PromSink) RecordCycle(r coremetrics.CycleRecord) error {
	s.cycles.WithLabelValues(strconv.FormatBool(r.Success)).Inc()
	s.fallback.Add(float64(r.FallbackHours))
	s.solveTime.Observe(r.SolveTime.Seconds())
	s.savings.Set(r.CostSavingsPct)
	s.soc.Set(r.FinalSOC)
	return nil
}

// RecordViolation increments the violation counter.
func (s *PromSink) RecordViolation(r coremetrics.ViolationRecord) error {
	s.violations.WithLabelValues(r.Component, strconv.FormatBool(r.Critical)).Inc()
	return nil
}
