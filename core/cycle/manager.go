// Package cycle composes the planner and the guard rail into the per-tick
// decision loop: forecasts in, constraint-gated schedule out.
package cycle

import (
	"time"

	"github.com/gridwerk/microgrid/core/events"
	"github.com/gridwerk/microgrid/core/forecast"
	"github.com/gridwerk/microgrid/core/guard"
	"github.com/gridwerk/microgrid/core/logger"
	"github.com/gridwerk/microgrid/core/metrics"
	"github.com/gridwerk/microgrid/core/model"
	"github.com/gridwerk/microgrid/core/solver"
	"github.com/gridwerk/microgrid/internal/eventbus"
)

// TickResult is the outcome of one decision cycle.
type TickResult struct {
	// Plan is the raw planner output before gating.
	Plan solver.Result
	// Battery and Grid are the accepted schedules after gating. Rejected
	// hours carry the safe fallback: zero battery action, full load from
	// grid.
	Battery []float64
	Grid    []float64
	// FallbackHours lists the hour indices replaced by the fallback.
	FallbackHours []int
	// Health is the telemetry health report for this tick, if telemetry was
	// available.
	Health model.HealthReport
	// FinalSOC is the projected state of charge after the accepted schedule.
	FinalSOC float64
	// Solar and Load are the forecasts the plan was built from, padded to
	// the horizon.
	Solar []float64
	Load  []float64
}

// Manager owns the per-site decision loop. One Manager per microgrid site;
// instances are not safe for concurrent use.
type Manager struct {
	cfg    Config
	guard  *guard.GuardRail
	bridge *solver.Bridge
	source forecast.Source
	log    logger.Logger
	sink   metrics.Sink
	bus    eventbus.EventBus

	soc        float64
	telemetry  model.SystemState
	lastHealth model.HealthReport
}

// NewManager wires a decision cycle. Site constraints from the configuration
// are registered on the guard rail on top of the defaults. A nil sink
// defaults to NopSink; a nil bus disables event publication.
func NewManager(cfg Config, g *guard.GuardRail, b *solver.Bridge, src forecast.Source, sink metrics.Sink, bus eventbus.EventBus, log logger.Logger) (*Manager, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, sc := range cfg.Constraints {
		c, err := sc.Constraint()
		if err != nil {
			return nil, err
		}
		g.AddConstraint(sc.Component, c)
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		cfg:    cfg,
		guard:  g,
		bridge: b,
		source: src,
		log:    log,
		sink:   sink,
		bus:    bus,
		soc:    cfg.InitialSOCPct,
	}, nil
}

// SOC returns the manager's current state-of-charge estimate.
func (m *Manager) SOC() float64 { return m.soc }

// UpdateTelemetry stores the latest component samples. A battery SOC reading
// replaces the simulated estimate so the next plan starts from measured
// state.
func (m *Manager) UpdateTelemetry(state model.SystemState) {
	m.telemetry = state
	if battery, ok := state["battery"]; ok {
		if soc, ok := battery["soc"]; ok {
			m.soc = soc
		}
	}
}

// RunTick executes one decision cycle: validate telemetry, plan a schedule,
// gate every hour through the guard rail and substitute the fallback for
// rejected hours. It never returns an error; every failure degrades to the
// safest available schedule.
func (m *Manager) RunTick(now time.Time) TickResult {
	horizon := m.cfg.HorizonHours

	if len(m.telemetry) > 0 {
		m.checkTelemetry(now)
	}

	solar := pad(m.source.Solar(horizon), horizon)
	load := pad(m.source.Load(horizon), horizon)
	plan := m.bridge.Optimize(solar, load, m.cfg.BatteryCapacityKWh, m.soc, m.tariff(), horizon)

	res := m.gate(plan, load, now)
	res.Health = m.lastHealth
	res.Solar = solar
	res.Load = load

	m.sink.RecordCycle(metrics.CycleRecord{
		Time:           now,
		Horizon:        horizon,
		FallbackHours:  len(res.FallbackHours),
		ObjectiveValue: plan.ObjectiveValue,
		CostSavingsPct: plan.CostSavingsPct,
		SolveTime:      plan.SolveTime,
		Success:        plan.Success,
		FinalSOC:       res.FinalSOC,
	})
	if m.bus != nil {
		m.bus.Publish(events.CycleEvent{
			Horizon:        horizon,
			FallbackHours:  len(res.FallbackHours),
			ObjectiveValue: plan.ObjectiveValue,
			CostSavingsPct: plan.CostSavingsPct,
			SolveTime:      plan.SolveTime,
			Success:        plan.Success,
			Time:           now,
		})
	}
	if m.log != nil {
		m.log.Infof("cycle complete: objective %.2f, savings %.1f%%, %d fallback hour(s)",
			plan.ObjectiveValue, plan.CostSavingsPct, len(res.FallbackHours))
	}
	return res
}

// gate walks the proposed schedule hour by hour with the SOC carried
// forward. A rejected hour keeps the previous SOC since no battery action is
// taken; subsequent hours are re-projected from the substituted state.
func (m *Manager) gate(plan solver.Result, load []float64, now time.Time) TickResult {
	horizon := len(plan.BatterySchedule)
	res := TickResult{
		Plan:    plan,
		Battery: make([]float64, horizon),
		Grid:    make([]float64, horizon),
	}

	soc := m.soc
	for h := 0; h < horizon; h++ {
		power := plan.BatterySchedule[h]
		projected := applySOC(soc, power, m.cfg.BatteryCapacityKWh)
		params := model.Parameters{
			"soc":     projected,
			"power":   power,
			"current": power * 1000 / m.cfg.PackVoltageV,
		}
		valid, violations := m.guard.ValidateAction("battery", params)
		if valid {
			res.Battery[h] = power
			res.Grid[h] = plan.GridSchedule[h]
			soc = projected
			continue
		}
		res.Battery[h] = 0
		res.Grid[h] = loadAt(load, h)
		res.FallbackHours = append(res.FallbackHours, h)
		m.reportBlockedHour(h, violations, now)
	}
	res.FinalSOC = soc
	return res
}

func (m *Manager) reportBlockedHour(hour int, violations []string, now time.Time) {
	if m.log != nil {
		m.log.Warnf("hour %d rejected by guard rail, substituting grid-only fallback: %v", hour, violations)
	}
	if m.bus != nil {
		m.bus.Publish(events.BlockedHourEvent{Hour: hour, Violations: violations, Time: now})
		for _, v := range violations {
			m.bus.Publish(events.ViolationEvent{Component: "battery", Message: v, Critical: true, Time: now})
		}
	}
	m.sink.RecordViolation(metrics.ViolationRecord{
		Component:  "battery",
		Constraint: "schedule_gate",
		Critical:   true,
		Time:       now,
	})
}

// checkTelemetry validates the latest samples and fans the report out.
func (m *Manager) checkTelemetry(now time.Time) {
	report := m.guard.CheckSystemHealth(m.telemetry)
	m.lastHealth = report
	if m.bus != nil {
		m.bus.Publish(events.HealthEvent{Report: report, Time: now})
		for component, ch := range report.Components {
			for _, msg := range ch.Violations {
				m.bus.Publish(events.ViolationEvent{Component: component, Message: msg, Time: now})
			}
		}
	}
	if !report.Healthy && m.log != nil {
		m.log.Warnf("telemetry unhealthy: %d critical, %d warning(s)",
			report.CriticalViolations, report.Warnings)
	}
}

func (m *Manager) tariff() []float64 {
	if len(m.cfg.Tariff) == 0 {
		return nil
	}
	return m.cfg.Tariff
}

// applySOC projects the SOC after one hour of battery action, clamped to
// [0,100].
func applySOC(soc, power, capacityKWh float64) float64 {
	trace := solver.ProjectSOC([]float64{power}, capacityKWh, soc)
	return trace[0]
}

func loadAt(load []float64, h int) float64 {
	if h < len(load) {
		return load[h]
	}
	if len(load) > 0 {
		return load[len(load)-1]
	}
	return 0
}

// pad extends a forecast to the horizon by repeating its last value, or
// truncates it. An empty forecast becomes all zeros.
func pad(v []float64, n int) []float64 {
	if len(v) >= n {
		return v[:n]
	}
	out := make([]float64, n)
	copy(out, v)
	if len(v) > 0 {
		last := v[len(v)-1]
		for i := len(v); i < n; i++ {
			out[i] = last
		}
	}
	return out
}
