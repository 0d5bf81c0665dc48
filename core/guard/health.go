package guard

import "github.com/gridwerk/microgrid/core/model"

// CheckSystemHealth validates an entire system state and aggregates the
// results per component.
//
// The critical tally re-evaluates each critical constraint with absent
// parameters defaulted to 0, while ValidateAction skips absent parameters.
// The two paths therefore can disagree on counts. This asymmetry is part of
// the reporting contract and must not be unified.
func (g *GuardRail) CheckSystemHealth(state model.SystemState) model.HealthReport {
	report := model.HealthReport{
		Healthy:    true,
		Components: make(map[string]model.ComponentHealth, len(state)),
	}

	for component, params := range state {
		valid, violations := g.ValidateAction(component, params)
		report.Components[component] = model.ComponentHealth{
			Valid:      valid,
			Violations: violations,
		}
		if valid {
			continue
		}
		report.Healthy = false
		critical := 0
		for _, c := range g.constraints[component] {
			if !c.Critical {
				continue
			}
			if ok, _ := c.Validate(params[c.Type.ParameterKey()]); !ok {
				critical++
			}
		}
		report.CriticalViolations += critical
		report.Warnings += len(violations) - critical
	}

	return report
}
