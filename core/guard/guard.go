// Package guard implements the constraint registry and guard rail, the
// single authority deciding whether a proposed component state is safe to
// execute. Violations are always returned as data; the caller decides
// whether to block the corresponding action.
package guard

import (
	"github.com/gridwerk/microgrid/core/logger"
	"github.com/gridwerk/microgrid/core/model"
)

// historyLimit bounds the retained block records.
const historyLimit = 100

// GuardRail validates proposed component states against registered
// operational constraints. Instances hold no locks and are not safe for
// concurrent use; callers sharing one across goroutines must serialize
// access themselves.
type GuardRail struct {
	constraints    map[string][]model.Constraint
	violationCount int
	blockedTotal   int
	blocked        []model.BlockRecord
	log            logger.Logger
}

// New returns a GuardRail preloaded with the standard operational
// constraints for battery, grid and solar components.
func New(log logger.Logger) *GuardRail {
	g := &GuardRail{
		constraints: make(map[string][]model.Constraint),
		log:         log,
	}
	g.registerDefaults()
	return g
}

// registerDefaults installs the standard operational envelope.
func (g *GuardRail) registerDefaults() {
	g.AddConstraint("battery", model.Constraint{
		Name:     "Battery SOC",
		Type:     model.ConstraintSOC,
		Min:      10.0, // prevent deep discharge
		Max:      95.0, // extend lifespan
		Critical: true,
	})
	g.AddConstraint("battery", model.Constraint{
		Name:     "Battery Current",
		Type:     model.ConstraintCurrent,
		Min:      -200.0,
		Max:      200.0,
		Critical: true,
	})
	g.AddConstraint("grid", model.Constraint{
		Name:     "Grid Voltage",
		Type:     model.ConstraintVoltage,
		Min:      380.0, // 95% of nominal 400V
		Max:      420.0,
		Critical: true,
	})
	g.AddConstraint("grid", model.Constraint{
		Name:     "Grid Frequency",
		Type:     model.ConstraintFrequency,
		Min:      49.5,
		Max:      50.5,
		Critical: true,
	})
	g.AddConstraint("solar", model.Constraint{
		Name: "PV Temperature",
		Type: model.ConstraintTemperature,
		Min:  -20.0,
		Max:  85.0,
	})
}

// AddConstraint registers a constraint for a component. A constraint with the
// same name replaces the existing one; last write wins. Overlapping ranges
// are not checked.
func (g *GuardRail) AddConstraint(component string, c model.Constraint) {
	list := g.constraints[component]
	replaced := false
	for i := range list {
		if list[i].Name == c.Name {
			list[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, c)
	}
	g.constraints[component] = list
	if g.log != nil {
		g.log.Infof("added constraint: %s for %s", c.Name, component)
	}
}

// ValidateAction checks the proposed parameters for a component against its
// registered constraints. Constraints whose parameter key is absent are
// skipped: absence of applicable data is "no opinion", not a failure.
// Components with no registered constraints are always valid; this
// permissiveness is intentional and logged as a configuration gap.
func (g *GuardRail) ValidateAction(component string, params model.Parameters) (bool, []string) {
	var violations []string

	list, ok := g.constraints[component]
	if !ok {
		if g.log != nil {
			g.log.Warnf("no constraints defined for component: %s", component)
		}
		return true, nil
	}

	for _, c := range list {
		value, present := params[c.Type.ParameterKey()]
		if !present {
			continue
		}
		valid, msg := c.Validate(value)
		if valid {
			continue
		}
		violations = append(violations, msg)
		if c.Critical {
			g.violationCount++
			g.blockedTotal++
			g.blocked = append(g.blocked, model.BlockRecord{
				Component:  component,
				Constraint: c.Name,
				Value:      value,
				Error:      msg,
			})
			if len(g.blocked) > historyLimit {
				g.blocked = g.blocked[len(g.blocked)-historyLimit:]
			}
			if g.log != nil {
				g.log.Errorf("critical violation: %s", msg)
			}
		}
	}

	return len(violations) == 0, violations
}
