package model

import "fmt"

// ConstraintType identifies the physical quantity a constraint bounds.
type ConstraintType int

const (
	ConstraintVoltage ConstraintType = iota
	ConstraintCurrent
	ConstraintPower
	ConstraintSOC
	ConstraintTemperature
	ConstraintFrequency
)

// String returns a human-readable representation of the constraint type.
func (t ConstraintType) String() string {
	switch t {
	case ConstraintVoltage:
		return "voltage"
	case ConstraintCurrent:
		return "current"
	case ConstraintPower:
		return "power"
	case ConstraintSOC:
		return "state_of_charge"
	case ConstraintTemperature:
		return "temperature"
	case ConstraintFrequency:
		return "frequency"
	default:
		return "unknown"
	}
}

// ParameterKey returns the key under which the quantity appears in a
// component parameter map. The table is fixed: state of charge is reported
// as "soc", every other quantity under its own name.
func (t ConstraintType) ParameterKey() string {
	if t == ConstraintSOC {
		return "soc"
	}
	return t.String()
}

// Constraint is an operational limit for one parameter of a component.
// Min and Max are inclusive bounds. Critical constraints additionally feed
// the guard rail's blocking tally when violated.
type Constraint struct {
	Name     string         `json:"name"`
	Type     ConstraintType `json:"type"`
	Min      float64        `json:"min_value"`
	Max      float64        `json:"max_value"`
	Critical bool           `json:"critical"`
}

// Validate checks a value against the constraint bounds. Boundary values are
// valid. The returned message is empty when the value is within bounds.
func (c Constraint) Validate(value float64) (bool, string) {
	if value < c.Min {
		return false, fmt.Sprintf("%s below minimum: %v < %v", c.Name, value, c.Min)
	}
	if value > c.Max {
		return false, fmt.Sprintf("%s exceeds maximum: %v > %v", c.Name, value, c.Max)
	}
	return true, ""
}

// Parameters maps parameter names to measured or projected values for one
// component instance. It is owned by the caller and read-only to the guard
// rail.
type Parameters map[string]float64

// SystemState maps component identifiers to their parameter sets.
type SystemState map[string]Parameters

// BlockRecord describes one blocked action caused by a critical violation.
type BlockRecord struct {
	Component  string  `json:"component"`
	Constraint string  `json:"constraint"`
	Value      float64 `json:"value"`
	Error      string  `json:"error"`
}
