// Package alert implements the alert creation and distribution service fed
// by guard-rail violations and planner failures. Storage and transport
// implementations live in infra/alert.
package alert

import "time"

// Severity grades an alert.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Type categorises the condition that raised an alert.
type Type string

const (
	TypeGridOverload        Type = "grid_overload"
	TypeBatteryLow          Type = "battery_low"
	TypeEquipmentFailure    Type = "equipment_failure"
	TypeOptimizationFailure Type = "optimization_failure"
	TypeAnomalyDetected     Type = "anomaly_detected"
	TypePeakDemandWarning   Type = "peak_demand_warning"
)

// Status tracks the alert lifecycle.
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

// Alert is a single notification record. Created once, then updated only by
// acknowledgement and resolution.
type Alert struct {
	ID             string            `json:"id"`
	Type           Type              `json:"type"`
	Severity       Severity          `json:"severity"`
	Message        string            `json:"message"`
	Timestamp      time.Time         `json:"timestamp"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Status         Status            `json:"status"`
	Acknowledged   bool              `json:"acknowledged"`
	AcknowledgedBy string            `json:"acknowledged_by,omitempty"`
	AcknowledgedAt time.Time         `json:"acknowledged_at,omitempty"`
	ResolvedAt     time.Time         `json:"resolved_at,omitempty"`
}

// Store persists alerts while they are relevant. Implementations typically
// expire entries after an hour.
type Store interface {
	Put(Alert) error
	Get(id string) (Alert, bool, error)
	Active(severity Severity) ([]Alert, error)
}

// Publisher distributes alerts to external channels (MQTT topics per
// severity).
type Publisher interface {
	PublishAlert(Alert) error
}

// Escalator notifies external incident channels about critical alerts.
type Escalator interface {
	Escalate(Alert) error
}
