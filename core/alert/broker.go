package alert

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gridwerk/microgrid/core/logger"
)

// Broker creates, stores and distributes alerts. Publisher and escalator are
// optional; storage is mandatory. Distribution failures are logged and never
// propagate: alerting must not take the kernel down.
type Broker struct {
	store     Store
	publisher Publisher
	escalator Escalator
	log       logger.Logger
	now       func() time.Time
}

// NewBroker creates a Broker around the given store.
func NewBroker(store Store, publisher Publisher, escalator Escalator, log logger.Logger) *Broker {
	return &Broker{
		store:     store,
		publisher: publisher,
		escalator: escalator,
		log:       log,
		now:       time.Now,
	}
}

// Create registers and distributes a new alert. Critical alerts are
// additionally escalated.
func (b *Broker) Create(t Type, severity Severity, message string, metadata map[string]string) (Alert, error) {
	a := Alert{
		ID:        fmt.Sprintf("alert_%s", uuid.NewString()),
		Type:      t,
		Severity:  severity,
		Message:   message,
		Timestamp: b.now(),
		Metadata:  metadata,
		Status:    StatusActive,
	}
	if err := b.store.Put(a); err != nil {
		return Alert{}, fmt.Errorf("store alert: %w", err)
	}
	if b.publisher != nil {
		if err := b.publisher.PublishAlert(a); err != nil && b.log != nil {
			b.log.Errorf("publish alert %s: %v", a.ID, err)
		}
	}
	if severity == SeverityCritical && b.escalator != nil {
		if err := b.escalator.Escalate(a); err != nil && b.log != nil {
			b.log.Errorf("escalate alert %s: %v", a.ID, err)
		}
	}
	if b.log != nil {
		b.log.Infof("alert created: %s - %s", a.ID, message)
	}
	return a, nil
}

// Acknowledge marks an alert as acknowledged by a user. It returns false
// when the alert is unknown or already expired.
func (b *Broker) Acknowledge(id, user string) (bool, error) {
	a, ok, err := b.store.Get(id)
	if err != nil || !ok {
		return false, err
	}
	a.Acknowledged = true
	a.AcknowledgedBy = user
	a.AcknowledgedAt = b.now()
	if err := b.store.Put(a); err != nil {
		return false, err
	}
	return true, nil
}

// Resolve marks an alert as resolved.
func (b *Broker) Resolve(id string) (bool, error) {
	a, ok, err := b.store.Get(id)
	if err != nil || !ok {
		return false, err
	}
	a.Status = StatusResolved
	a.ResolvedAt = b.now()
	if err := b.store.Put(a); err != nil {
		return false, err
	}
	return true, nil
}

// Active returns active alerts, newest first, optionally filtered by
// severity (empty severity matches all).
func (b *Broker) Active(severity Severity) ([]Alert, error) {
	return b.store.Active(severity)
}
