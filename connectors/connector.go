// Package connectors defines the device adapter contract used to feed
// telemetry into the decision cycle. Adapters stand in for protocol drivers
// (Modbus, CAN, vendor APIs); no wire protocol is implemented here.
package connectors

import (
	"context"

	"github.com/gridwerk/microgrid/core/model"
)

// Adapter abstracts one monitored device. Read returns the latest parameter
// sample in the shape consumed by the guard rail.
type Adapter interface {
	// DeviceID identifies the device instance.
	DeviceID() string
	// Component names the guard-rail component this device maps to
	// (battery, grid, solar, ...).
	Component() string
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Read(ctx context.Context) (model.Parameters, error)
	// Send issues a command to the device.
	Send(ctx context.Context, command string, params model.Parameters) error
}

// Status is an adapter status snapshot.
type Status struct {
	DeviceID    string           `json:"device_id"`
	Connected   bool             `json:"connected"`
	LastReading model.Parameters `json:"last_reading,omitempty"`
	AdapterType string           `json:"adapter_type"`
}

// ReadAll collects one sample from each adapter into a system state keyed by
// component. Adapters that fail to read are skipped: missing telemetry is
// "no opinion" downstream, not a fault.
func ReadAll(ctx context.Context, adapters []Adapter) model.SystemState {
	state := make(model.SystemState, len(adapters))
	for _, a := range adapters {
		params, err := a.Read(ctx)
		if err != nil {
			continue
		}
		state[a.Component()] = params
	}
	return state
}
