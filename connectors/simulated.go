package connectors

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gridwerk/microgrid/core/model"
	"github.com/gridwerk/microgrid/infra/logger"
)

// SimulatedAdapter produces synthetic telemetry for development and tests.
// Each instance is seeded independently so fleets of adapters stay
// repeatable.
type SimulatedAdapter struct {
	deviceID  string
	component string
	sample    func(now time.Time, r *rand.Rand) model.Parameters

	mu        sync.Mutex
	connected bool
	last      model.Parameters
	rand      *rand.Rand
	log       logger.Logger
}

func newSimulated(deviceID, component string, seed int64, sample func(time.Time, *rand.Rand) model.Parameters) *SimulatedAdapter {
	return &SimulatedAdapter{
		deviceID:  deviceID,
		component: component,
		sample:    sample,
		rand:      rand.New(rand.NewSource(seed)),
		log:       logger.New("sim-" + component),
	}
}

// NewSimulatedSolar returns an adapter emulating a solar inverter: output
// follows the daylight curve, temperature tracks output.
func NewSimulatedSolar(deviceID string, peakKW float64, seed int64) *SimulatedAdapter {
	return newSimulated(deviceID, "solar", seed, func(now time.Time, r *rand.Rand) model.Parameters {
		hod := float64(now.Hour())
		output := 0.0
		if hod >= 6 && hod < 18 {
			output = peakKW * math.Sin(math.Pi*(hod-6)/12)
		}
		return model.Parameters{
			"power":       output,
			"voltage":     415 + r.Float64()*5,
			"temperature": 25 + output/peakKW*30 + r.Float64()*3,
		}
	})
}

// NewSimulatedBattery returns an adapter emulating a battery bank around a
// nominal state of charge.
func NewSimulatedBattery(deviceID string, nominalSOC float64, seed int64) *SimulatedAdapter {
	return newSimulated(deviceID, "battery", seed, func(now time.Time, r *rand.Rand) model.Parameters {
		return model.Parameters{
			"soc":         nominalSOC + (r.Float64()-0.5)*4,
			"current":     (r.Float64() - 0.5) * 80,
			"temperature": 28 + r.Float64()*4,
		}
	})
}

// NewSimulatedGridMeter returns an adapter emulating a grid connection point
// meter at 400V nominal, 50Hz.
func NewSimulatedGridMeter(deviceID string, seed int64) *SimulatedAdapter {
	return newSimulated(deviceID, "grid", seed, func(now time.Time, r *rand.Rand) model.Parameters {
		return model.Parameters{
			"voltage":   400 + (r.Float64()-0.5)*10,
			"frequency": 50 + (r.Float64()-0.5)*0.2,
		}
	})
}

// DeviceID implements Adapter.
func (a *SimulatedAdapter) DeviceID() string { return a.deviceID }

// Component implements Adapter.
func (a *SimulatedAdapter) Component() string { return a.component }

// Connect implements Adapter.
func (a *SimulatedAdapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = true
	a.log.Infof("connected to %s", a.deviceID)
	return nil
}

// Close implements Adapter.
func (a *SimulatedAdapter) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = false
	return nil
}

// Read implements Adapter. Reading a disconnected adapter is an error.
func (a *SimulatedAdapter) Read(ctx context.Context) (model.Parameters, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.connected {
		return nil, fmt.Errorf("adapter %s not connected", a.deviceID)
	}
	params := a.sample(time.Now(), a.rand)
	a.last = params
	return params, nil
}

// Send implements Adapter. Commands are accepted and logged only.
func (a *SimulatedAdapter) Send(ctx context.Context, command string, params model.Parameters) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.connected {
		return fmt.Errorf("adapter %s not connected", a.deviceID)
	}
	a.log.Infof("command %s sent to %s", command, a.deviceID)
	return nil
}

// Status returns a snapshot of the adapter.
func (a *SimulatedAdapter) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Status{
		DeviceID:    a.deviceID,
		Connected:   a.connected,
		LastReading: a.last,
		AdapterType: "simulated_" + a.component,
	}
}
