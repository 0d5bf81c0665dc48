// Package app assembles the decision kernel with its collaborators:
// telemetry adapters, metrics sinks, the alert broker and carbon reporting.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gridwerk/microgrid/config"
	"github.com/gridwerk/microgrid/connectors"
	corealert "github.com/gridwerk/microgrid/core/alert"
	"github.com/gridwerk/microgrid/core/carbon"
	"github.com/gridwerk/microgrid/core/cycle"
	"github.com/gridwerk/microgrid/core/events"
	"github.com/gridwerk/microgrid/core/forecast"
	"github.com/gridwerk/microgrid/core/guard"
	coremetrics "github.com/gridwerk/microgrid/core/metrics"
	"github.com/gridwerk/microgrid/core/solver"
	infraalert "github.com/gridwerk/microgrid/infra/alert"
	"github.com/gridwerk/microgrid/infra/logger"
	"github.com/gridwerk/microgrid/infra/metrics"
	"github.com/gridwerk/microgrid/internal/eventbus"
)

// Service orchestrates the decision cycle and its peripherals.
type Service struct {
	Manager  *cycle.Manager
	Guard    *guard.GuardRail
	Bridge   *solver.Bridge
	Broker   *corealert.Broker
	Reporter *carbon.Reporter

	cfg      *config.Config
	adapters []connectors.Adapter
	bus      *eventbus.Bus
	log      logger.Logger
	closers  []func()
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	g := guard.New(logger.New("guard-rail"))
	bridge := solver.NewBridge(logger.New("solver-bridge"))
	source := forecast.NewSynthetic(cfg.Forecast)
	bus := eventbus.New()

	sink, closers, err := buildSinks(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	mgr, err := cycle.NewManager(cfg.Cycle, g, bridge, source, sink, bus, logger.New("decision-cycle"))
	if err != nil {
		return nil, fmt.Errorf("decision cycle: %w", err)
	}

	broker, brokerClosers, err := buildBroker(cfg.Alerts, log)
	if err != nil {
		return nil, err
	}
	closers = append(closers, brokerClosers...)

	svc := &Service{
		Manager:  mgr,
		Guard:    g,
		Bridge:   bridge,
		Broker:   broker,
		Reporter: carbon.NewReporter(cfg.Carbon.GridType),
		cfg:      cfg,
		bus:      bus,
		log:      log,
		closers:  closers,
	}
	svc.adapters = []connectors.Adapter{
		connectors.NewSimulatedSolar("solar-1", cfg.Forecast.SolarPeakKW, cfg.Forecast.Seed),
		connectors.NewSimulatedBattery("battery-1", cfg.Cycle.InitialSOCPct, cfg.Forecast.Seed+1),
		connectors.NewSimulatedGridMeter("grid-1", cfg.Forecast.Seed+2),
	}
	return svc, nil
}

func buildSinks(cfg coremetrics.Config) (coremetrics.Sink, []func(), error) {
	var sinks []coremetrics.Sink
	var closers []func()
	if cfg.PrometheusEnabled {
		prom, err := metrics.NewPromSink()
		if err != nil {
			return nil, nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, prom)
	}
	if cfg.InfluxEnabled {
		influx := metrics.NewInfluxSinkWithFallback(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
		if c, ok := influx.(*metrics.InfluxSink); ok {
			closers = append(closers, c.Close)
		}
		sinks = append(sinks, influx)
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, closers, nil
	case 1:
		return sinks[0], closers, nil
	default:
		return metrics.NewMultiSink(sinks...), closers, nil
	}
}

func buildBroker(cfg infraalert.Config, log logger.Logger) (*corealert.Broker, []func(), error) {
	var closers []func()
	ttl := time.Duration(cfg.TTLSeconds) * time.Second

	var store corealert.Store = corealert.NewMemoryStore(ttl)
	if cfg.RedisURL != "" {
		rs, err := infraalert.NewRedisStore(cfg.RedisURL, ttl)
		if err != nil {
			log.Warnf("redis alert store unavailable, using memory store: %v", err)
		} else {
			store = rs
			closers = append(closers, func() { _ = rs.Close() })
		}
	}

	var publisher corealert.Publisher
	if cfg.Enabled && cfg.Broker != "" {
		pub, err := infraalert.NewMQTTPublisher(cfg)
		if err != nil {
			return nil, closers, fmt.Errorf("alert publisher: %w", err)
		}
		publisher = pub
		closers = append(closers, pub.Close)
	}

	var escalator corealert.Escalator
	if cfg.WebhookURL != "" {
		escalator = infraalert.NewWebhookEscalator(cfg.WebhookURL)
	}

	return corealert.NewBroker(store, publisher, escalator, logger.New("alert-broker")), closers, nil
}

// Run executes decision cycles at the configured interval until the context
// is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			addr := ":" + s.cfg.Metrics.PrometheusPort
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	for _, a := range s.adapters {
		if err := a.Connect(ctx); err != nil {
			return fmt.Errorf("connect %s: %w", a.DeviceID(), err)
		}
	}

	go s.dispatchAlerts(ctx)

	interval := time.Duration(s.cfg.Cycle.IntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Infof("decision cycle started, interval %s", interval)
	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one decision cycle from fresh telemetry and feeds the carbon
// reporter with the accepted schedule.
func (s *Service) tick(ctx context.Context) {
	s.Manager.UpdateTelemetry(connectors.ReadAll(ctx, s.adapters))
	res := s.Manager.RunTick(time.Now())

	var gridKWh, solarKWh, dischargeKWh float64
	for h := range res.Grid {
		gridKWh += res.Grid[h]
		if h < len(res.Solar) {
			solarKWh += res.Solar[h]
		}
		if res.Battery[h] < 0 {
			dischargeKWh += -res.Battery[h]
		}
	}
	s.Reporter.Record(gridKWh, solarKWh, 0, dischargeKWh)
}

// dispatchAlerts converts bus events into alerts until the context ends.
func (s *Service) dispatchAlerts(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			s.handleEvent(ev)
		}
	}
}

func (s *Service) handleEvent(ev eventbus.Event) {
	switch e := ev.(type) {
	case events.ViolationEvent:
		severity := corealert.SeverityMedium
		if e.Critical {
			severity = corealert.SeverityCritical
		}
		if _, err := s.Broker.Create(corealert.TypeAnomalyDetected, severity, e.Message,
			map[string]string{"component": e.Component}); err != nil {
			s.log.Errorf("create alert: %v", err)
		}
	case events.CycleEvent:
		if e.Success {
			return
		}
		if _, err := s.Broker.Create(corealert.TypeOptimizationFailure, corealert.SeverityHigh,
			"optimization failed, grid-only fallback schedule applied", nil); err != nil {
			s.log.Errorf("create alert: %v", err)
		}
	}
}

// Close releases all infrastructure handles.
func (s *Service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, a := range s.adapters {
		_ = a.Close(ctx)
	}
	s.bus.Close()
	for _, c := range s.closers {
		c()
	}
	return nil
}
