package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/gridwerk/microgrid/core/metrics"
	"github.com/gridwerk/microgrid/infra/logger"
)

// InfluxSink writes decision-cycle events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so a missing backend never blocks the
// decision loop.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordCycle writes the cycle outcome as one point.
func (s *InfluxSink) RecordCycle(r coremetrics.CycleRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("dispatch_cycle").
		AddTag("success", strconv.FormatBool(r.Success)).
		AddTag("component", "decision_cycle").
		AddField("horizon_hours", r.Horizon).
		AddField("fallback_hours", r.FallbackHours).
		AddField("objective_value", round3(r.ObjectiveValue)).
		AddField("cost_savings_pct", round3(r.CostSavingsPct)).
		AddField("solve_ms", float64(r.SolveTime.Microseconds())/1000).
		AddField("final_soc_pct", round3(r.FinalSOC)).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordViolation writes a violation event point.
func (s *InfluxSink) RecordViolation(r coremetrics.ViolationRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("guardrail_violation").
		AddTag("component", r.Component).
		AddTag("critical", strconv.FormatBool(r.Critical)).
		AddField("constraint", r.Constraint).
		AddField("value", round3(r.Value)).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}
