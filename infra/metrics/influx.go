package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/nemclear/core/logger"
	coremetrics "github.com/kilianp07/nemclear/core/metrics"
	infralogger "github.com/kilianp07/nemclear/infra/logger"
)

// InfluxSink writes clearing results to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
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

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordSolveResult writes one point per clearing run plus one point per
// region and interconnector when the run was optimal.
func (s *InfluxSink) RecordSolveResult(res coremetrics.SolveResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	run := write.NewPointWithMeasurement("clearing_run").
		AddTag("solve_id", res.SolveID).
		AddTag("status", res.Status).
		AddField("total_cost", round3(res.TotalCost)).
		AddField("duration_ms", res.Duration.Milliseconds()).
		AddField("variables", res.Variables).
		AddField("constraints", res.Constraints).
		SetTime(res.SolvedAt)
	if err := s.writeAPI.WritePoint(ctx, run); err != nil {
		return err
	}

	for region, mw := range res.RegionDispatchMW {
		p := write.NewPointWithMeasurement("region_dispatch").
			AddTag("solve_id", res.SolveID).
			AddTag("region", region).
			AddField("dispatch_mw", round3(mw)).
			SetTime(res.SolvedAt)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	for ic, mw := range res.FlowMW {
		p := write.NewPointWithMeasurement("interconnector_flow").
			AddTag("solve_id", res.SolveID).
			AddTag("interconnector", ic).
			AddField("flow_mw", round3(mw)).
			SetTime(res.SolvedAt)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
