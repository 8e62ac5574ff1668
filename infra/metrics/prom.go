package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/nemclear/core/metrics"
)

// PromSink records clearing runs in Prometheus metrics.
type PromSink struct {
	solves   *prometheus.CounterVec
	duration prometheus.Histogram
	cost     prometheus.Gauge
	dispatch *prometheus.GaugeVec
	flow     *prometheus.GaugeVec
}

// NewPromSink registers clearing metrics on the default Prometheus
// registerer. The metrics server should be started separately using
// ServePromMetrics.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "clearing_solves_total",
		Help: "Total number of clearing runs by terminal status",
	}, []string{"status"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "clearing_solve_duration_seconds",
		Help:    "Wall time of one build-solve-extract pass",
		Buckets: prometheus.DefBuckets,
	})
	cost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "clearing_total_cost",
		Help: "Objective value of the last optimal clearing run",
	})
	dispatch := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "clearing_region_dispatch_mw",
		Help: "Dispatched MW per region in the last optimal clearing run",
	}, []string{"region"})
	flow := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "clearing_interconnector_flow_mw",
		Help: "Signed interconnector flow in the last optimal clearing run",
	}, []string{"interconnector"})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(dispatch); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dispatch = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(flow); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			flow = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{solves: solves, duration: duration, cost: cost, dispatch: dispatch, flow: flow}, nil
}

// RecordSolveResult updates the counters and gauges for one run.
func (s *PromSink) RecordSolveResult(res coremetrics.SolveResult) error {
	s.solves.WithLabelValues(res.Status).Inc()
	s.duration.Observe(res.Duration.Seconds())
	if res.RegionDispatchMW == nil {
		return nil
	}
	s.cost.Set(res.TotalCost)
	for region, mw := range res.RegionDispatchMW {
		s.dispatch.WithLabelValues(region).Set(mw)
	}
	for ic, mw := range res.FlowMW {
		s.flow.WithLabelValues(ic).Set(mw)
	}
	return nil
}
