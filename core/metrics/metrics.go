package metrics

import "time"

// SolveResult captures one completed clearing run for observability
// sinks. Dispatch and flow totals are present only for optimal runs.
type SolveResult struct {
	SolveID          string
	Status           string
	TotalCost        float64
	Variables        int
	Constraints      int
	Duration         time.Duration
	SolvedAt         time.Time
	RegionDispatchMW map[string]float64
	FlowMW           map[string]float64
}

// MetricsSink records solve results for observability purposes.
type MetricsSink interface {
	RecordSolveResult(res SolveResult) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolveResult(SolveResult) error { return nil }

// MultiSink fans a solve result out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolveResult forwards the record to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordSolveResult(res SolveResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolveResult(res); err != nil {
			return err
		}
	}
	return nil
}
