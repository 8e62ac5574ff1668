package clearing

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/nemclear/core/logger"
	"github.com/kilianp07/nemclear/core/lp"
	"github.com/kilianp07/nemclear/core/market"
	"github.com/kilianp07/nemclear/core/metrics"
)

// Engine clears a market in a single synchronous pass: validate the
// input, build the LP, submit it to the solver and extract the result.
// An Engine holds no state between calls, so independent engines (or
// the same engine from independent goroutines) may solve different
// scenarios in parallel.
type Engine struct {
	tolerance float64
	log       logger.Logger
	sink      metrics.MetricsSink
}

// NewEngine returns an engine using the given simplex tolerance. A zero
// tolerance selects lp.DefaultTolerance. Logger and sink may be nil.
func NewEngine(tolerance float64, log logger.Logger, sink metrics.MetricsSink) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Engine{tolerance: tolerance, log: log, sink: sink}
}

// Clear runs one market-clearing solve. Invalid input returns a
// *market.ValidationError before any solver interaction; infeasible and
// unbounded models are reported through the result status, not as
// errors. Only a solver failure returns a non-nil error alongside an
// empty result.
func (e *Engine) Clear(m market.Market) (market.Result, error) {
	start := time.Now()
	solveID := uuid.NewString()

	if err := m.Validate(); err != nil {
		e.log.Errorf("solve %s rejected: %v", solveID, err)
		return market.Result{}, err
	}

	model, idx := BuildModel(m)
	e.log.Debugw("model built", map[string]any{
		"solve_id":    solveID,
		"variables":   model.NumVariables(),
		"constraints": model.NumConstraints(),
	})

	sol, err := lp.Solve(model, e.tolerance)
	if err != nil {
		e.log.Errorf("solve %s failed: %v", solveID, err)
		return market.Result{}, err
	}

	res := ExtractResult(m, idx, sol)
	res.SolveID = solveID
	e.log.Infof("solve %s finished: status=%s cost=%.2f in %s",
		solveID, res.Status, res.TotalCost, time.Since(start))

	if err := e.sink.RecordSolveResult(solveRecord(res, model, start)); err != nil {
		e.log.Warnf("solve %s: metrics sink: %v", solveID, err)
	}
	return res, nil
}

func solveRecord(res market.Result, model *lp.Model, start time.Time) metrics.SolveResult {
	rec := metrics.SolveResult{
		SolveID:     res.SolveID,
		Status:      res.Status.String(),
		TotalCost:   res.TotalCost,
		Variables:   model.NumVariables(),
		Constraints: model.NumConstraints(),
		Duration:    time.Since(start),
		SolvedAt:    start,
	}
	if !res.Solved() {
		return rec
	}
	rec.RegionDispatchMW = make(map[string]float64, len(res.Dispatch))
	for region, gens := range res.Dispatch {
		var total float64
		for _, mw := range gens {
			total += mw
		}
		rec.RegionDispatchMW[region] = total
	}
	rec.FlowMW = make(map[string]float64, len(res.Flows))
	for id, f := range res.Flows {
		rec.FlowMW[id] = f.MW
	}
	return rec
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
