package lp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"
)

// Status is the terminal state reported by the solver.
type Status int

const (
	StatusUndefined Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
)

// String returns the canonical status name.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnbounded:
		return "UNBOUNDED"
	default:
		return "UNDEFINED"
	}
}

// SolverError wraps a solver failure that is neither infeasibility nor
// unboundedness, such as a numerical breakdown. It is propagated
// opaquely rather than swallowed.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string { return "lp solve: " + e.Err.Error() }
func (e *SolverError) Unwrap() error { return e.Err }

// Solution holds the outcome of one solve. Objective and variable
// values are meaningful only when Status is StatusOptimal.
type Solution struct {
	Status    Status
	Objective float64
	values    []float64
}

// Value returns the optimal value of the given variable. It is zero for
// non-optimal solutions.
func (s Solution) Value(id VarID) float64 {
	if int(id) >= len(s.values) {
		return 0
	}
	return s.values[id]
}

// DefaultTolerance matches the simplex tolerance used across solves.
const DefaultTolerance = 1e-7

// Solve converts the model to gonum's general form and runs the
// simplex method. Infeasible and unbounded outcomes are reported in the
// Solution status, not as errors; only genuine solver failures return a
// non-nil *SolverError.
//
// gonum's Convert treats all variables as free, so variable bounds are
// lowered to inequality rows before conversion. The standard-form
// solution splits each variable into positive and negative parts laid
// out as [x+ x- slack]; original values are recovered as x+ - x-.
func Solve(m *Model, tol float64) (Solution, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	n := len(m.vars)

	var gRows []Constraint
	var aRows []Constraint
	for _, con := range m.cons {
		if len(con.Terms) == 0 {
			// A degenerate row constrains nothing: satisfiable only
			// when its RHS already holds.
			switch con.Sense {
			case SenseEQ:
				if math.Abs(con.RHS) > tol {
					return Solution{Status: StatusInfeasible}, nil
				}
			case SenseLE:
				if con.RHS < -tol {
					return Solution{Status: StatusInfeasible}, nil
				}
			}
			continue
		}
		if con.Sense == SenseEQ {
			aRows = append(aRows, con)
		} else {
			gRows = append(gRows, con)
		}
	}
	if n == 0 {
		return Solution{Status: StatusOptimal}, nil
	}

	c := make([]float64, n)
	for i, v := range m.vars {
		c[i] = v.cost
	}

	// Bound rows: x <= upper and -x <= -lower for every finite side.
	type boundRow struct {
		idx   int
		coeff float64
		rhs   float64
	}
	var bounds []boundRow
	for i, v := range m.vars {
		if !math.IsInf(v.upper, 1) {
			bounds = append(bounds, boundRow{idx: i, coeff: 1, rhs: v.upper})
		}
		if !math.IsInf(v.lower, -1) {
			bounds = append(bounds, boundRow{idx: i, coeff: -1, rhs: -v.lower})
		}
	}

	nG := len(gRows) + len(bounds)
	var g mat.Matrix
	var h []float64
	if nG > 0 {
		gd := mat.NewDense(nG, n, nil)
		h = make([]float64, nG)
		for r, con := range gRows {
			for _, t := range con.Terms {
				gd.Set(r, int(t.Var), gd.At(r, int(t.Var))+t.Coeff)
			}
			h[r] = con.RHS
		}
		for i, br := range bounds {
			gd.Set(len(gRows)+i, br.idx, br.coeff)
			h[len(gRows)+i] = br.rhs
		}
		g = gd
	}

	var a mat.Matrix
	var b []float64
	if len(aRows) > 0 {
		ad := mat.NewDense(len(aRows), n, nil)
		b = make([]float64, len(aRows))
		for r, con := range aRows {
			for _, t := range con.Terms {
				ad.Set(r, int(t.Var), ad.At(r, int(t.Var))+t.Coeff)
			}
			b[r] = con.RHS
		}
		a = ad
	}

	cStd, aStd, bStd := gonumlp.Convert(c, g, h, a, b)
	opt, sol, err := gonumlp.Simplex(cStd, aStd, bStd, tol, nil)
	switch {
	case errors.Is(err, gonumlp.ErrInfeasible):
		return Solution{Status: StatusInfeasible}, nil
	case errors.Is(err, gonumlp.ErrUnbounded):
		return Solution{Status: StatusUnbounded}, nil
	case err != nil:
		return Solution{}, &SolverError{Err: err}
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = sol[i] - sol[n+i]
	}
	return Solution{Status: StatusOptimal, Objective: opt, values: values}, nil
}
