package market

// Status is the terminal state of one clearing run.
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

// MarshalJSON renders the status by name so exported results stay
// readable for downstream consumers.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Flow is the cleared transfer over one interconnector. MW is signed:
// positive means flow from From to To.
type Flow struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	MW   float64 `json:"mw"`
}

// Result is the complete outcome of one clearing run. When Status is
// not OPTIMAL, TotalCost, Dispatch and Flows carry no solution: the
// status alone communicates the outcome and callers must branch on it
// rather than read zero values as a cleared market.
type Result struct {
	SolveID   string                        `json:"solve_id"`
	Status    Status                        `json:"status"`
	TotalCost float64                       `json:"total_cost"`
	Dispatch  map[string]map[string]float64 `json:"dispatch"` // region -> generator -> MW
	Flows     map[string]Flow               `json:"flows"`    // interconnector id -> signed MW
}

// Solved reports whether the run produced a usable dispatch.
func (r Result) Solved() bool { return r.Status == StatusOptimal }
