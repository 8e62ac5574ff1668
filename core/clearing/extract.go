package clearing

import (
	"github.com/kilianp07/nemclear/core/lp"
	"github.com/kilianp07/nemclear/core/market"
)

// ExtractResult aggregates a solved model back into domain terms. It is
// a pure function over the solution and the topology used to build the
// model: per-generator dispatch is summed over price bands, flows are
// read per interconnector and the total cost is the solver objective.
// For non-optimal solutions only the status is populated; no zero
// dispatch is substituted for "no solution".
func ExtractResult(m market.Market, idx *VarIndex, sol lp.Solution) market.Result {
	res := market.Result{Status: resultStatus(sol.Status)}
	if sol.Status != lp.StatusOptimal {
		return res
	}

	res.TotalCost = sol.Objective
	res.Dispatch = make(map[string]map[string]float64, len(m.Regions))
	for _, r := range m.Regions {
		gens := m.GeneratorsIn(r.ID)
		regionDispatch := make(map[string]float64, len(gens))
		for _, g := range gens {
			var total float64
			for _, p := range m.PriceBands {
				v := sol.Value(idx.Dispatch[DispatchKey{Region: r.ID, Generator: g.Name, Price: p}])
				if v < 0 {
					// Simplex round-off can leave tiny negatives on
					// variables pinned at zero.
					v = 0
				}
				total += v
			}
			regionDispatch[g.Name] = total
		}
		res.Dispatch[r.ID] = regionDispatch
	}

	res.Flows = make(map[string]market.Flow, len(m.Interconnectors))
	for _, ic := range m.Interconnectors {
		res.Flows[ic.ID] = market.Flow{
			From: ic.From,
			To:   ic.To,
			MW:   sol.Value(idx.Flow[ic.ID]),
		}
	}
	return res
}

func resultStatus(s lp.Status) market.Status {
	switch s {
	case lp.StatusOptimal:
		return market.StatusOptimal
	case lp.StatusInfeasible:
		return market.StatusInfeasible
	case lp.StatusUnbounded:
		return market.StatusUnbounded
	default:
		return market.StatusUndefined
	}
}
