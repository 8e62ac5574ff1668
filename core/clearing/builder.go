// Package clearing turns a market description into a linear program,
// hands it to the solver and aggregates the solved variables back into
// a dispatch result. One call is one independent solve; nothing is
// shared or reused across invocations.
package clearing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kilianp07/nemclear/core/lp"
	"github.com/kilianp07/nemclear/core/market"
)

// DispatchKey addresses one dispatch variable by region, generator and
// price band.
type DispatchKey struct {
	Region    string
	Generator string
	Price     float64
}

// VarIndex maps domain entities to model variables. The builder fills
// it and the extractor reads it; it is only valid for the model it was
// built with.
type VarIndex struct {
	Dispatch map[DispatchKey]lp.VarID
	Flow     map[string]lp.VarID
}

// BuildModel constructs the market-clearing LP. One dispatch variable
// exists per (region, generator, price band) triple with lower bound 0;
// a missing bid pins the variable to zero through its bid-cap row. One
// flow variable exists per interconnector, bounded by its capacity in
// both directions. The objective minimises total dispatch cost with the
// price band as the per-MW coefficient.
//
// Constraint rows are emitted in a fixed order: bid caps, nameplate
// caps, then one balance row per region requiring local generation plus
// net inflow to equal demand. Regions without generators still get a
// balance row; they clear only through interconnector flow or zero
// demand.
func BuildModel(m market.Market) (*lp.Model, *VarIndex) {
	model := lp.NewModel()
	idx := &VarIndex{
		Dispatch: make(map[DispatchKey]lp.VarID),
		Flow:     make(map[string]lp.VarID, len(m.Interconnectors)),
	}
	bids := m.BidIndex()

	for _, r := range m.Regions {
		for _, g := range m.GeneratorsIn(r.ID) {
			for _, p := range m.PriceBands {
				name := fmt.Sprintf("dispatch_%s_%s_%s", r.ID, g.Name, formatPrice(p))
				id := model.AddVariable(name, 0, math.Inf(1), p)
				idx.Dispatch[DispatchKey{Region: r.ID, Generator: g.Name, Price: p}] = id
			}
		}
	}
	for _, ic := range m.Interconnectors {
		id := model.AddVariable("flow_"+ic.ID, -ic.CapacityMW, ic.CapacityMW, 0)
		idx.Flow[ic.ID] = id
	}

	for _, r := range m.Regions {
		for _, g := range m.GeneratorsIn(r.ID) {
			for _, p := range m.PriceBands {
				id := idx.Dispatch[DispatchKey{Region: r.ID, Generator: g.Name, Price: p}]
				cap := bids[market.BidKey{Generator: g.Name, Price: p}]
				model.AddConstraint(
					fmt.Sprintf("bid_%s_%s", g.Name, formatPrice(p)),
					lp.SenseLE, cap,
					lp.Term{Var: id, Coeff: 1},
				)
			}
		}
	}

	for _, r := range m.Regions {
		for _, g := range m.GeneratorsIn(r.ID) {
			terms := make([]lp.Term, 0, len(m.PriceBands))
			for _, p := range m.PriceBands {
				id := idx.Dispatch[DispatchKey{Region: r.ID, Generator: g.Name, Price: p}]
				terms = append(terms, lp.Term{Var: id, Coeff: 1})
			}
			model.AddConstraint("capacity_"+g.Name, lp.SenseLE, g.CapacityMW, terms...)
		}
	}

	for _, r := range m.Regions {
		var terms []lp.Term
		for _, g := range m.GeneratorsIn(r.ID) {
			for _, p := range m.PriceBands {
				id := idx.Dispatch[DispatchKey{Region: r.ID, Generator: g.Name, Price: p}]
				terms = append(terms, lp.Term{Var: id, Coeff: 1})
			}
		}
		// Positive flow runs From -> To, so it leaves From and enters To.
		for _, ic := range m.Interconnectors {
			if ic.To == r.ID {
				terms = append(terms, lp.Term{Var: idx.Flow[ic.ID], Coeff: 1})
			}
			if ic.From == r.ID {
				terms = append(terms, lp.Term{Var: idx.Flow[ic.ID], Coeff: -1})
			}
		}
		model.AddConstraint("balance_"+r.ID, lp.SenseEQ, r.DemandMW, terms...)
	}

	return model, idx
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
