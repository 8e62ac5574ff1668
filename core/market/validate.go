package market

import "fmt"

// ValidationError reports invalid input rejected before any model is
// built. It is fatal to the clearing run that raised it.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "market validation: " + e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the market input before model construction. It
// rejects bids whose summed capacity exceeds the generator nameplate,
// bids naming an unknown generator, generators placed in an unknown
// region and negative quantities. The check is pure; the market is
// never mutated.
func (m Market) Validate() error {
	regions := make(map[string]struct{}, len(m.Regions))
	for _, r := range m.Regions {
		if r.DemandMW < 0 {
			return validationErrorf("region %s: negative demand %v", r.ID, r.DemandMW)
		}
		if _, dup := regions[r.ID]; dup {
			return validationErrorf("region %s: duplicate entry", r.ID)
		}
		regions[r.ID] = struct{}{}
	}

	capacities := make(map[string]float64, len(m.Generators))
	for _, g := range m.Generators {
		if g.CapacityMW < 0 {
			return validationErrorf("generator %s: negative capacity %v", g.Name, g.CapacityMW)
		}
		if _, ok := regions[g.Region]; !ok {
			return validationErrorf("generator %s: unknown region %s", g.Name, g.Region)
		}
		if _, dup := capacities[g.Name]; dup {
			return validationErrorf("generator %s: duplicate entry", g.Name)
		}
		capacities[g.Name] = g.CapacityMW
	}

	totals := make(map[string]float64, len(capacities))
	for _, b := range m.Bids {
		if b.CapacityMW < 0 {
			return validationErrorf("bid %s@%v: negative capacity %v", b.Generator, b.Price, b.CapacityMW)
		}
		if _, ok := capacities[b.Generator]; !ok {
			return validationErrorf("bid %s@%v: unknown generator", b.Generator, b.Price)
		}
		totals[b.Generator] += b.CapacityMW
	}
	for gen, total := range totals {
		if total > capacities[gen] {
			return validationErrorf("generator %s: bids exceed capacity (%v > %v)", gen, total, capacities[gen])
		}
	}

	for _, ic := range m.Interconnectors {
		if ic.CapacityMW < 0 {
			return validationErrorf("interconnector %s: negative capacity %v", ic.ID, ic.CapacityMW)
		}
		if _, ok := regions[ic.From]; !ok {
			return validationErrorf("interconnector %s: unknown region %s", ic.ID, ic.From)
		}
		if _, ok := regions[ic.To]; !ok {
			return validationErrorf("interconnector %s: unknown region %s", ic.ID, ic.To)
		}
	}
	return nil
}
