package market

// Region is a market region with a fixed demand to be met for the
// trading interval.
type Region struct {
	ID       string
	DemandMW float64 // demand in MW, non-negative
}

// Generator is a dispatchable unit belonging to exactly one region.
// CapacityMW is the nameplate capacity, the hard ceiling on total
// output across all price bands.
type Generator struct {
	Name       string
	Region     string
	CapacityMW float64
}

// Bid offers up to CapacityMW at the given price band. Price bands are
// shared system-wide; a (generator, price) pair with no bid is
// equivalent to a zero-capacity bid at that band.
type Bid struct {
	Generator  string
	Price      float64 // $/MW
	CapacityMW float64
}

// Interconnector is a transmission link between two regions. Flow is
// bounded by CapacityMW in either direction; positive flow runs From -> To.
type Interconnector struct {
	ID         string
	From       string
	To         string
	CapacityMW float64
}

// Market is the full immutable input to one clearing run: regions with
// demand, generators, the system-wide ordered price bands, bids and the
// interconnector topology.
type Market struct {
	Regions         []Region
	Generators      []Generator
	PriceBands      []float64
	Bids            []Bid
	Interconnectors []Interconnector
}

// GeneratorsIn returns the generators owned by the given region, in
// input order.
func (m Market) GeneratorsIn(region string) []Generator {
	var gens []Generator
	for _, g := range m.Generators {
		if g.Region == region {
			gens = append(gens, g)
		}
	}
	return gens
}

// BidKey identifies a bid by generator and price band.
type BidKey struct {
	Generator string
	Price     float64
}

// BidIndex returns the bids keyed by (generator, price band). Duplicate
// rows for the same pair accumulate. Pairs with no bid are absent and
// read as zero capacity.
func (m Market) BidIndex() map[BidKey]float64 {
	idx := make(map[BidKey]float64, len(m.Bids))
	for _, b := range m.Bids {
		idx[BidKey{Generator: b.Generator, Price: b.Price}] += b.CapacityMW
	}
	return idx
}
