package inputs

import (
	"fmt"
	"os"

	"github.com/kilianp07/nemclear/core/market"
)

// Paths locates the input tables on disk. Interconnectors is optional;
// when empty the market has no transmission links.
type Paths struct {
	RegionDemand    string `json:"region_demand"`
	Generators      string `json:"generators"`
	PriceLevels     string `json:"pricelevel"`
	Bids            string `json:"bids"`
	Interconnectors string `json:"interconnectors"`
}

// Validate checks that the mandatory tables are set.
func (p Paths) Validate() error {
	if p.RegionDemand == "" || p.Generators == "" || p.PriceLevels == "" || p.Bids == "" {
		return fmt.Errorf("inputs: region_demand, generators, pricelevel and bids paths are required")
	}
	return nil
}

// Load reads all tables and assembles the market input for one clearing
// run.
func Load(p Paths) (market.Market, error) {
	var m market.Market
	if err := p.Validate(); err != nil {
		return m, err
	}

	if err := readFile(p.RegionDemand, func(f *os.File) (err error) {
		m.Regions, err = ReadRegionDemand(f)
		return err
	}); err != nil {
		return m, err
	}
	if err := readFile(p.Generators, func(f *os.File) (err error) {
		m.Generators, err = ReadGenerators(f)
		return err
	}); err != nil {
		return m, err
	}
	if err := readFile(p.PriceLevels, func(f *os.File) (err error) {
		m.PriceBands, err = ReadPriceLevels(f)
		return err
	}); err != nil {
		return m, err
	}
	if err := readFile(p.Bids, func(f *os.File) (err error) {
		m.Bids, err = ReadBids(f)
		return err
	}); err != nil {
		return m, err
	}
	if p.Interconnectors != "" {
		if err := readFile(p.Interconnectors, func(f *os.File) (err error) {
			m.Interconnectors, err = ReadInterconnectors(f)
			return err
		}); err != nil {
			return m, err
		}
	}
	return m, nil
}

func readFile(path string, read func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return read(f)
}
