// Package inputs reads the five tabular market inputs (regional demand,
// generators, price levels, bids and interconnectors) from CSV into the
// typed records the clearing engine consumes.
package inputs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/nemclear/core/market"
)

// ReadRegionDemand parses rows of (region, demand).
func ReadRegionDemand(r io.Reader) ([]market.Region, error) {
	rows, err := readTable(r, "region_demand", []string{"region", "demand"})
	if err != nil {
		return nil, err
	}
	regions := make([]market.Region, 0, len(rows))
	for i, row := range rows {
		demand, err := parseFloat("region_demand", i, "demand", row[1])
		if err != nil {
			return nil, err
		}
		regions = append(regions, market.Region{ID: row[0], DemandMW: demand})
	}
	return regions, nil
}

// ReadGenerators parses rows of (region, generator_name, nameplate_capacity).
func ReadGenerators(r io.Reader) ([]market.Generator, error) {
	rows, err := readTable(r, "generators", []string{"region", "generator_name", "nameplate_capacity"})
	if err != nil {
		return nil, err
	}
	gens := make([]market.Generator, 0, len(rows))
	for i, row := range rows {
		capacity, err := parseFloat("generators", i, "nameplate_capacity", row[2])
		if err != nil {
			return nil, err
		}
		gens = append(gens, market.Generator{Region: row[0], Name: row[1], CapacityMW: capacity})
	}
	return gens, nil
}

// ReadPriceLevels parses rows of (pricelevel), preserving input order.
func ReadPriceLevels(r io.Reader) ([]float64, error) {
	rows, err := readTable(r, "pricelevel", []string{"pricelevel"})
	if err != nil {
		return nil, err
	}
	bands := make([]float64, 0, len(rows))
	for i, row := range rows {
		price, err := parseFloat("pricelevel", i, "pricelevel", row[0])
		if err != nil {
			return nil, err
		}
		bands = append(bands, price)
	}
	return bands, nil
}

// ReadBids parses rows of (generator_name, pricelevel, bid_capacity).
func ReadBids(r io.Reader) ([]market.Bid, error) {
	rows, err := readTable(r, "bids", []string{"generator_name", "pricelevel", "bid_capacity"})
	if err != nil {
		return nil, err
	}
	bids := make([]market.Bid, 0, len(rows))
	for i, row := range rows {
		price, err := parseFloat("bids", i, "pricelevel", row[1])
		if err != nil {
			return nil, err
		}
		capacity, err := parseFloat("bids", i, "bid_capacity", row[2])
		if err != nil {
			return nil, err
		}
		bids = append(bids, market.Bid{Generator: row[0], Price: price, CapacityMW: capacity})
	}
	return bids, nil
}

// ReadInterconnectors parses rows of
// (interconnector_id, region_start, region_end, interconnector_capacity).
func ReadInterconnectors(r io.Reader) ([]market.Interconnector, error) {
	rows, err := readTable(r, "interconnectors",
		[]string{"interconnector_id", "region_start", "region_end", "interconnector_capacity"})
	if err != nil {
		return nil, err
	}
	ics := make([]market.Interconnector, 0, len(rows))
	for i, row := range rows {
		capacity, err := parseFloat("interconnectors", i, "interconnector_capacity", row[3])
		if err != nil {
			return nil, err
		}
		ics = append(ics, market.Interconnector{ID: row[0], From: row[1], To: row[2], CapacityMW: capacity})
	}
	return ics, nil
}

func readTable(r io.Reader, table string, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", table)
	}
	got := records[0]
	if len(got) != len(header) {
		return nil, fmt.Errorf("%s: expected header %v, got %v", table, header, got)
	}
	for i, col := range header {
		if strings.TrimSpace(got[i]) != col {
			return nil, fmt.Errorf("%s: expected header %v, got %v", table, header, got)
		}
	}
	return records[1:], nil
}

func parseFloat(table string, row int, col, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s row %d: column %s: %w", table, row+1, col, err)
	}
	return v, nil
}
