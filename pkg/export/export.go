// Package export renders clearing results for callers: JSON for
// machine consumers, CSV tables and a plain text report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/kilianp07/nemclear/core/market"
)

// WriteJSON writes the result to w in JSON format.
func WriteJSON(w io.Writer, res market.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the per-generator dispatch to w as CSV.
func WriteCSV(w io.Writer, res market.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"region", "generator", "dispatch_mw"}); err != nil {
		return err
	}
	for _, region := range sortedKeys(res.Dispatch) {
		gens := res.Dispatch[region]
		for _, gen := range sortedKeys(gens) {
			rec := []string{
				region,
				gen,
				strconv.FormatFloat(gens[gen], 'f', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFlowsCSV writes the per-interconnector flows to w as CSV.
func WriteFlowsCSV(w io.Writer, res market.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"interconnector", "region_start", "region_end", "flow_mw"}); err != nil {
		return err
	}
	for _, id := range sortedKeys(res.Flows) {
		f := res.Flows[id]
		rec := []string{
			id,
			f.From,
			f.To,
			strconv.FormatFloat(f.MW, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes a human-readable dispatch report to w.
func WriteText(w io.Writer, res market.Result) error {
	if _, err := fmt.Fprintf(w, "Status: %s\n", res.Status); err != nil {
		return err
	}
	if !res.Solved() {
		_, err := fmt.Fprintln(w, "No dispatch available.")
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Cost: $%.2f\n\nDispatch Schedule:\n", res.TotalCost); err != nil {
		return err
	}
	for _, region := range sortedKeys(res.Dispatch) {
		if _, err := fmt.Fprintf(w, "\nRegion %s:\n", region); err != nil {
			return err
		}
		gens := res.Dispatch[region]
		for _, gen := range sortedKeys(gens) {
			if _, err := fmt.Fprintf(w, "  %s: %.2f MW\n", gen, gens[gen]); err != nil {
				return err
			}
		}
	}
	if len(res.Flows) > 0 {
		if _, err := fmt.Fprintln(w, "\nInterconnector Flows:"); err != nil {
			return err
		}
		for _, id := range sortedKeys(res.Flows) {
			f := res.Flows[id]
			if _, err := fmt.Fprintf(w, "  %s (%s -> %s): %.2f MW\n", id, f.From, f.To, f.MW); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
