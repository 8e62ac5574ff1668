package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", filepath.Base(path), err)
	}
}

// Runs a full solve through the command path: CSV tables and a YAML
// config on disk in, a JSON result file out. Metrics and MQTT stay
// disabled so the command returns as soon as the result is written.
func TestRunSolve_WritesResultFile(t *testing.T) {
	dir := t.TempDir()

	writeFixture(t, filepath.Join(dir, "region_demand.csv"), "region,demand\nNSW,100\n")
	writeFixture(t, filepath.Join(dir, "generators.csv"), "region,generator_name,nameplate_capacity\nNSW,Bayswater,200\n")
	writeFixture(t, filepath.Join(dir, "pricelevel.csv"), "pricelevel\n10\n")
	writeFixture(t, filepath.Join(dir, "bids.csv"), "generator_name,pricelevel,bid_capacity\nBayswater,10,200\n")

	outPath := filepath.Join(dir, "result.json")
	cfgFile := filepath.Join(dir, "config.yaml")
	writeFixture(t, cfgFile, fmt.Sprintf(`inputs:
  region_demand: %q
  generators: %q
  pricelevel: %q
  bids: %q
output:
  format: "json"
  path: %q
`,
		filepath.Join(dir, "region_demand.csv"),
		filepath.Join(dir, "generators.csv"),
		filepath.Join(dir, "pricelevel.csv"),
		filepath.Join(dir, "bids.csv"),
		outPath,
	))

	prev := cfgPath
	cfgPath = cfgFile
	defer func() { cfgPath = prev }()

	if err := runSolve(solveCmd, nil); err != nil {
		t.Fatalf("runSolve: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	var got struct {
		SolveID   string                        `json:"solve_id"`
		Status    string                        `json:"status"`
		TotalCost float64                       `json:"total_cost"`
		Dispatch  map[string]map[string]float64 `json:"dispatch"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if got.SolveID == "" {
		t.Error("empty solve id")
	}
	if got.Status != "OPTIMAL" {
		t.Errorf("status: got %s want OPTIMAL", got.Status)
	}
	if math.Abs(got.TotalCost-1000) > 1e-6 {
		t.Errorf("total cost: got %v want 1000", got.TotalCost)
	}
	if mw := got.Dispatch["NSW"]["Bayswater"]; math.Abs(mw-100) > 1e-6 {
		t.Errorf("dispatch: got %v want 100", mw)
	}
}
