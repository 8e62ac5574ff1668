package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `inputs:
  region_demand: "data/region_demand.csv"
  generators: "data/generators.csv"
  pricelevel: "data/pricelevel.csv"
  bids: "data/bids.csv"
  interconnectors: "data/interconnectors.csv"
solver:
  tolerance: 1e-8
output:
  format: "json"
metrics:
  prometheus_enabled: true
  influx_enabled: false
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "market/results"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"region_demand", cfg.Inputs.RegionDemand, "data/region_demand.csv"},
		{"bids", cfg.Inputs.Bids, "data/bids.csv"},
		{"interconnectors", cfg.Inputs.Interconnectors, "data/interconnectors.csv"},
		{"tolerance", cfg.Solver.Tolerance, 1e-8},
		{"output_format", cfg.Output.Format, "json"},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_addr_default", cfg.Metrics.PrometheusAddr, ":9090"},
		{"mqtt_enabled", cfg.MQTT.Enabled, true},
		{"mqtt_broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"mqtt_topic", cfg.MQTT.Topic, "market/results"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
  "inputs": {
    "region_demand": "d.csv",
    "generators": "g.csv",
    "pricelevel": "p.csv",
    "bids": "b.csv"
  }
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Solver.Tolerance == 0 {
		t.Errorf("expected default tolerance, got 0")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected default text output, got %s", cfg.Output.Format)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `inputs:
  region_demand: "d.csv"
  generators: "g.csv"
  pricelevel: "p.csv"
  bids: "b.csv"
output:
  format: "text"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NEM_OUTPUT__FORMAT", "csv")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Output.Format != "csv" {
		t.Errorf("env override ignored: got %s", cfg.Output.Format)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoad_BadOutputFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `inputs:
  region_demand: "d.csv"
  generators: "g.csv"
  pricelevel: "p.csv"
  bids: "b.csv"
output:
  format: "xml"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown output format")
	}
}

func TestLoad_MissingInputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("solver:\n  tolerance: 1e-7\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error when input paths are missing")
	}
}
