// Package config loads the engine configuration from YAML or JSON with
// optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/nemclear/core/lp"
	"github.com/kilianp07/nemclear/core/metrics"
	"github.com/kilianp07/nemclear/infra/mqtt"
	"github.com/kilianp07/nemclear/inputs"
)

// SolverConfig tunes the LP solve.
type SolverConfig struct {
	// Tolerance is the simplex convergence tolerance. Zero selects the
	// default.
	Tolerance float64 `json:"tolerance"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Tolerance == 0 {
		c.Tolerance = lp.DefaultTolerance
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("solver tolerance must be positive")
	}
	return nil
}

// OutputConfig selects how the result is rendered.
type OutputConfig struct {
	// Format is one of "text", "json", "csv".
	Format string `json:"format"`
	// Path is the output file; empty writes to stdout.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "text"
	}
}

// Validate checks mandatory fields.
func (c OutputConfig) Validate() error {
	switch c.Format {
	case "text", "json", "csv":
		return nil
	default:
		return fmt.Errorf("unknown output format %s", c.Format)
	}
}

// Config is the root configuration.
type Config struct {
	Inputs  inputs.Paths   `json:"inputs"`
	Solver  SolverConfig   `json:"solver"`
	Output  OutputConfig   `json:"output"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
}

// Load reads the configuration file at path. YAML and JSON are
// supported, selected by extension. Environment variables prefixed with
// NEM_ override file values, with "__" separating nested keys.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The callback rewrites
	// NEM_OUTPUT__FORMAT to output.format, so the provider splits on
	// the dot.
	if err := k.Load(env.Provider("NEM_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "nem_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Solver.SetDefaults()
	cfg.Output.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Inputs.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Output.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
