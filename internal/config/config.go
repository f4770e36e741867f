// Package config loads the optional HCL run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/monopoly-markov/internal/markov"
)

// Config represents the complete run configuration
type Config struct {
	Accuracy   int               `hcl:"accuracy,optional"`
	Solver     string            `hcl:"solver,optional"`
	Strategies []string          `hcl:"strategies,optional"`
	LogLevel   string            `hcl:"log_level,optional"`
	Output     *OutputConfig     `hcl:"output,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// OutputConfig controls report files and console rendering
type OutputConfig struct {
	Dir       string `hcl:"dir,optional"`
	Fractions *bool  `hcl:"fractions,optional"`
	Floats    *bool  `hcl:"floats,optional"`
	Color     string `hcl:"color,optional"` // auto, always or never
}

// SimulationConfig controls Monte Carlo runs
type SimulationConfig struct {
	Rolls       int    `hcl:"rolls,optional"`
	Seed        int64  `hcl:"seed,optional"`
	Workers     int    `hcl:"workers,optional"`
	RandomCards bool   `hcl:"random_cards,optional"`
	Timeout     string `hcl:"timeout,optional"`
}

const (
	defaultDir     = "csv"
	defaultRolls   = 1_000_000
	defaultWorkers = 4
	defaultTimeout = "5m"
)

func boolPtr(b bool) *bool { return &b }

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Accuracy == 0 {
		c.Accuracy = markov.DefaultAccuracy
	}
	if c.Solver == "" {
		c.Solver = "power"
	}
	if len(c.Strategies) == 0 {
		for _, s := range markov.Strategies() {
			c.Strategies = append(c.Strategies, s.Name())
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	if c.Output.Dir == "" {
		c.Output.Dir = defaultDir
	}
	if c.Output.Fractions == nil {
		c.Output.Fractions = boolPtr(true)
	}
	if c.Output.Floats == nil {
		c.Output.Floats = boolPtr(true)
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Rolls == 0 {
		c.Simulation.Rolls = defaultRolls
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = defaultWorkers
	}
	if c.Simulation.Timeout == "" {
		c.Simulation.Timeout = defaultTimeout
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := markov.ValidateAccuracy(c.Accuracy); err != nil {
		return err
	}
	if _, err := markov.ParseSolver(c.Solver); err != nil {
		return err
	}
	if _, err := c.JailStrategies(); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if !*c.Output.Fractions && !*c.Output.Floats {
		return fmt.Errorf("output: at least one of fractions or floats must be enabled")
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output: invalid color mode %q", c.Output.Color)
	}

	if c.Simulation.Rolls <= 0 {
		return fmt.Errorf("simulation: rolls must be positive")
	}
	if c.Simulation.Workers < 1 || c.Simulation.Workers > 256 {
		return fmt.Errorf("simulation: workers must be between 1 and 256")
	}
	if _, err := c.SimulationTimeout(); err != nil {
		return err
	}
	return nil
}

// JailStrategies resolves the configured strategy names.
func (c *Config) JailStrategies() ([]markov.Strategy, error) {
	out := make([]markov.Strategy, 0, len(c.Strategies))
	seen := make(map[string]bool)
	for _, name := range c.Strategies {
		s, err := markov.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		if seen[s.Name()] {
			return nil, fmt.Errorf("strategy %s listed twice", s.Name())
		}
		seen[s.Name()] = true
		out = append(out, s)
	}
	return out, nil
}

// SimulationTimeout parses the simulation timeout. Zero disables it.
func (c *Config) SimulationTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulation.Timeout)
	if err != nil {
		return 0, fmt.Errorf("simulation: invalid timeout %q: %w", c.Simulation.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("simulation: timeout must not be negative")
	}
	return d, nil
}
