package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monopoly.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8, cfg.Accuracy)
	assert.Equal(t, "power", cfg.Solver)
	assert.Equal(t, []string{"pay", "wait"}, cfg.Strategies)
	assert.Equal(t, "csv", cfg.Output.Dir)
	assert.True(t, *cfg.Output.Fractions)
	assert.True(t, *cfg.Output.Floats)
	assert.Equal(t, 1_000_000, cfg.Simulation.Rolls)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
accuracy   = 12
solver     = "svd"
strategies = ["wait"]
log_level  = "debug"

output {
  dir       = "out"
  fractions = false
  color     = "never"
}

simulation {
  rolls        = 5000
  seed         = 42
  workers      = 2
  random_cards = true
  timeout      = "30s"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 12, cfg.Accuracy)
	assert.Equal(t, "svd", cfg.Solver)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.False(t, *cfg.Output.Fractions)
	assert.True(t, *cfg.Output.Floats, "unset floats defaults on")
	assert.Equal(t, "never", cfg.Output.Color)
	assert.Equal(t, 5000, cfg.Simulation.Rolls)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.True(t, cfg.Simulation.RandomCards)

	strategies, err := cfg.JailStrategies()
	require.NoError(t, err)
	require.Len(t, strategies, 1)
	assert.Equal(t, "wait", strategies[0].Name())

	timeout, err := cfg.SimulationTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestLoadInvalidHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `accuracy = `))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `unknown = 1`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"accuracy too high", func(c *Config) { c.Accuracy = 16 }, "accuracy"},
		{"unknown solver", func(c *Config) { c.Solver = "qr" }, "unknown solver"},
		{"unknown strategy", func(c *Config) { c.Strategies = []string{"bribe"} }, "unknown jail strategy"},
		{"duplicate strategy", func(c *Config) { c.Strategies = []string{"pay", "PAY"} }, "listed twice"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"no output format", func(c *Config) {
			c.Output.Fractions = boolPtr(false)
			c.Output.Floats = boolPtr(false)
		}, "at least one of fractions or floats"},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, "invalid color mode"},
		{"no rolls", func(c *Config) { c.Simulation.Rolls = -1 }, "rolls must be positive"},
		{"too many workers", func(c *Config) { c.Simulation.Workers = 1000 }, "workers"},
		{"bad timeout", func(c *Config) { c.Simulation.Timeout = "soon" }, "invalid timeout"},
		{"negative timeout", func(c *Config) { c.Simulation.Timeout = "-1s" }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
