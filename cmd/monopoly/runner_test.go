package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/monopoly-markov/cmd/monopoly/shared"
	"github.com/lox/monopoly-markov/internal/config"
	"github.com/lox/monopoly-markov/internal/markov"
)

func testRunner(t *testing.T) (*runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Accuracy = 6
	cfg.Output.Dir = filepath.Join(t.TempDir(), "csv")
	cfg.Output.Color = "never"
	cfg.Simulation.Rolls = 20_000
	cfg.Simulation.Seed = 42
	cfg.Simulation.Workers = 2
	require.NoError(t, cfg.Validate())

	var out, logs bytes.Buffer
	logger, err := shared.NewLogger(&logs, "info", false)
	require.NoError(t, err)

	return &runner{
		cfg:    cfg,
		logger: logger,
		clock:  quartz.NewMock(t),
		out:    &out,
	}, &out, &logs
}

func TestRunnerCalc(t *testing.T) {
	r, out, logs := testRunner(t)

	require.NoError(t, r.calc(context.Background(), true, true))
	assert.Contains(t, out.String(), "Steady state by space")
	assert.Contains(t, out.String(), "Steady state by set")
	assert.Contains(t, out.String(), "Arrivals by reason (pay)")
	assert.Contains(t, out.String(), "Arrivals by reason (wait)")
	assert.Contains(t, logs.String(), "Solved chains")

	entries, err := os.ReadDir(r.cfg.Output.Dir)
	require.NoError(t, err)
	// 3 matrices in 2 formats plus 4 summaries, per strategy
	assert.Len(t, entries, 2*(6+4))
}

func TestRunnerCalcWithoutCSV(t *testing.T) {
	r, out, _ := testRunner(t)
	r.cfg.Strategies = []string{"pay"}

	require.NoError(t, r.calc(context.Background(), false, false))
	assert.NotContains(t, out.String(), "Arrivals by reason")
	_, err := os.Stat(r.cfg.Output.Dir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunnerCalcCancelled(t *testing.T) {
	r, _, _ := testRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.calc(ctx, false, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerSimulate(t *testing.T) {
	r, out, logs := testRunner(t)

	require.NoError(t, r.simulate(context.Background(), markov.Pay, true))
	assert.Contains(t, out.String(), "Simulation over 20000 rolls")
	assert.Contains(t, logs.String(), "Largest deviation")

	data, err := os.ReadFile(filepath.Join(r.cfg.Output.Dir, "pay_simulation.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("position,space,arrivals,share,stderr,expected\n")))
}

func TestRunnerSimulateInvalidTimeout(t *testing.T) {
	r, _, _ := testRunner(t)
	r.cfg.Simulation.Timeout = "soon"

	err := r.simulate(context.Background(), markov.Wait, false)
	assert.ErrorContains(t, err, "invalid timeout")
}

func TestRunnerStates(t *testing.T) {
	r, out, _ := testRunner(t)
	r.states(markov.Wait)
	assert.Contains(t, out.String(), "120 canonical states")
}

func TestNewRunnerOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monopoly.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
accuracy = 9
strategies = ["wait"]
log_level = "warn"

output {
  color = "always"
}
`), 0o644))

	r, err := newRunner(&Globals{Config: path, Color: "never"}, func(cfg *config.Config) {
		cfg.Accuracy = 4
	})
	require.NoError(t, err)
	assert.Equal(t, 4, r.cfg.Accuracy)
	assert.Equal(t, []string{"wait"}, r.cfg.Strategies)
	assert.Equal(t, "never", r.cfg.Output.Color)
	assert.Equal(t, log.WarnLevel, r.logger.GetLevel())

	_, err = newRunner(&Globals{Config: path}, func(cfg *config.Config) {
		cfg.Accuracy = 40
	})
	assert.ErrorContains(t, err, "invalid config")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := shared.NewLogger(&buf, "error", true)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	_, err = shared.NewLogger(&buf, "loud", false)
	assert.Error(t, err)
}
