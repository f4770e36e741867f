package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/monopoly-markov/cmd/monopoly/shared"
	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/config"
	"github.com/lox/monopoly-markov/internal/fileutil"
	"github.com/lox/monopoly-markov/internal/markov"
	"github.com/lox/monopoly-markov/internal/report"
	"github.com/lox/monopoly-markov/internal/simulator"
)

// runner carries the resolved configuration shared by the subcommands.
type runner struct {
	cfg    *config.Config
	logger *log.Logger
	clock  quartz.Clock
	out    io.Writer
}

// newRunner loads the config file, applies override to it and validates
// the result.
func newRunner(g *Globals, override func(*config.Config)) (*runner, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.Color != "" {
		cfg.Output.Color = g.Color
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := shared.SetupLogger(cfg.LogLevel, g.Debug)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded config", "path", g.Config, "accuracy", cfg.Accuracy, "solver", cfg.Solver)

	return &runner{
		cfg:    cfg,
		logger: logger,
		clock:  quartz.NewReal(),
		out:    os.Stdout,
	}, nil
}

func (r *runner) console() *report.Console {
	return report.NewConsole(r.out, report.ColorMode(r.cfg.Output.Color))
}

func (r *runner) buildOptions() ([]markov.Option, error) {
	solver, err := markov.ParseSolver(r.cfg.Solver)
	if err != nil {
		return nil, err
	}
	return []markov.Option{markov.WithLogger(r.logger), markov.WithSolver(solver)}, nil
}

// calc solves every configured strategy, prints the summaries and writes
// the CSV reports unless writeCSV is false.
func (r *runner) calc(ctx context.Context, writeCSV, reasons bool) error {
	strategies, err := r.cfg.JailStrategies()
	if err != nil {
		return err
	}
	opts, err := r.buildOptions()
	if err != nil {
		return err
	}

	start := r.clock.Now()
	chains, err := markov.BuildAll(ctx, r.cfg.Accuracy, strategies, opts...)
	if err != nil {
		return err
	}
	r.logger.Info("Solved chains",
		"strategies", len(chains),
		"accuracy", r.cfg.Accuracy,
		"solver", r.cfg.Solver,
		"elapsed", r.clock.Since(start))

	console := r.console()
	console.Positions(chains)
	console.Sets(chains)
	if reasons {
		for _, tm := range chains {
			console.Reasons(tm)
		}
	}

	if !writeCSV {
		return nil
	}
	for _, tm := range chains {
		paths, err := report.WriteAll(tm, report.Options{
			Dir:       r.cfg.Output.Dir,
			Fractions: *r.cfg.Output.Fractions,
			Floats:    *r.cfg.Output.Floats,
		}, r.logger)
		if err != nil {
			return fmt.Errorf("failed to write %s reports: %w", tm.Strategy().Name(), err)
		}
		r.logger.Info("Wrote reports", "strategy", tm.Strategy().Name(), "files", len(paths), "dir", r.cfg.Output.Dir)
	}
	return nil
}

// simulate plays the configured number of rolls under strategy and compares
// the outcome with the exact steady state.
func (r *runner) simulate(ctx context.Context, strategy markov.Strategy, writeCSV bool) error {
	timeout, err := r.cfg.SimulationTimeout()
	if err != nil {
		return err
	}
	opts, err := r.buildOptions()
	if err != nil {
		return err
	}

	sim := simulator.New(simulator.Config{
		Rolls:       r.cfg.Simulation.Rolls,
		Strategy:    strategy,
		Seed:        r.cfg.Simulation.Seed,
		Workers:     r.cfg.Simulation.Workers,
		RandomCards: r.cfg.Simulation.RandomCards,
		Timeout:     timeout,
		Clock:       r.clock,
		Logger:      r.logger,
	})
	ledger, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	tm, err := markov.Build(strategy, r.cfg.Accuracy, opts...)
	if err != nil {
		return err
	}
	expected := markov.PositionVector(tm)

	r.console().Simulation(ledger, expected)
	pos, diff := ledger.MaxDeviation(expected)
	r.logger.Info("Largest deviation from steady state",
		"space", board.At(pos).ShortDesc(),
		"diff", fmt.Sprintf("%+.4f%%", diff*100))

	if !writeCSV {
		return nil
	}
	if err := fileutil.EnsureDir(r.cfg.Output.Dir); err != nil {
		return err
	}
	path := filepath.Join(r.cfg.Output.Dir, strategy.Name()+"_simulation.csv")
	if err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return report.WriteLedger(w, ledger, expected)
	}); err != nil {
		return fmt.Errorf("failed to write simulation report: %w", err)
	}
	r.logger.Info("Wrote simulation report", "path", path)
	return nil
}

// states prints the canonical state space of strategy.
func (r *runner) states(strategy markov.Strategy) {
	r.console().States(markov.NewStateSpace(strategy))
}
