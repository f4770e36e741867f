package main

import (
	"github.com/lox/monopoly-markov/cmd/monopoly/shared"
	"github.com/lox/monopoly-markov/internal/config"
	"github.com/lox/monopoly-markov/internal/markov"
)

// CalcCmd solves the steady state for each jail strategy.
type CalcCmd struct {
	Accuracy int      `short:"a" help:"Decimal places of convergence (1-15)"`
	Solver   string   `help:"Steady state solver: power or svd"`
	Strategy []string `short:"s" help:"Jail strategies to solve (pay, wait)"`
	Dir      string   `short:"o" help:"Directory for CSV reports"`
	NoCSV    bool     `name:"no-csv" help:"Skip writing CSV reports"`
	Reasons  bool     `short:"r" help:"Print arrivals by move reason"`
}

func (c CalcCmd) Run(g *Globals) error {
	r, err := newRunner(g, func(cfg *config.Config) {
		if c.Accuracy != 0 {
			cfg.Accuracy = c.Accuracy
		}
		if c.Solver != "" {
			cfg.Solver = c.Solver
		}
		if len(c.Strategy) > 0 {
			cfg.Strategies = c.Strategy
		}
		if c.Dir != "" {
			cfg.Output.Dir = c.Dir
		}
	})
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(r.logger)
	defer cancel()
	return r.calc(ctx, !c.NoCSV, c.Reasons)
}

// SimulateCmd runs a Monte Carlo simulation for one jail strategy.
type SimulateCmd struct {
	Strategy    string `short:"s" default:"wait" help:"Jail strategy (pay, wait)"`
	Rolls       int    `short:"n" help:"Number of rolls to simulate"`
	Seed        int64  `help:"Random seed (0 picks one from the clock)"`
	Workers     int    `short:"w" help:"Parallel workers"`
	RandomCards bool   `help:"Draw cards with replacement"`
	Timeout     string `help:"Abort after this duration (0 disables)"`
	Accuracy    int    `short:"a" help:"Decimal places of convergence for the exact comparison"`
	Dir         string `short:"o" help:"Directory for the CSV report"`
	NoCSV       bool   `name:"no-csv" help:"Skip writing the CSV report"`
}

func (c SimulateCmd) Run(g *Globals) error {
	strategy, err := markov.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}
	r, err := newRunner(g, func(cfg *config.Config) {
		if c.Rolls != 0 {
			cfg.Simulation.Rolls = c.Rolls
		}
		if c.Seed != 0 {
			cfg.Simulation.Seed = c.Seed
		}
		if c.Workers != 0 {
			cfg.Simulation.Workers = c.Workers
		}
		if c.RandomCards {
			cfg.Simulation.RandomCards = true
		}
		if c.Timeout != "" {
			cfg.Simulation.Timeout = c.Timeout
		}
		if c.Accuracy != 0 {
			cfg.Accuracy = c.Accuracy
		}
		if c.Dir != "" {
			cfg.Output.Dir = c.Dir
		}
	})
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(r.logger)
	defer cancel()
	return r.simulate(ctx, strategy, !c.NoCSV)
}

// StatesCmd prints the canonical state index map.
type StatesCmd struct {
	Strategy string `arg:"" optional:"" default:"wait" help:"Jail strategy (pay, wait)"`
}

func (c StatesCmd) Run(g *Globals) error {
	strategy, err := markov.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}
	r, err := newRunner(g, nil)
	if err != nil {
		return err
	}
	r.states(strategy)
	return nil
}
