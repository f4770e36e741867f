package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/monopoly-markov/internal/probability"
)

// TransMatrix is the solved chain for one strategy.
type TransMatrix struct {
	strategy Strategy
	accuracy int
	solver   string

	states   *StateSpace
	jump     *Matrix
	move     *Matrix
	combined *Matrix
	arrivals [][][]probability.Probability

	steady  []float64
	reasons *ReasonTable
}

type options struct {
	logger *log.Logger
	solver Solver
}

// Option configures Build and BuildAll.
type Option func(*options)

// WithLogger sets the logger used for debug output. A nil logger discards.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSolver selects the steady state solver. The default is PowerIteration.
func WithSolver(s Solver) Option {
	return func(o *options) { o.solver = s }
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func resolveOptions(opts []Option) options {
	o := options{solver: PowerIteration{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}
	if o.solver == nil {
		o.solver = PowerIteration{}
	}
	return o
}

// Build constructs and solves the chain for strategy to accuracy decimal
// places.
func Build(strategy Strategy, accuracy int, opts ...Option) (*TransMatrix, error) {
	if err := ValidateAccuracy(accuracy); err != nil {
		return nil, err
	}
	o := resolveOptions(opts)
	logger := o.logger.With("strategy", strategy.Name())

	states := NewStateSpace(strategy)
	jump := NewJumpMatrix(logger)
	t := buildTransitions(strategy, states, jump, logger)

	steady, err := o.solver.Solve(t.combined.Float(), accuracy, logger)
	if err != nil {
		var se *SolverError
		if errors.As(err, &se) {
			se.Strategy = strategy.Name()
		}
		return nil, fmt.Errorf("solve %s strategy: %w", strategy.Name(), err)
	}

	tm := &TransMatrix{
		strategy: strategy,
		accuracy: accuracy,
		solver:   o.solver.Name(),
		states:   states,
		jump:     jump,
		move:     t.move,
		combined: t.combined,
		arrivals: t.arrivals,
		steady:   steady,
	}
	tm.reasons = newReasonTable(tm)

	logger.Debug("Built chain", "states", states.Len(), "solver", tm.solver, "accuracy", accuracy)
	return tm, nil
}

// BuildAll builds every strategy concurrently. Results are returned in the
// order of strategies; the first failure cancels the rest.
func BuildAll(ctx context.Context, accuracy int, strategies []Strategy, opts ...Option) ([]*TransMatrix, error) {
	out := make([]*TransMatrix, len(strategies))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tm, err := Build(s, accuracy, opts...)
			if err != nil {
				return err
			}
			out[i] = tm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Strategy returns the jail strategy the chain was built for.
func (tm *TransMatrix) Strategy() Strategy { return tm.strategy }

// Accuracy returns the decimal places the steady state was solved to.
func (tm *TransMatrix) Accuracy() int { return tm.accuracy }

// SolverName returns the name of the solver that produced the steady state.
func (tm *TransMatrix) SolverName() string { return tm.solver }

// States returns the canonical state space.
func (tm *TransMatrix) States() *StateSpace { return tm.states }

// JumpMatrix returns the 40x40 jump matrix.
func (tm *TransMatrix) JumpMatrix() *Matrix { return tm.jump }

// MoveMatrix returns the dice only transition matrix.
func (tm *TransMatrix) MoveMatrix() *Matrix { return tm.move }

// CombinedMatrix returns the transition matrix with jumps folded in.
func (tm *TransMatrix) CombinedMatrix() *Matrix { return tm.combined }

// Steady returns a copy of the stationary distribution in state index order.
func (tm *TransMatrix) Steady() []float64 { return slices.Clone(tm.steady) }

// Reasons returns the arrival attribution table.
func (tm *TransMatrix) Reasons() *ReasonTable { return tm.reasons }

// ArrivalFrom returns the exact probability that one roll from state i comes
// to rest on space for reason.
func (tm *TransMatrix) ArrivalFrom(i int, reason MoveReason, space int) probability.Probability {
	return tm.arrivals[i][reason][space]
}
