// Package simulator plays rolls on the board with real card decks and counts
// where the token comes to rest. It is an independent cross-check of the
// exact chain in package markov.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/cards"
	"github.com/lox/monopoly-markov/internal/dice"
	"github.com/lox/monopoly-markov/internal/markov"
	"github.com/lox/monopoly-markov/internal/randutil"
	"github.com/lox/monopoly-markov/internal/statistics"
)

// ErrTimeout is returned when a run exceeds Config.Timeout.
var ErrTimeout = errors.New("simulation timed out")

// DiceFunc produces one roll of the dice.
type DiceFunc func(rng *rand.Rand) dice.Roll

// Config holds configuration for running simulations
type Config struct {
	Rolls       int
	Strategy    markov.Strategy
	Seed        int64
	Workers     int
	RandomCards bool          // Draw with replacement instead of cycling the piles
	Timeout     time.Duration // Zero disables the timeout
	Dice        DiceFunc      // Defaults to two fair dice
	Clock       quartz.Clock
	Logger      *log.Logger
}

// Simulator runs token simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Strategy == nil {
		config.Strategy = markov.Wait
	}
	if config.Workers <= 0 {
		config.Workers = min(runtime.NumCPU(), 8)
	}
	if config.Dice == nil {
		config.Dice = FairDice
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	return &Simulator{config: config}
}

// FairDice rolls two independent six-sided dice.
func FairDice(rng *rand.Rand) dice.Roll {
	return dice.Roll{D1: rng.IntN(dice.Faces) + 1, D2: rng.IntN(dice.Faces) + 1}
}

// Run executes the simulation and returns the merged ledger.
func (s *Simulator) Run(ctx context.Context) (*statistics.Ledger, error) {
	if s.config.Rolls <= 0 {
		return nil, fmt.Errorf("rolls must be positive, got %d", s.config.Rolls)
	}

	start := s.config.Clock.Now()
	seed := randutil.Resolve(s.config.Seed, start)
	logger := s.config.Logger.With("strategy", s.config.Strategy.Name())
	logger.Info("Starting simulation", "rolls", s.config.Rolls, "workers", s.config.Workers, "seed", seed)

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if s.config.Timeout > 0 {
		timer := s.config.Clock.AfterFunc(s.config.Timeout, func() {
			cancel(fmt.Errorf("%w after %v (seed: %d)", ErrTimeout, s.config.Timeout, seed))
		})
		defer timer.Stop()
	}

	workers := min(s.config.Workers, s.config.Rolls)
	perWorker := s.config.Rolls / workers
	remainder := s.config.Rolls % workers
	seeds := randutil.Split(seed, workers)
	ledgers := make([]*statistics.Ledger, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rolls := perWorker
		if w < remainder {
			rolls++
		}
		g.Go(func() error {
			ledger, err := s.runWorker(gctx, rolls, randutil.New(seeds[w]))
			ledgers[w] = ledger
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if cause := context.Cause(ctx); cause != nil && errors.Is(cause, ErrTimeout) {
			return nil, cause
		}
		return nil, err
	}

	total := statistics.NewLedger()
	for _, l := range ledgers {
		total.Merge(l)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete", "rolls", total.Rolls, "elapsed", s.config.Clock.Since(start))
	return total, nil
}

// cancelCheckInterval is how many rolls a worker plays between context checks.
const cancelCheckInterval = 4096

func (s *Simulator) runWorker(ctx context.Context, rolls int, rng *rand.Rand) (*statistics.Ledger, error) {
	t := newToken(s.config.Strategy, rng, s.config.RandomCards)
	ledger := statistics.NewLedger()
	for i := 0; i < rolls; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return ledger, err
			}
		}
		ledger.Add(t.roll(s.config.Dice(rng)))
	}
	return ledger, nil
}

// token is one piece moving around the board with its own card piles.
type token struct {
	strategy markov.Strategy
	state    markov.State
	rng      *rand.Rand
	random   bool
	chance   *cards.Deck[cards.ChanceCard]
	chest    *cards.Deck[cards.CommunityChestCard]
}

func newToken(strategy markov.Strategy, rng *rand.Rand, random bool) *token {
	t := &token{
		strategy: strategy,
		rng:      rng,
		random:   random,
		chance:   cards.NewChanceDeck(),
		chest:    cards.NewCommunityChestDeck(),
	}
	t.chance.Shuffle(rng)
	t.chest.Shuffle(rng)
	return t
}

func draw[C cards.Card](t *token, d *cards.Deck[C]) C {
	if t.random {
		return d.DrawRandom(t.rng)
	}
	return d.Draw()
}

// roll moves the token for one dice outcome and applies any card it draws.
func (t *token) roll(r dice.Roll) statistics.Arrival {
	next, reason := markov.Move(t.strategy, t.state, r)

	viaChance := false
	for {
		pos := next.Position
		dest := pos
		switch board.At(pos).Kind {
		case board.KindChance:
			dest = draw(t, t.chance).Destination(pos)
			if dest != pos {
				reason = markov.ReasonChance
				viaChance = true
			}
		case board.KindCommunityChest:
			dest = draw(t, t.chest).Destination(pos)
			switch {
			case viaChance:
				reason = markov.ReasonChanceCommunityChest
			case dest != pos:
				reason = markov.ReasonCommunityChest
			}
		}
		if dest == pos {
			break
		}
		next.Position = dest
		if next.InJail() {
			next.Doubles = 0
		}
	}

	t.state = next
	return statistics.Arrival{
		Position: next.Position,
		Reason:   reason,
		Doubles:  next.Doubles,
		InJail:   next.InJail(),
		Roll:     r,
	}
}
