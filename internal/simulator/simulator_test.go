package simulator

import (
	"context"
	"io"
	rand "math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/dice"
	"github.com/lox/monopoly-markov/internal/markov"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func fixedDice(r dice.Roll) DiceFunc {
	return func(*rand.Rand) dice.Roll { return r }
}

func TestNew(t *testing.T) {
	sim := New(Config{Rolls: 100, Seed: 12345})
	require.NotNil(t, sim)
	assert.Equal(t, markov.Wait, sim.config.Strategy)
	assert.Positive(t, sim.config.Workers)
	assert.NotNil(t, sim.config.Dice)
	assert.NotNil(t, sim.config.Clock)
	assert.NotNil(t, sim.config.Logger)
}

func TestRun_InvalidRolls(t *testing.T) {
	_, err := New(Config{Rolls: 0}).Run(context.Background())
	assert.ErrorContains(t, err, "rolls must be positive")
}

func TestRun_PlainRolls(t *testing.T) {
	sim := New(Config{
		Rolls:    10,
		Strategy: markov.Pay,
		Seed:     1,
		Workers:  1,
		Dice:     fixedDice(dice.Roll{D1: 1, D2: 2}),
		Logger:   quietLogger(),
	})
	ledger, err := sim.Run(context.Background())
	require.NoError(t, err)

	for _, pos := range []int{3, 6, 9, 12, 15, 18, 21, 24, 27} {
		assert.Equal(t, 1, ledger.ByReason[markov.ReasonRoll][pos], "space %s", board.At(pos))
	}
	assert.Equal(t, 1, ledger.ByReason[markov.ReasonGoToJail][30])
	assert.Equal(t, 1, ledger.JailRolls)
}

func TestRun_TripleDouble(t *testing.T) {
	sim := New(Config{
		Rolls:   3,
		Seed:    1,
		Workers: 1,
		Dice:    fixedDice(dice.Roll{D1: 2, D2: 2}),
		Logger:  quietLogger(),
	})
	ledger, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ledger.Positions[4])
	assert.Equal(t, 1, ledger.Positions[8])
	assert.Equal(t, 1, ledger.ByReason[markov.ReasonTripleDouble][30])
}

func TestRun_WaitReleasedAfterThreeAttempts(t *testing.T) {
	// 0 -> 11 -> 23 -> go to jail, then three failed attempts
	rolls := []dice.Roll{{D1: 6, D2: 5}, {D1: 6, D2: 6}, {D1: 3, D2: 4}, {D1: 1, D2: 2}, {D1: 1, D2: 2}, {D1: 1, D2: 2}}
	var mu sync.Mutex
	next := 0
	sim := New(Config{
		Rolls:    len(rolls),
		Strategy: markov.Wait,
		Seed:     1,
		Workers:  1,
		Dice: func(*rand.Rand) dice.Roll {
			mu.Lock()
			defer mu.Unlock()
			r := rolls[next]
			next++
			return r
		},
		Logger: quietLogger(),
	})
	ledger, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, ledger.Positions[11])
	assert.Equal(t, 1, ledger.Positions[23])
	assert.Equal(t, 1, ledger.ByReason[markov.ReasonGoToJail][30])
	assert.Equal(t, 2, ledger.ByReason[markov.ReasonNoDouble][30])
	assert.Equal(t, 1, ledger.ByReason[markov.ReasonExitJail][10])
	assert.Equal(t, 3, ledger.JailRolls)
}

func TestRun_Deterministic(t *testing.T) {
	run := func() []int {
		sim := New(Config{Rolls: 20000, Seed: 99, Workers: 3, Logger: quietLogger()})
		ledger, err := sim.Run(context.Background())
		require.NoError(t, err)
		return ledger.Positions[:]
	}
	assert.Equal(t, run(), run())
}

func TestRun_MatchesSteadyState(t *testing.T) {
	for _, strategy := range markov.Strategies() {
		for _, random := range []bool{false, true} {
			name := strategy.Name()
			if random {
				name += "/random"
			}
			t.Run(name, func(t *testing.T) {
				tm, err := markov.Build(strategy, markov.DefaultAccuracy)
				require.NoError(t, err)

				sim := New(Config{
					Rolls:       400000,
					Strategy:    strategy,
					Seed:        42,
					Workers:     4,
					RandomCards: random,
					Logger:      quietLogger(),
				})
				ledger, err := sim.Run(context.Background())
				require.NoError(t, err)

				assert.InDelta(t, 6.0/36, float64(ledger.RollSums[5])/float64(ledger.Rolls), 0.005)
				assert.Greater(t, ledger.DoublesShare(0), ledger.DoublesShare(1))

				space, dev := ledger.MaxDeviation(markov.PositionVector(tm))
				assert.Less(t, dev, 0.005, "space %s", board.At(space))

				table := tm.Reasons()
				for _, reason := range markov.Reasons() {
					for pos := 0; pos < board.Size; pos++ {
						assert.InDelta(t, table.At(reason, pos), ledger.ReasonShare(reason, pos), 0.005,
							"%s at %s", reason, board.At(pos))
					}
				}
			})
		}
	}
}

func TestRun_Timeout(t *testing.T) {
	mockClock := quartz.NewMock(t)
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	sim := New(Config{
		Rolls:   3 * cancelCheckInterval,
		Seed:    7,
		Workers: 1,
		Timeout: time.Second,
		Clock:   mockClock,
		Logger:  quietLogger(),
		Dice: func(rng *rand.Rand) dice.Roll {
			once.Do(func() {
				close(started)
				<-release
			})
			return FairDice(rng)
		},
	})

	errCh := make(chan error, 1)
	go func() {
		_, err := sim.Run(context.Background())
		errCh <- err
	}()

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(time.Second).MustWait(ctx)
	close(release)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrTimeout)
	case <-ctx.Done():
		t.Fatal("simulation did not stop after timeout")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Rolls: 100, Seed: 1, Logger: quietLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
