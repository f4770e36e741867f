// Package statistics accumulates where simulated rolls come to rest so the
// counts can be compared with the exact steady state.
package statistics

import (
	"fmt"
	"math"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/dice"
	"github.com/lox/monopoly-markov/internal/markov"
)

// Arrival is the outcome of one simulated roll.
type Arrival struct {
	Position int               // Space the token rests on after the roll
	Reason   markov.MoveReason // What put it there
	Doubles  int               // Consecutive doubles carried into the next roll
	InJail   bool              // Token is resting in jail
	Roll     dice.Roll         // The dice that produced the arrival
}

// Ledger counts arrivals per space and per reason.
type Ledger struct {
	Rolls     int
	Positions [board.Size]int
	JailRolls int // Rolls that ended resting in jail

	// ByReason[reason][space]
	ByReason [][]int

	// RollSums[sum-2] counts dice totals.
	RollSums [2*dice.Faces - 1]int

	// Turns ends when a roll leaves no doubles pending. DoublesPerTurn[k]
	// counts turns that rolled k doubles.
	Turns          int
	DoublesPerTurn [markov.MaxDoubles + 1]int
	streak         int
}

// NewLedger returns an empty ledger with a row for every move reason.
func NewLedger() *Ledger {
	l := &Ledger{ByReason: make([][]int, len(markov.Reasons()))}
	for r := range l.ByReason {
		l.ByReason[r] = make([]int, board.Size)
	}
	return l
}

// Add records one arrival.
func (l *Ledger) Add(a Arrival) {
	l.Rolls++
	l.Positions[a.Position]++
	l.ByReason[a.Reason][a.Position]++
	if a.InJail {
		l.JailRolls++
	}
	if sum := a.Roll.Sum(); sum >= 2 {
		l.RollSums[sum-2]++
	}

	if a.Roll.Double() {
		l.streak++
	}
	if a.Doubles == 0 {
		l.DoublesPerTurn[min(l.streak, markov.MaxDoubles)]++
		l.Turns++
		l.streak = 0
	}
}

// Merge folds another ledger's counts into l.
func (l *Ledger) Merge(o *Ledger) {
	l.Rolls += o.Rolls
	l.JailRolls += o.JailRolls
	for i, n := range o.Positions {
		l.Positions[i] += n
	}
	for r, row := range o.ByReason {
		for i, n := range row {
			l.ByReason[r][i] += n
		}
	}
	for i, n := range o.RollSums {
		l.RollSums[i] += n
	}
	l.Turns += o.Turns
	for i, n := range o.DoublesPerTurn {
		l.DoublesPerTurn[i] += n
	}
}

// DoublesShare returns the fraction of completed turns with k doubles.
func (l *Ledger) DoublesShare(k int) float64 {
	if l.Turns == 0 || k < 0 || k >= len(l.DoublesPerTurn) {
		return 0
	}
	return float64(l.DoublesPerTurn[k]) / float64(l.Turns)
}

// Share returns the fraction of rolls that ended on space.
func (l *Ledger) Share(space int) float64 {
	if l.Rolls == 0 {
		return 0
	}
	return float64(l.Positions[space]) / float64(l.Rolls)
}

// Shares returns Share for every space in board order.
func (l *Ledger) Shares() []float64 {
	out := make([]float64, board.Size)
	for i := range out {
		out[i] = l.Share(i)
	}
	return out
}

// ReasonShare returns the fraction of rolls that ended on space for reason.
func (l *Ledger) ReasonShare(reason markov.MoveReason, space int) float64 {
	if l.Rolls == 0 {
		return 0
	}
	return float64(l.ByReason[reason][space]) / float64(l.Rolls)
}

// StdError returns the binomial standard error of Share(space).
func (l *Ledger) StdError(space int) float64 {
	if l.Rolls == 0 {
		return 0
	}
	p := l.Share(space)
	return math.Sqrt(p * (1 - p) / float64(l.Rolls))
}

// ConfidenceInterval95 returns the 95% confidence interval for Share(space).
func (l *Ledger) ConfidenceInterval95(space int) (float64, float64) {
	share := l.Share(space)
	margin := 1.96 * l.StdError(space)
	return share - margin, share + margin
}

// MaxDeviation returns the space whose share is furthest from expected and
// the absolute difference.
func (l *Ledger) MaxDeviation(expected []float64) (int, float64) {
	worst, dev := 0, 0.0
	for i := 0; i < board.Size && i < len(expected); i++ {
		if d := math.Abs(l.Share(i) - expected[i]); d > dev {
			worst, dev = i, d
		}
	}
	return worst, dev
}

// IsLedgerBalanced checks the per-space and per-reason counts agree.
func (l *Ledger) IsLedgerBalanced() bool {
	total := 0
	for i, n := range l.Positions {
		byReason := 0
		for _, row := range l.ByReason {
			byReason += row[i]
		}
		if byReason != n {
			return false
		}
		total += n
	}
	return total == l.Rolls
}

// Validate performs consistency checks on the ledger.
func (l *Ledger) Validate() error {
	if l.Rolls <= 0 {
		return fmt.Errorf("invalid rolls count: %d", l.Rolls)
	}
	if !l.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: per-space and per-reason counts disagree over %d rolls", l.Rolls)
	}
	sums := 0
	for _, n := range l.RollSums {
		sums += n
	}
	if sums != l.Rolls {
		return fmt.Errorf("roll sum histogram total (%d) does not match rolls (%d)", sums, l.Rolls)
	}
	turns := 0
	for _, n := range l.DoublesPerTurn {
		turns += n
	}
	if turns != l.Turns || l.Turns > l.Rolls {
		return fmt.Errorf("doubles histogram total (%d) inconsistent with turns (%d) and rolls (%d)",
			turns, l.Turns, l.Rolls)
	}
	if l.JailRolls > l.Positions[board.Find(board.GoToJail)] {
		return fmt.Errorf("jail rolls (%d) exceed arrivals on the jail position (%d)",
			l.JailRolls, l.Positions[board.Find(board.GoToJail)])
	}
	return nil
}
