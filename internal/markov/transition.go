package markov

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/dice"
	"github.com/lox/monopoly-markov/internal/probability"
)

// rollProbability is the chance of any single ordered dice outcome.
var rollProbability = probability.Frac(1, dice.Outcomes)

// maxJumpChain bounds how many relocations one roll can trigger. The standard
// decks chain at most twice; anything longer means the jump matrix loops.
const maxJumpChain = board.Size

// Move applies one dice roll to s under strategy, ignoring the effect of the
// space landed on.
func Move(strategy Strategy, s State, r dice.Roll) (State, MoveReason) {
	if s.InJail() {
		return strategy.leaveJail(s, r)
	}

	doubles := 0
	if r.Double() {
		doubles = s.Doubles + 1
	}
	if doubles == MaxDoubles {
		return State{Position: jailPosition}, ReasonTripleDouble
	}

	pos := board.Wrap(s.Position + r.Sum())
	if pos == jailPosition {
		return State{Position: pos}, ReasonGoToJail
	}
	return State{Position: pos, Doubles: doubles}, ReasonRoll
}

// Arrival is one terminal outcome of resolving jumps from a landing state.
type Arrival struct {
	State       State
	Probability probability.Probability
	Reason      MoveReason
}

// Resolve follows the jump matrix from start until every path comes to rest
// on a space whose jump row keeps it in place. p is the probability of being
// at start and reason what brought the token there.
func Resolve(jump *Matrix, start State, reason MoveReason, p probability.Probability) []Arrival {
	type pending struct {
		Arrival
		depth int
	}

	var out []Arrival
	work := []pending{{Arrival: Arrival{State: start, Probability: p, Reason: reason}}}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		from := cur.State.Position
		for to := 0; to < board.Size; to++ {
			q := jump.At(from, to)
			if q.IsZero() {
				continue
			}
			next := Arrival{
				State:       jumpState(cur.State, to),
				Probability: cur.Probability.Mul(q),
				Reason:      jumpReason(cur.Reason, board.At(from), to != from),
			}
			if to == from {
				out = append(out, next)
				continue
			}
			if cur.depth >= maxJumpChain {
				panic(fmt.Sprintf("markov: jump chain from %s does not terminate", start))
			}
			work = append(work, pending{Arrival: next, depth: cur.depth + 1})
		}
	}
	return out
}

// jumpState relocates s to position to. Doubles are cleared when the token is
// sent to jail; the jail attempt counter is carried.
func jumpState(s State, to int) State {
	next := State{Position: to, Doubles: s.Doubles, JailAttempt: s.JailAttempt}
	if to == jailPosition {
		next.Doubles = 0
	}
	return next
}

// jumpReason returns the cause after drawing on space. Any community chest
// draw after a chance card is attributed to both decks.
func jumpReason(prior MoveReason, space board.Space, moved bool) MoveReason {
	switch space.Kind {
	case board.KindChance:
		if moved {
			return ReasonChance
		}
	case board.KindCommunityChest:
		if prior == ReasonChance || prior == ReasonChanceCommunityChest {
			return ReasonChanceCommunityChest
		}
		if moved {
			return ReasonCommunityChest
		}
	}
	return prior
}

// transitions holds the exact matrices built for one strategy.
type transitions struct {
	move     *Matrix
	combined *Matrix
	// arrivals[i][reason][space] is the probability that one roll from state
	// i comes to rest on space for reason.
	arrivals [][][]probability.Probability
}

func buildTransitions(strategy Strategy, states *StateSpace, jump *Matrix, logger *log.Logger) transitions {
	n := states.Len()
	t := transitions{
		move:     newMatrix(n, n),
		combined: newMatrix(n, n),
		arrivals: make([][][]probability.Probability, n),
	}

	rolls := dice.Rolls()
	for i := 0; i < n; i++ {
		from := states.State(i)
		t.arrivals[i] = newReasonGrid()

		for _, r := range rolls {
			landed, reason := Move(strategy, from, r)
			t.move.add(i, states.MustIndex(landed), rollProbability)

			for _, a := range Resolve(jump, landed, reason, rollProbability) {
				t.combined.add(i, states.MustIndex(a.State), a.Probability)
				cell := &t.arrivals[i][a.Reason][a.State.Position]
				*cell = cell.Add(a.Probability)
			}
		}
		logger.Debug("Built transitions", "strategy", strategy.Name(), "from", from)
	}

	label := func(i int) string { return states.State(i).String() }
	t.move.mustBeStochastic("move", label)
	t.combined.mustBeStochastic("combined", label)
	return t
}

func newReasonGrid() [][]probability.Probability {
	grid := make([][]probability.Probability, numReasons)
	for r := range grid {
		row := make([]probability.Probability, board.Size)
		for j := range row {
			row[j] = probability.Never
		}
		grid[r] = row
	}
	return grid
}
