package markov

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/monopoly-markov/internal/board"
)

// MaxDoubles is the number of consecutive doubles that sends the token to jail.
const MaxDoubles = 3

// State is a resting configuration of the token between rolls.
type State struct {
	Position    int
	Doubles     int
	JailAttempt int
}

// InJail reports whether the state is a jail resting state.
func (s State) InJail() bool { return s.Position == jailPosition }

// Space returns the board space under the token.
func (s State) Space() board.Space { return board.At(s.Position) }

// Compare orders states by position, then doubles, then jail attempt.
func (s State) Compare(o State) int {
	if c := cmp.Compare(s.Position, o.Position); c != 0 {
		return c
	}
	if c := cmp.Compare(s.Doubles, o.Doubles); c != 0 {
		return c
	}
	return cmp.Compare(s.JailAttempt, o.JailAttempt)
}

// String renders the state as e.g. "[CH3 d1]" or "[ToJail r2]".
func (s State) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(s.Space().ShortDesc())
	if s.Doubles > 0 {
		fmt.Fprintf(&b, " d%d", s.Doubles)
	}
	if s.InJail() {
		fmt.Fprintf(&b, " r%d", s.JailAttempt)
	}
	b.WriteString("]")
	return b.String()
}

// StateSpace is the ordered set of canonical states for one strategy. The
// index of a state is its position in ascending State order.
type StateSpace struct {
	states []State
	index  map[State]int
}

// NewStateSpace enumerates the canonical states of strategy: every position
// except go-to-jail with 0, 1 or 2 consecutive doubles, plus the strategy's
// jail resting states. It panics if the count differs from
// strategy.StateCount().
func NewStateSpace(strategy Strategy) *StateSpace {
	var states []State
	for doubles := 0; doubles < MaxDoubles; doubles++ {
		for pos := 0; pos < board.Size; pos++ {
			if pos == jailPosition {
				continue
			}
			states = append(states, State{Position: pos, Doubles: doubles})
		}
	}
	states = append(states, strategy.jailStates()...)

	slices.SortFunc(states, State.Compare)
	states = slices.Compact(states)

	if len(states) != strategy.StateCount() {
		panic(fmt.Sprintf("markov: %s strategy produced %d states, want %d",
			strategy.Name(), len(states), strategy.StateCount()))
	}

	index := make(map[State]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	return &StateSpace{states: states, index: index}
}

// Len returns the number of canonical states.
func (ss *StateSpace) Len() int { return len(ss.states) }

// State returns the state at index i.
func (ss *StateSpace) State(i int) State { return ss.states[i] }

// States returns a copy of the states in index order.
func (ss *StateSpace) States() []State { return slices.Clone(ss.states) }

// Index returns the index of s and whether s is canonical.
func (ss *StateSpace) Index(s State) (int, bool) {
	i, ok := ss.index[s]
	return i, ok
}

// MustIndex returns the index of s, panicking if s is not canonical. A miss
// means the state space is incomplete and probability mass would be lost.
func (ss *StateSpace) MustIndex(s State) int {
	i, ok := ss.index[s]
	if !ok {
		panic(fmt.Sprintf("markov: state %s %+v not in canonical state space", s, s))
	}
	return i
}
