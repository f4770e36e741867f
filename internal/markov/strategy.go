package markov

import (
	"fmt"
	"strings"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/dice"
)

// MaxJailAttempts is how many rolls a waiting player gets before release.
const MaxJailAttempts = 3

var (
	jailPosition  = board.Find(board.GoToJail)
	visitPosition = board.Find(board.Visit)
)

// Strategy is a jail exit policy. The set of strategies is closed: Pay and
// Wait are the only implementations.
type Strategy interface {
	// Name is the short identifier used on the command line and in reports.
	Name() string
	// StateCount is the exact size of the strategy's canonical state space.
	StateCount() int
	// jailStates lists the resting states on the jail position.
	jailStates() []State
	// leaveJail resolves a roll taken while resting in jail.
	leaveJail(s State, r dice.Roll) (State, MoveReason)
}

type payStrategy struct{}

type waitStrategy struct{}

var (
	// Pay always pays the fine and leaves jail on the next roll.
	Pay Strategy = payStrategy{}
	// Wait tries to roll a double for up to three turns before release.
	Wait Strategy = waitStrategy{}
)

// Strategies returns every strategy in a fixed order.
func Strategies() []Strategy {
	return []Strategy{Pay, Wait}
}

// ParseStrategy resolves a strategy name as returned by Name.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown jail strategy %q (want pay or wait)", name)
}

func (payStrategy) Name() string    { return "pay" }
func (payStrategy) StateCount() int { return 118 }

func (payStrategy) jailStates() []State {
	return []State{{Position: jailPosition}}
}

// Paying releases the token immediately; a double still counts towards the
// consecutive doubles of the new turn.
func (payStrategy) leaveJail(_ State, r dice.Roll) (State, MoveReason) {
	doubles := 0
	if r.Double() {
		doubles = 1
	}
	return State{Position: board.Wrap(visitPosition + r.Sum()), Doubles: doubles}, ReasonRoll
}

func (waitStrategy) Name() string    { return "wait" }
func (waitStrategy) StateCount() int { return 120 }

func (waitStrategy) jailStates() []State {
	out := make([]State, 0, MaxJailAttempts)
	for attempt := 0; attempt < MaxJailAttempts; attempt++ {
		out = append(out, State{Position: jailPosition, JailAttempt: attempt})
	}
	return out
}

// A double moves the token out without a further roll. After the third
// failed attempt the token is released onto just visiting.
func (waitStrategy) leaveJail(s State, r dice.Roll) (State, MoveReason) {
	if r.Double() {
		return State{Position: board.Wrap(visitPosition + r.Sum())}, ReasonRoll
	}
	attempt := s.JailAttempt + 1
	if attempt == MaxJailAttempts {
		return State{Position: visitPosition}, ReasonExitJail
	}
	return State{Position: jailPosition, JailAttempt: attempt}, ReasonNoDouble
}
