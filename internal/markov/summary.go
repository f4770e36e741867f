package markov

import (
	"cmp"
	"slices"

	"github.com/lox/monopoly-markov/internal/board"
)

// Group is the total steady state probability of the states sharing Key.
type Group[K cmp.Ordered] struct {
	Key         K
	Probability float64
}

// Summarize groups the steady state vector by key, summing the probability
// of each group. States for which key reports false are left out. Groups are
// returned in ascending key order.
func Summarize[K cmp.Ordered](tm *TransMatrix, key func(State) (K, bool)) []Group[K] {
	totals := make(map[K]float64)
	for i, p := range tm.steady {
		k, ok := key(tm.states.State(i))
		if !ok {
			continue
		}
		totals[k] += p
	}

	out := make([]Group[K], 0, len(totals))
	for k, p := range totals {
		out = append(out, Group[K]{Key: k, Probability: p})
	}
	slices.SortFunc(out, func(a, b Group[K]) int { return cmp.Compare(a.Key, b.Key) })
	return out
}

// Sum returns the steady state probability of every state matching filter.
func (tm *TransMatrix) Sum(filter func(State) bool) float64 {
	var total float64
	for i, p := range tm.steady {
		if filter(tm.states.State(i)) {
			total += p
		}
	}
	return total
}

// ByPosition keys a state by its board index.
func ByPosition(s State) (int, bool) { return s.Position, true }

// BySet keys a state by the property set of its space.
func BySet(s State) (board.PropertySet, bool) { return s.Space().Set(), true }

// ByDoubles keys a state by its consecutive double count.
func ByDoubles(s State) (int, bool) { return s.Doubles, true }

// ByJailAttempt keys jail states by attempt and skips all others.
func ByJailAttempt(s State) (int, bool) { return s.JailAttempt, s.InJail() }

// PositionVector returns the steady state probability of each board space,
// indexed by position.
func PositionVector(tm *TransMatrix) []float64 {
	out := make([]float64, board.Size)
	for _, g := range Summarize(tm, ByPosition) {
		out[g.Key] = g.Probability
	}
	return out
}
