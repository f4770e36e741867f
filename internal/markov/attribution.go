package markov

import (
	"slices"

	"github.com/lox/monopoly-markov/internal/board"
)

// ReasonTable is the long-run probability that a roll ends on each space,
// split by the reason for arriving there. Every path contributes to exactly
// one reason, so the column for a space sums to its steady state probability.
// A community chest move that follows a chance move is recorded only under
// ReasonChanceCommunityChest; the ReasonCommunityChest bucket never holds it,
// so no correction term is subtracted afterwards.
type ReasonTable struct {
	values [][]float64
}

func newReasonTable(tm *TransMatrix) *ReasonTable {
	values := make([][]float64, numReasons)
	for r := range values {
		values[r] = make([]float64, board.Size)
	}
	for i, weight := range tm.steady {
		for r, row := range tm.arrivals[i] {
			for space, p := range row {
				if !p.IsZero() {
					values[r][space] += weight * p.Float64()
				}
			}
		}
	}
	return &ReasonTable{values: values}
}

// At returns the probability of arriving on space for reason.
func (t *ReasonTable) At(reason MoveReason, space int) float64 {
	return t.values[reason][space]
}

// Row returns a copy of the per-space probabilities for reason.
func (t *ReasonTable) Row(reason MoveReason) []float64 {
	return slices.Clone(t.values[reason])
}

// Total returns the probability of arriving anywhere for reason.
func (t *ReasonTable) Total(reason MoveReason) float64 {
	var sum float64
	for _, v := range t.values[reason] {
		sum += v
	}
	return sum
}

// Column returns the probability of arriving on space summed over reasons.
func (t *ReasonTable) Column(space int) float64 {
	var sum float64
	for r := range t.values {
		sum += t.values[r][space]
	}
	return sum
}

// Used returns the reasons with any probability mass, in declaration order.
func (t *ReasonTable) Used() []MoveReason {
	var out []MoveReason
	for _, r := range Reasons() {
		if t.Total(r) > 0 {
			out = append(out, r)
		}
	}
	return out
}
