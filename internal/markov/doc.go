// Package markov builds the exact Markov chain describing where a token rests
// after each roll of the dice, and solves it for the long-run occupancy of
// every space.
//
// # Basic Usage
//
// Build the chain for one jail strategy, solved to 8 decimal places:
//
//	tm, err := markov.Build(markov.Wait, 8)
//	if err != nil {
//	    return err
//	}
//	bySpace := markov.Summarize(tm, markov.ByPosition)
//
// Build both strategies concurrently:
//
//	all, err := markov.BuildAll(ctx, 8, []markov.Strategy{markov.Pay, markov.Wait})
//
// # Architecture
//
// Construction runs leaf first and every stage is immutable once built:
//   - StateSpace: the canonical (position, doubles, jail attempt) states of a strategy
//   - NewJumpMatrix: one-draw relocations caused by landing on card and jail spaces
//   - the move matrix: dice only transitions between canonical states
//   - the combined matrix: dice transitions with every chained jump folded in
//   - Solver: the stationary vector of the combined matrix
//   - ReasonTable: arrival probability per space split by what caused the arrival
//
// Matrix entries are exact probability.Probability values and every row is
// checked to sum to exactly one. A failed check, or a computed state missing
// from the state space, is a modelling defect and panics. Solver failures are
// returned as errors wrapping ErrNotConverged, ErrRankDeficient or ErrSumDrift.
//
// The in-jail resting state lives on the go-to-jail index: landing there, a go
// to jail card and a triple double all resolve to it, and its jump row is a
// self-loop. Moves out of jail start from the just-visiting space.
package markov
