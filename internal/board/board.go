// Package board describes the fixed 40 space board and the lookups used to
// resolve card destinations.
//
// The layout is a process-wide constant. Lookups that fail indicate a
// malformed board and panic rather than returning an error.
package board

import "fmt"

// Size is the number of spaces on the board.
const Size = 40

var spaces = [Size]Space{
	Go,
	Property(0, 0),
	CommunityChest(0),
	Property(0, 1),
	Tax(0),
	Rail(0),
	Property(1, 0),
	Chance(0),
	Property(1, 1),
	Property(1, 2),
	Visit,
	Property(2, 0),
	Utility(0),
	Property(2, 1),
	Property(2, 2),
	Rail(1),
	Property(3, 0),
	CommunityChest(1),
	Property(3, 1),
	Property(3, 2),
	FreeParking,
	Property(4, 0),
	Chance(1),
	Property(4, 1),
	Property(4, 2),
	Rail(2),
	Property(5, 0),
	Property(5, 1),
	Utility(1),
	Property(5, 2),
	GoToJail,
	Property(6, 0),
	Property(6, 1),
	CommunityChest(2),
	Property(6, 2),
	Rail(3),
	Chance(2),
	Property(7, 0),
	Tax(1),
	Property(7, 1),
}

// At returns the space at index i. i is taken modulo Size.
func At(i int) Space {
	return spaces[Wrap(i)]
}

// Spaces returns a copy of the board layout in order.
func Spaces() []Space {
	out := make([]Space, Size)
	copy(out, spaces[:])
	return out
}

// Wrap maps any integer onto a board index.
func Wrap(i int) int {
	i %= Size
	if i < 0 {
		i += Size
	}
	return i
}

// Find returns the index of space. It panics if the space is not on the board.
func Find(space Space) int {
	for i, s := range spaces {
		if s == space {
			return i
		}
	}
	panic(fmt.Sprintf("board: space %s not found", space))
}

// FindNext scans forward from the space after from, wrapping around the
// board, and returns the first index whose space satisfies match. It panics
// if no space matches within one lap.
func FindNext(from int, match func(Space) bool) int {
	for i := 1; i < Size; i++ {
		idx := Wrap(from + i)
		if match(spaces[idx]) {
			return idx
		}
	}
	panic(fmt.Sprintf("board: no matching space after %d", from))
}

// NextRail returns the index of the first railway station ahead of from.
func NextRail(from int) int {
	return FindNext(from, func(s Space) bool { return s.Kind == KindRail })
}

// NextUtility returns the index of the first utility ahead of from.
func NextUtility(from int) int {
	return FindNext(from, func(s Space) bool { return s.Kind == KindUtility })
}

// IndicesOf returns every board index whose space has the given kind.
func IndicesOf(kind Kind) []int {
	var out []int
	for i, s := range spaces {
		if s.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}
