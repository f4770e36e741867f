package cards

import (
	"fmt"

	"github.com/lox/monopoly-markov/internal/board"
)

// Card is an effect drawn from a pile. Destination resolves the effect for a
// token drawing the card on board index from; effects that do not move the
// token return from unchanged.
type Card interface {
	comparable
	fmt.Stringer
	Destination(from int) int
}

// ChanceKind enumerates the effects printed on chance cards.
type ChanceKind uint8

const (
	ChanceGoGo ChanceKind = iota
	ChanceGoJail
	ChanceGoProperty
	ChanceGoRail
	ChanceNextRail
	ChanceNextUtility
	ChanceBack3
	ChanceNoop
)

// ChanceCard is a chance effect. Target is set for the fixed destination
// kinds (ChanceGoProperty and ChanceGoRail).
type ChanceCard struct {
	Kind   ChanceKind
	Target board.Space
}

// Destination implements Card. Go to jail resolves to the go-to-jail space,
// which is where the in-jail resting state lives.
func (c ChanceCard) Destination(from int) int {
	switch c.Kind {
	case ChanceGoGo:
		return board.Find(board.Go)
	case ChanceGoJail:
		return board.Find(board.GoToJail)
	case ChanceGoProperty, ChanceGoRail:
		return board.Find(c.Target)
	case ChanceNextRail:
		return board.NextRail(from)
	case ChanceNextUtility:
		return board.NextUtility(from)
	case ChanceBack3:
		return board.Wrap(from - 3)
	case ChanceNoop:
		return from
	default:
		panic(fmt.Sprintf("cards: unknown chance card kind %d", c.Kind))
	}
}

func (c ChanceCard) String() string {
	switch c.Kind {
	case ChanceGoGo:
		return "Advance to Go"
	case ChanceGoJail:
		return "Go to Jail"
	case ChanceGoProperty, ChanceGoRail:
		return "Advance to " + c.Target.ShortDesc()
	case ChanceNextRail:
		return "Advance to nearest Rail"
	case ChanceNextUtility:
		return "Advance to nearest Utility"
	case ChanceBack3:
		return "Go back 3 spaces"
	case ChanceNoop:
		return "No movement"
	default:
		return "?"
	}
}

// CommunityChestCard is a community chest effect.
type CommunityChestCard uint8

const (
	CommunityChestGoGo CommunityChestCard = iota
	CommunityChestGoJail
	CommunityChestNoop
)

// Destination implements Card.
func (c CommunityChestCard) Destination(from int) int {
	switch c {
	case CommunityChestGoGo:
		return board.Find(board.Go)
	case CommunityChestGoJail:
		return board.Find(board.GoToJail)
	case CommunityChestNoop:
		return from
	default:
		panic(fmt.Sprintf("cards: unknown community chest card %d", uint8(c)))
	}
}

func (c CommunityChestCard) String() string {
	switch c {
	case CommunityChestGoGo:
		return "Advance to Go"
	case CommunityChestGoJail:
		return "Go to Jail"
	case CommunityChestNoop:
		return "No movement"
	default:
		return "?"
	}
}
