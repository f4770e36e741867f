package markov

import "fmt"

// MoveReason classifies what caused the token to arrive where it rests.
type MoveReason uint8

const (
	// ReasonRoll is a plain dice move, including leaving jail on a roll.
	ReasonRoll MoveReason = iota
	// ReasonChance is a chance card relocation.
	ReasonChance
	// ReasonCommunityChest is a community chest card relocation or draw.
	ReasonCommunityChest
	// ReasonChanceCommunityChest is a community chest draw reached through a
	// chance card.
	ReasonChanceCommunityChest
	// ReasonGoToJail is landing on the go-to-jail space.
	ReasonGoToJail
	// ReasonTripleDouble is the third consecutive double.
	ReasonTripleDouble
	// ReasonNoDouble is a failed attempt to roll out of jail.
	ReasonNoDouble
	// ReasonExitJail is the forced release after the last failed attempt.
	ReasonExitJail

	numReasons
)

// Reasons returns every move reason in declaration order.
func Reasons() []MoveReason {
	out := make([]MoveReason, numReasons)
	for i := range out {
		out[i] = MoveReason(i)
	}
	return out
}

var reasonNames = [...]string{
	ReasonRoll:                 "Roll",
	ReasonChance:               "Chance",
	ReasonCommunityChest:       "CommChest",
	ReasonChanceCommunityChest: "Chance+CommChest",
	ReasonGoToJail:             "GoToJail",
	ReasonTripleDouble:         "TripleDouble",
	ReasonNoDouble:             "NoDouble",
	ReasonExitJail:             "ExitJail",
}

func (r MoveReason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("MoveReason(%d)", uint8(r))
}

// Description is a longer human readable label for reports.
func (r MoveReason) Description() string {
	switch r {
	case ReasonRoll:
		return "Dice roll"
	case ReasonChance:
		return "Chance card"
	case ReasonCommunityChest:
		return "Community chest card"
	case ReasonChanceCommunityChest:
		return "Chance then community chest"
	case ReasonGoToJail:
		return "Landed on go to jail"
	case ReasonTripleDouble:
		return "Three doubles in a row"
	case ReasonNoDouble:
		return "Failed to roll a double in jail"
	case ReasonExitJail:
		return "Released after three attempts"
	}
	return r.String()
}
