package board

import "fmt"

// PropertySet groups spaces for summaries. Colour sets come first in board
// order, followed by the non-property groupings.
type PropertySet uint8

const (
	Brown PropertySet = iota
	LightBlue
	Pink
	Orange
	Red
	Yellow
	Green
	DarkBlue
	Station
	UtilitySet
	ChanceSet
	CommunityChestSet
	TaxSet
	Other
)

func (p PropertySet) String() string {
	switch p {
	case Brown:
		return "Brown"
	case LightBlue:
		return "LightBlue"
	case Pink:
		return "Pink"
	case Orange:
		return "Orange"
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	case DarkBlue:
		return "DarkBlue"
	case Station:
		return "Station"
	case UtilitySet:
		return "Utility"
	case ChanceSet:
		return "Chance"
	case CommunityChestSet:
		return "CommunityChest"
	case TaxSet:
		return "Tax"
	case Other:
		return "Other"
	default:
		return "?"
	}
}

// Set returns the grouping a space belongs to.
func (s Space) Set() PropertySet {
	switch s.Kind {
	case KindProperty:
		if s.Group > uint8(DarkBlue) {
			panic(fmt.Sprintf("board: invalid property set %d", s.Group))
		}
		return PropertySet(s.Group)
	case KindRail:
		return Station
	case KindUtility:
		return UtilitySet
	case KindChance:
		return ChanceSet
	case KindCommunityChest:
		return CommunityChestSet
	case KindTax:
		return TaxSet
	default:
		return Other
	}
}
