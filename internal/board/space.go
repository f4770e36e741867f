package board

import "fmt"

// Kind identifies the type of a board space.
type Kind uint8

const (
	KindGo Kind = iota
	KindVisit
	KindFreeParking
	KindGoToJail
	KindProperty
	KindRail
	KindUtility
	KindCommunityChest
	KindChance
	KindTax
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case KindGo:
		return "Go"
	case KindVisit:
		return "Visit"
	case KindFreeParking:
		return "FreeParking"
	case KindGoToJail:
		return "GoToJail"
	case KindProperty:
		return "Property"
	case KindRail:
		return "Rail"
	case KindUtility:
		return "Utility"
	case KindCommunityChest:
		return "CommunityChest"
	case KindChance:
		return "Chance"
	case KindTax:
		return "Tax"
	default:
		return "?"
	}
}

// Space is a single board square. Group is the colour set and is only
// meaningful for properties; Index numbers spaces of the same kind (or of the
// same colour set) from zero in board order. Spaces compare structurally with ==.
type Space struct {
	Kind  Kind
	Group uint8
	Index uint8
}

var (
	Go          = Space{Kind: KindGo}
	Visit       = Space{Kind: KindVisit}
	FreeParking = Space{Kind: KindFreeParking}
	GoToJail    = Space{Kind: KindGoToJail}
)

// Property returns the n'th property of a colour set.
func Property(set, n uint8) Space { return Space{Kind: KindProperty, Group: set, Index: n} }

// Rail returns the n'th railway station.
func Rail(n uint8) Space { return Space{Kind: KindRail, Index: n} }

// Utility returns the n'th utility.
func Utility(n uint8) Space { return Space{Kind: KindUtility, Index: n} }

// CommunityChest returns the n'th community chest space.
func CommunityChest(n uint8) Space { return Space{Kind: KindCommunityChest, Index: n} }

// Chance returns the n'th chance space.
func Chance(n uint8) Space { return Space{Kind: KindChance, Index: n} }

// Tax returns the n'th tax space.
func Tax(n uint8) Space { return Space{Kind: KindTax, Index: n} }

// IsCardSpace reports whether landing here draws a card.
func (s Space) IsCardSpace() bool {
	return s.Kind == KindChance || s.Kind == KindCommunityChest
}

// ShortDesc returns a compact label such as "A1", "R2", "CC3" or "ToJail".
func (s Space) ShortDesc() string {
	switch s.Kind {
	case KindGo:
		return "Go"
	case KindVisit:
		return "Jail"
	case KindFreeParking:
		return "Free"
	case KindGoToJail:
		return "ToJail"
	case KindProperty:
		return fmt.Sprintf("%c%d", 'A'+rune(s.Group), s.Index+1)
	case KindRail:
		return fmt.Sprintf("R%d", s.Index+1)
	case KindUtility:
		return fmt.Sprintf("U%d", s.Index+1)
	case KindCommunityChest:
		return fmt.Sprintf("CC%d", s.Index+1)
	case KindChance:
		return fmt.Sprintf("CH%d", s.Index+1)
	case KindTax:
		return fmt.Sprintf("T%d", s.Index+1)
	default:
		return "?"
	}
}

// Name returns a human readable description of the space.
func (s Space) Name() string {
	switch s.Kind {
	case KindGo:
		return "Go"
	case KindVisit:
		return "Just Visiting"
	case KindFreeParking:
		return "Free Parking"
	case KindGoToJail:
		return "Go to Jail"
	case KindProperty:
		return fmt.Sprintf("%s %d", s.Set(), s.Index+1)
	case KindRail:
		return fmt.Sprintf("Rail %d", s.Index+1)
	case KindUtility:
		if s.Index == 0 {
			return "Electric Company"
		}
		return "Water Works"
	case KindCommunityChest:
		return fmt.Sprintf("Community Chest %d", s.Index+1)
	case KindChance:
		return fmt.Sprintf("Chance %d", s.Index+1)
	case KindTax:
		if s.Index == 0 {
			return "Income Tax"
		}
		return "Luxury Tax"
	default:
		return "?"
	}
}

// String implements fmt.Stringer using the short description.
func (s Space) String() string { return s.ShortDesc() }
