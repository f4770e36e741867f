package markov

import (
	"github.com/charmbracelet/log"

	"github.com/lox/monopoly-markov/internal/board"
	"github.com/lox/monopoly-markov/internal/cards"
	"github.com/lox/monopoly-markov/internal/probability"
)

// NewJumpMatrix builds the 40x40 matrix of one-draw relocations. Row i is
// the distribution of where a token landing on space i ends up after the
// space's own effect: card spaces spread by their deck, go-to-jail keeps the
// token in place as the in-jail state, and every other space is the identity.
func NewJumpMatrix(logger *log.Logger) *Matrix {
	if logger == nil {
		logger = discardLogger()
	}
	m := newMatrix(board.Size, board.Size)
	chance := cards.NewChanceDeck().Counts()
	chest := cards.NewCommunityChestDeck().Counts()

	for i, space := range board.Spaces() {
		switch space.Kind {
		case board.KindChance:
			addDeckRow(m, i, chance)
		case board.KindCommunityChest:
			addDeckRow(m, i, chest)
		default:
			m.add(i, i, probability.Always)
		}
		logger.Debug("Jump row", "space", space.ShortDesc(), "stays", m.At(i, i))
	}

	m.mustBeStochastic("jump", func(i int) string { return board.At(i).ShortDesc() })
	return m
}

func addDeckRow[C cards.Card](m *Matrix, from int, counts []cards.Count[C]) {
	for _, c := range counts {
		m.add(from, c.Card.Destination(from), probability.Frac(int64(c.N), cards.DeckSize))
	}
}
