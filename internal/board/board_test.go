package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	require.Len(t, Spaces(), Size)

	assert.Equal(t, 0, Find(Go))
	assert.Equal(t, 10, Find(Visit))
	assert.Equal(t, 20, Find(FreeParking))
	assert.Equal(t, 30, Find(GoToJail))
	assert.Equal(t, []int{7, 22, 36}, IndicesOf(KindChance))
	assert.Equal(t, []int{2, 17, 33}, IndicesOf(KindCommunityChest))
	assert.Equal(t, []int{5, 15, 25, 35}, IndicesOf(KindRail))
	assert.Equal(t, []int{12, 28}, IndicesOf(KindUtility))
	assert.Equal(t, 22, len(IndicesOf(KindProperty)))
}

func TestFindPanicsForMissingSpace(t *testing.T) {
	assert.Panics(t, func() { Find(Property(9, 0)) })
}

func TestFindNext(t *testing.T) {
	tests := []struct {
		from    int
		rail    int
		utility int
	}{
		{from: 7, rail: 15, utility: 12},
		{from: 22, rail: 25, utility: 28},
		{from: 36, rail: 5, utility: 12},
		{from: 5, rail: 15, utility: 12},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.rail, NextRail(tt.from), "rail after %d", tt.from)
		assert.Equal(t, tt.utility, NextUtility(tt.from), "utility after %d", tt.from)
	}
}

func TestFindNextPanicsWithoutMatch(t *testing.T) {
	assert.Panics(t, func() {
		FindNext(0, func(Space) bool { return false })
	})
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, Wrap(40))
	assert.Equal(t, 39, Wrap(-1))
	assert.Equal(t, 33, Wrap(36-3))
	assert.Equal(t, Chance(2), At(76))
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "A1", Property(0, 0).ShortDesc())
	assert.Equal(t, "H2", Property(7, 1).ShortDesc())
	assert.Equal(t, "CC3", CommunityChest(2).ShortDesc())
	assert.Equal(t, "CH1", Chance(0).String())
	assert.Equal(t, "ToJail", GoToJail.ShortDesc())
	assert.Equal(t, "Jail", Visit.ShortDesc())
	assert.Equal(t, "Water Works", Utility(1).Name())
	assert.Equal(t, "DarkBlue 2", Property(7, 1).Name())
}

func TestSets(t *testing.T) {
	assert.Equal(t, Brown, At(1).Set())
	assert.Equal(t, DarkBlue, At(39).Set())
	assert.Equal(t, Station, At(5).Set())
	assert.Equal(t, UtilitySet, At(12).Set())
	assert.Equal(t, ChanceSet, At(7).Set())
	assert.Equal(t, CommunityChestSet, At(2).Set())
	assert.Equal(t, TaxSet, At(4).Set())
	assert.Equal(t, Other, At(0).Set())
	assert.Equal(t, Other, At(30).Set())
}

func TestCardSpaces(t *testing.T) {
	count := 0
	for _, s := range Spaces() {
		if s.IsCardSpace() {
			count++
		}
	}
	assert.Equal(t, 6, count)
}
