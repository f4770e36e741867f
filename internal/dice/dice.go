// Package dice enumerates the outcomes of rolling two six-sided dice.
package dice

// Faces is the number of faces on each die.
const Faces = 6

// Outcomes is the number of equally likely ordered outcomes of a roll.
const Outcomes = Faces * Faces

// Roll is one ordered outcome of throwing two dice.
type Roll struct {
	D1, D2 int
}

// Sum returns the total of both dice.
func (r Roll) Sum() int { return r.D1 + r.D2 }

// Double reports whether both dice show the same face.
func (r Roll) Double() bool { return r.D1 == r.D2 }

var glyphs = [...]string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

// String renders the roll using die face glyphs.
func (r Roll) String() string {
	return glyph(r.D1) + glyph(r.D2)
}

func glyph(v int) string {
	if v < 1 || v > Faces {
		return "?"
	}
	return glyphs[v-1]
}

// Rolls returns all 36 ordered outcomes sorted by total, then by the first
// die, then by the second.
func Rolls() []Roll {
	out := make([]Roll, 0, Outcomes)
	for sum := 2; sum <= 2*Faces; sum++ {
		for d1 := 1; d1 <= Faces; d1++ {
			d2 := sum - d1
			if d2 >= 1 && d2 <= Faces {
				out = append(out, Roll{D1: d1, D2: d2})
			}
		}
	}
	return out
}

// SumCounts returns how many of the 36 outcomes produce each total, indexed
// by total - 2.
func SumCounts() []int {
	counts := make([]int, 2*Faces-1)
	for _, r := range Rolls() {
		counts[r.Sum()-2]++
	}
	return counts
}
