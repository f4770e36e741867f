// Package probability implements an exact rational number type used to build
// transition matrices without floating point error.
//
// Values are always held in lowest terms with a positive denominator. All
// arithmetic is overflow checked: an operation whose intermediate result does
// not fit in 64 bits panics rather than silently wrapping.
package probability

import (
	"fmt"
	"math"
	"math/bits"
)

// Probability is an immutable fraction numerator/denominator.
type Probability struct {
	num int64
	den uint64
}

var (
	// Never is the additive identity.
	Never = Probability{num: 0, den: 1}
	// Always is the multiplicative identity.
	Always = Probability{num: 1, den: 1}
)

// New returns numerator/denominator reduced to lowest terms. A zero
// denominator is a programming error and panics.
func New(numerator int64, denominator uint64) Probability {
	if denominator == 0 {
		panic("probability: zero denominator")
	}
	return normalise(numerator, denominator)
}

// Frac is shorthand for New with a signed denominator, convenient in tests
// and constant tables.
func Frac(numerator, denominator int64) Probability {
	if denominator < 0 {
		numerator, denominator = -numerator, -denominator
	}
	return New(numerator, uint64(denominator))
}

// Numerator returns the reduced numerator.
func (p Probability) Numerator() int64 { return p.num }

// Denominator returns the reduced denominator, which is never zero.
func (p Probability) Denominator() uint64 {
	if p.den == 0 {
		return 1
	}
	return p.den
}

// IsZero reports whether p == 0.
func (p Probability) IsZero() bool { return p.num == 0 }

// Add returns p + q.
func (p Probability) Add(q Probability) Probability {
	l, pm, qm := lcm(p.Denominator(), q.Denominator())
	return normalise(addInt(mulInt(p.num, pm), mulInt(q.num, qm)), l)
}

// Sub returns p - q.
func (p Probability) Sub(q Probability) Probability {
	return p.Add(q.Neg())
}

// Neg returns -p.
func (p Probability) Neg() Probability {
	if p.num == minInt64 {
		panic("probability overflow: negate")
	}
	return Probability{num: -p.num, den: p.Denominator()}
}

// Mul returns p * q. Factors are cross-reduced before multiplying so the
// result grows no more than necessary.
func (p Probability) Mul(q Probability) Probability {
	if p.num == 0 || q.num == 0 {
		return Never
	}
	g1 := gcd(abs(p.num), q.Denominator())
	g2 := gcd(abs(q.num), p.Denominator())

	b := q.num / int64(g2)
	num := mulInt(p.num/int64(g1), abs(b))
	if b < 0 {
		num = negInt(num)
	}
	den := mulUint(p.Denominator()/g2, q.Denominator()/g1)

	return normalise(num, den)
}

// MulInt returns p * n.
func (p Probability) MulInt(n uint64) Probability {
	g := gcd(n, p.Denominator())
	return normalise(mulInt(p.num, n/g), p.Denominator()/g)
}

// Div returns p / q. Dividing by zero panics.
func (p Probability) Div(q Probability) Probability {
	return p.Mul(q.Reciprocal())
}

// DivInt returns p / n. Dividing by zero panics.
func (p Probability) DivInt(n uint64) Probability {
	if n == 0 {
		panic("probability: division by zero")
	}
	g := gcd(abs(p.num), n)
	return normalise(p.num/int64(g), mulUint(p.Denominator(), n/g))
}

// Reciprocal returns 1/p. The reciprocal of zero panics.
func (p Probability) Reciprocal() Probability {
	switch {
	case p.num == 0:
		panic("probability: reciprocal of zero")
	case p.num < 0:
		return normalise(-toInt(p.Denominator()), abs(p.num))
	default:
		return normalise(toInt(p.Denominator()), uint64(p.num))
	}
}

// Cmp compares p and q, returning -1, 0 or +1.
func (p Probability) Cmp(q Probability) int {
	_, pm, qm := lcm(p.Denominator(), q.Denominator())
	a, b := mulInt(p.num, pm), mulInt(q.num, qm)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether p and q are the same value.
func (p Probability) Equal(q Probability) bool {
	return p.num == q.num && p.Denominator() == q.Denominator()
}

// Less reports whether p < q.
func (p Probability) Less(q Probability) bool { return p.Cmp(q) < 0 }

// Float64 converts p to the nearest float64.
func (p Probability) Float64() float64 {
	return float64(p.num) / float64(p.Denominator())
}

// String renders "n/d", or "0" for zero. Whole numbers render as "n/1".
func (p Probability) String() string {
	if p.num == 0 {
		return "0"
	}
	return fmt.Sprintf("%d/%d", p.num, p.Denominator())
}

// Sum adds every value in ps. The sum of nothing is Never.
func Sum(ps ...Probability) Probability {
	total := Never
	for _, p := range ps {
		total = total.Add(p)
	}
	return total
}

const minInt64 = -1 << 63

func normalise(num int64, den uint64) Probability {
	if num == 0 {
		return Never
	}
	if g := gcd(abs(num), den); g != 1 {
		num /= int64(g)
		den /= g
	}
	return Probability{num: num, den: den}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// lcm returns the least common multiple of a and b together with the
// multipliers that scale a and b up to it.
func lcm(a, b uint64) (uint64, uint64, uint64) {
	l := mulUint(a/gcd(a, b), b)
	return l, l / a, l / b
}

func abs(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

func toInt(n uint64) int64 {
	if n > 1<<63-1 {
		panic("probability overflow: denominator exceeds int64")
	}
	return int64(n)
}

func mulUint(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		panic(fmt.Sprintf("probability overflow: %d * %d", a, b))
	}
	return lo
}

func mulInt(a int64, b uint64) int64 {
	m := mulUint(abs(a), b)
	if m == 0 {
		return 0
	}
	if a < 0 {
		if m > 1<<63 {
			panic(fmt.Sprintf("probability overflow: %d * %d", a, b))
		}
		return -int64(m-1) - 1
	}
	return toInt(m)
}

func negInt(a int64) int64 {
	if a == math.MinInt64 {
		panic(fmt.Sprintf("probability overflow: -(%d)", a))
	}
	return -a
}

func addInt(a, b int64) int64 {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		panic(fmt.Sprintf("probability overflow: %d + %d", a, b))
	}
	return s
}
