package probability

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Probability
		want Probability
	}{
		{"add", Frac(1, 2).Add(Frac(1, 3)), Frac(5, 6)},
		{"add same denominator", Frac(1, 4).Add(Frac(1, 4)), Frac(1, 2)},
		{"sub", Frac(1, 2).Sub(Frac(1, 3)), Frac(1, 6)},
		{"sub negative", Frac(1, 4).Sub(Frac(1, 2)), Frac(-1, 4)},
		{"mul", Frac(2, 3).Mul(Frac(1, 2)), Frac(1, 3)},
		{"mul by zero", Frac(2, 3).Mul(Never), Never},
		{"mul negative left", Frac(-1, 2).Mul(Frac(2, 3)), Frac(-1, 3)},
		{"mul negative right", Frac(1, 2).Mul(Frac(-2, 3)), Frac(-1, 3)},
		{"mul both negative", Frac(-1, 2).Mul(Frac(-2, 3)), Frac(1, 3)},
		{"div negative", Frac(-2, 3).Div(Frac(2, 1)), Frac(-1, 3)},
		{"div by negative", Frac(2, 3).Div(Frac(-2, 1)), Frac(-1, 3)},
		{"mul int", Frac(1, 36).MulInt(6), Frac(1, 6)},
		{"div", Frac(2, 3).Div(Frac(2, 1)), Frac(1, 3)},
		{"div int", Frac(2, 3).DivInt(2), Frac(1, 3)},
		{"reciprocal", Frac(3, 7).Reciprocal(), Frac(7, 3)},
		{"reciprocal negative", Frac(-3, 7).Reciprocal(), Frac(-7, 3)},
		{"neg", Frac(1, 2).Neg(), Frac(-1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.got.Equal(tt.want), "got %s, want %s", tt.got, tt.want)
		})
	}
}

func TestNewReducesToLowestTerms(t *testing.T) {
	p := New(12, 36)
	assert.Equal(t, int64(1), p.Numerator())
	assert.Equal(t, uint64(3), p.Denominator())

	z := New(0, 17)
	assert.Equal(t, uint64(1), z.Denominator())
	assert.True(t, z.Equal(Never))
}

func TestZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { New(1, 0) })
	assert.Panics(t, func() { Never.Reciprocal() })
	assert.Panics(t, func() { Always.DivInt(0) })
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Frac(1, 3).Cmp(Frac(1, 2)))
	assert.Equal(t, 1, Frac(2, 3).Cmp(Frac(1, 2)))
	assert.Equal(t, 0, Frac(2, 4).Cmp(Frac(1, 2)))
	assert.True(t, Frac(-1, 4).Less(Never))
	assert.True(t, Never.Less(Always))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0", Never.String())
	assert.Equal(t, "0", Probability{}.String())
	assert.Equal(t, "1/36", Frac(1, 36).String())
	assert.Equal(t, "-1/4", Frac(-1, 4).String())
	assert.Equal(t, "1/1", Always.String())
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().Equal(Never))
	assert.True(t, Sum(Frac(1, 2), Frac(1, 4)).Equal(Frac(3, 4)))

	var parts []Probability
	for i := 0; i < 36; i++ {
		parts = append(parts, Frac(1, 36))
	}
	assert.True(t, Sum(parts...).Equal(Always))
}

func TestFloat64(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, Frac(1, 3).Float64(), 1e-15)
	assert.Equal(t, 0.0, Probability{}.Float64())
}

func TestZeroValueIsNever(t *testing.T) {
	var p Probability
	require.True(t, p.IsZero())
	assert.True(t, p.Add(Frac(1, 2)).Equal(Frac(1, 2)))
}

func TestOverflowPanics(t *testing.T) {
	big := New(1, math.MaxUint64/3)
	assert.Panics(t, func() { big.Mul(New(1, 7)) })
	assert.Panics(t, func() { New(math.MaxInt64, 1).Add(Always) })
	assert.Panics(t, func() { Frac(-(1 << 62), 1).Mul(Frac(-2, 1)) })
	assert.True(t, Frac(-(1 << 62), 1).Mul(Frac(2, 1)).Equal(New(math.MinInt64, 1)))
}

func TestChainedCardProbabilitiesStaySmall(t *testing.T) {
	// roll -> chance -> community chest -> go to jail
	p := Frac(1, 36).Mul(Frac(1, 16)).Mul(Frac(1, 16))
	assert.Equal(t, uint64(9216), p.Denominator())
}
