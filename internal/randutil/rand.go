// Package randutil centralises how simulations derive reproducible random
// number generators from a single int64 seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Resolve returns seed unless it is zero, in which case a time based seed is
// returned. Callers log the resolved value so a run can be replayed.
func Resolve(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	return now.UnixNano()
}

// Split derives n independent worker seeds from a parent seed. The same
// parent always yields the same children.
func Split(seed int64, n int) []int64 {
	rng := New(seed)
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int64()
	}
	return out
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
