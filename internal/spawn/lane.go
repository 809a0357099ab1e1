package spawn

import "math/rand"

// Lane is the vertical band in which gaps and pickups may be placed.
type Lane struct {
	Top    float64
	Ground float64
	Margin float64
}

// GapCenter returns a uniformly random gap centre that keeps a gap of the
// given height at least Margin away from both edges. When the band is too
// small the midpoint is returned.
func (l Lane) GapCenter(rng *rand.Rand, gap float64) float64 {
	lo := l.Top + gap/2 + l.Margin
	hi := l.Ground - gap/2 - l.Margin
	return Between(rng, lo, hi)
}

// Between returns a uniform value in [lo, hi], or the midpoint when hi < lo.
func Between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float64()*(hi-lo)
}

// Chance rolls a side-channel spawn with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
