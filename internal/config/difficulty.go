package config

import (
	"strings"
	"time"
)

// Tier is one of the three difficulty tiers.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
	tierCount
)

// DefaultTier is used whenever a tier name cannot be resolved.
const DefaultTier = TierMedium

var tierNames = [tierCount]string{"easy", "medium", "hard"}

// String returns the tier's persisted name.
func (t Tier) String() string {
	if !t.Valid() {
		return tierNames[DefaultTier]
	}
	return tierNames[t]
}

// Valid reports whether t is one of the three known tiers.
func (t Tier) Valid() bool {
	return t >= TierEasy && t < tierCount
}

// Tiers returns every tier in ascending order.
func Tiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// LookupTier resolves a tier name. The second result is false for unknown names.
func LookupTier(name string) (Tier, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), true
		}
	}
	return DefaultTier, false
}

// ParseTier resolves a tier name, falling back to medium.
func ParseTier(name string) Tier {
	t, _ := LookupTier(name)
	return t
}

// Difficulty holds the physics and pacing parameters of one tier.
// Velocities and accelerations are in pixels per reference frame.
type Difficulty struct {
	Gravity        float64 `yaml:"gravity"`
	Impulse        float64 `yaml:"impulse"`
	ScrollSpeed    float64 `yaml:"scroll_speed"`
	Gap            float64 `yaml:"gap"`
	PipeIntervalMs int     `yaml:"pipe_interval_ms"`
	CoinIntervalMs int     `yaml:"coin_interval_ms"`
}

// PipeInterval returns the pipe spawn interval.
func (d Difficulty) PipeInterval() time.Duration {
	return time.Duration(d.PipeIntervalMs) * time.Millisecond
}

// CoinInterval returns the free-floating coin spawn interval.
func (d Difficulty) CoinInterval() time.Duration {
	return time.Duration(d.CoinIntervalMs) * time.Millisecond
}

var difficultyTable = [tierCount]Difficulty{
	TierEasy: {
		Gravity:        0.20,
		Impulse:        -4.5,
		ScrollSpeed:    2.5,
		Gap:            180,
		PipeIntervalMs: 2000,
		CoinIntervalMs: 3000,
	},
	TierMedium: {
		Gravity:        0.25,
		Impulse:        -5,
		ScrollSpeed:    3,
		Gap:            150,
		PipeIntervalMs: 1500,
		CoinIntervalMs: 2500,
	},
	TierHard: {
		Gravity:        0.30,
		Impulse:        -5.5,
		ScrollSpeed:    4,
		Gap:            120,
		PipeIntervalMs: 1200,
		CoinIntervalMs: 2000,
	},
}

// DifficultyFor returns the built-in parameters of a tier.
// Invalid tiers resolve to medium.
func DifficultyFor(t Tier) Difficulty {
	if !t.Valid() {
		t = DefaultTier
	}
	return difficultyTable[t]
}
