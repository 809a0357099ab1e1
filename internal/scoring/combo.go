// Package scoring implements combo scoring, medals, per-tier high scores
// and the coin wallet.
package scoring

import (
	"strings"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

// Policy decides which event in a streak is the first multiplied one.
type Policy int

const (
	// AfterThreshold multiplies events once the streak has exceeded the threshold.
	AfterThreshold Policy = iota
	// AtThreshold multiplies the event that reaches the threshold.
	AtThreshold
)

// ParsePolicy resolves a policy name. Unknown names use AfterThreshold.
func ParsePolicy(name string) Policy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "at_threshold":
		return AtThreshold
	default:
		return AfterThreshold
	}
}

// String returns the policy name.
func (p Policy) String() string {
	if p == AtThreshold {
		return "at_threshold"
	}
	return "after_threshold"
}

// Combo counts consecutive scoring events and multiplies points once a
// streak is long enough. A streak ends when more than Window passes
// between events.
type Combo struct {
	Window     time.Duration
	Threshold  int
	Multiplier float64
	Policy     Policy

	count int
	best  int
	last  time.Duration
}

// NewCombo builds a combo engine from tuning.
func NewCombo(cfg config.ComboConfig) *Combo {
	return &Combo{
		Window:     cfg.Window(),
		Threshold:  cfg.Threshold,
		Multiplier: cfg.Multiplier,
		Policy:     ParsePolicy(cfg.Policy),
	}
}

// Tick resets the streak once the window has been exceeded.
func (c *Combo) Tick(now time.Duration) {
	if c.count > 0 && now-c.last > c.Window {
		c.count = 0
	}
}

// Register records a scoring event worth base points and returns the
// points actually awarded.
func (c *Combo) Register(now time.Duration, base int) int {
	c.Tick(now)
	c.count++
	c.last = now
	if c.count > c.best {
		c.best = c.count
	}
	if c.multiplied() {
		return int(float64(base) * c.Multiplier)
	}
	return base
}

func (c *Combo) multiplied() bool {
	if c.Threshold <= 0 {
		return false
	}
	if c.Policy == AtThreshold {
		return c.count >= c.Threshold
	}
	return c.count > c.Threshold
}

// Count returns the current streak length.
func (c *Combo) Count() int {
	return c.count
}

// Best returns the longest streak seen.
func (c *Combo) Best() int {
	return c.best
}

// Break ends the current streak.
func (c *Combo) Break() {
	c.count = 0
}
