// Package spawn decides when and what to spawn: fixed cadences, wave
// schedules, weighted pools and gap placement.
package spawn

import "time"

// Cadence fires once every Interval on a mode clock.
type Cadence struct {
	Interval time.Duration
	last     time.Duration
}

// NewCadence returns a cadence whose first period starts at now.
func NewCadence(interval, now time.Duration) Cadence {
	return Cadence{Interval: checkInterval(interval), last: now}
}

// Due reports whether more than Interval has elapsed since the last spawn
// and, if so, rearms at now.
func (c *Cadence) Due(now time.Duration) bool {
	return c.DueScaled(now, 1)
}

// DueScaled is Due with the interval multiplied by factor.
func (c *Cadence) DueScaled(now time.Duration, factor float64) bool {
	if now-c.last > Scaled(c.Interval, factor) {
		c.last = now
		return true
	}
	return false
}

// Reset starts a new period at now.
func (c *Cadence) Reset(now time.Duration) {
	c.last = now
}

// Last returns the time of the most recent spawn.
func (c *Cadence) Last() time.Duration {
	return c.last
}

// Scaled multiplies an interval by factor. Non-positive factors leave it unchanged.
func Scaled(d time.Duration, factor float64) time.Duration {
	if factor <= 0 || factor == 1 {
		return checkInterval(d)
	}
	return checkInterval(time.Duration(float64(d) * factor))
}
