// Package effects tracks timed buffs against a mode clock.
package effects

import (
	"sort"
	"time"
)

// Kind identifies a timed effect.
type Kind int

const (
	Shield Kind = iota
	Invincible
	Magnet
	SlowTime
	ScoreBoost
	RapidFire
)

var kindNames = map[Kind]string{
	Shield:     "shield",
	Invincible: "invincible",
	Magnet:     "magnet",
	SlowTime:   "slow_time",
	ScoreBoost: "score_boost",
	RapidFire:  "rapid_fire",
}

// String returns the effect name.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Registry maps active effects to their expiry time.
// An effect is active until the clock reaches its expiry.
type Registry struct {
	expiry map[Kind]time.Duration
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{expiry: make(map[Kind]time.Duration)}
}

// Activate starts kind for d from now. Activating an active effect
// refreshes its expiry rather than stacking. Non-positive durations are ignored.
func (r *Registry) Activate(kind Kind, now, d time.Duration) {
	if d <= 0 {
		return
	}
	r.expiry[kind] = now + d
}

// Tick expires every effect whose expiry is at or before now and returns
// the expired kinds in ascending order.
func (r *Registry) Tick(now time.Duration) []Kind {
	var expired []Kind
	for k, at := range r.expiry {
		if at <= now {
			expired = append(expired, k)
			delete(r.expiry, k)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Active reports whether kind is in effect.
func (r *Registry) Active(kind Kind) bool {
	_, ok := r.expiry[kind]
	return ok
}

// Remaining returns the time left on kind, or zero.
func (r *Registry) Remaining(kind Kind, now time.Duration) time.Duration {
	at, ok := r.expiry[kind]
	if !ok || at <= now {
		return 0
	}
	return at - now
}

// Consume ends kind early. It reports whether it was active.
func (r *Registry) Consume(kind Kind) bool {
	if !r.Active(kind) {
		return false
	}
	delete(r.expiry, kind)
	return true
}

// Protected reports whether a lethal hit would be absorbed.
func (r *Registry) Protected() bool {
	return r.Active(Shield) || r.Active(Invincible)
}

// Absorb soaks up one hit, consuming the shield first and invincibility
// otherwise. It reports whether the hit was absorbed.
func (r *Registry) Absorb() bool {
	if r.Consume(Shield) {
		return true
	}
	return r.Consume(Invincible)
}

// ScoreMultiplier returns 2 while a score boost is active, 1 otherwise.
func (r *Registry) ScoreMultiplier() int {
	if r.Active(ScoreBoost) {
		return 2
	}
	return 1
}

// Kinds returns the active effects in ascending order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.expiry))
	for k := range r.expiry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Reset clears every effect.
func (r *Registry) Reset() {
	clear(r.expiry)
}
