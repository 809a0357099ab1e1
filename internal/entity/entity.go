// Package entity holds the transient objects modes spawn every few frames:
// hazards, projectiles, collectibles and pipe pairs.
package entity

import (
	"math"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Kind tags what an entity is.
type Kind int

const (
	KindRock Kind = iota
	KindMissile
	KindBomb
	KindFragment
	KindLaser
	KindBullet
	KindCoin
	KindPowerUp
	KindEnvelope
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRock:
		return "rock"
	case KindMissile:
		return "missile"
	case KindBomb:
		return "bomb"
	case KindFragment:
		return "fragment"
	case KindLaser:
		return "laser"
	case KindBullet:
		return "bullet"
	case KindCoin:
		return "coin"
	case KindPowerUp:
		return "powerup"
	case KindEnvelope:
		return "envelope"
	default:
		return "unknown"
	}
}

// Collectible reports whether the kind is picked up rather than avoided.
func (k Kind) Collectible() bool {
	return k == KindCoin || k == KindPowerUp || k == KindEnvelope
}

// Owner says who fired a projectile.
type Owner int

const (
	OwnerNone Owner = iota
	OwnerPlayer
	OwnerEnemy
)

// Entity is a moving box with a type tag and an optional payload.
// Velocities are in pixels per reference frame.
type Entity struct {
	Kind Kind
	X, Y float64
	W, H float64
	VX   float64
	VY   float64
	AY   float64 // vertical acceleration, pixels per frame²

	Value   int   // coins granted, damage dealt
	Payload int   // mode-specific effect kind
	Owner   Owner // for projectiles

	// Collected marks an entity as scored or picked up so it is never counted twice.
	Collected bool
	Dead      bool

	Lifetime time.Duration // zero means unlimited
	Age      time.Duration

	// Bobbing collectibles oscillate around BaseY.
	BaseY float64
	Bob   float64
	Phase float64

	// Attracted entities are steered by a magnet instead of scrolling.
	Attracted bool
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.NewBox(e.X, e.Y, e.W, e.H)
}

// Center returns the centre of the entity.
func (e *Entity) Center() (float64, float64) {
	return e.X + e.W/2, e.Y + e.H/2
}

// Alive reports whether the entity is still in play.
func (e *Entity) Alive() bool {
	return !e.Dead && !e.Collected
}

// Step advances the entity by dt.
func (e *Entity) Step(dt time.Duration) {
	if !e.Alive() {
		return
	}
	s := core.FrameScale(dt)
	e.Age += dt

	if !e.Attracted {
		e.X += e.VX * s
		e.VY += e.AY * s
		if e.Bob > 0 {
			e.BaseY += e.VY * s
			e.Y = e.BaseY + math.Sin(float64(e.Age.Milliseconds())/200+e.Phase)*e.Bob
		} else {
			e.Y += e.VY * s
		}
	}

	if e.Lifetime > 0 && e.Age >= e.Lifetime {
		e.Dead = true
	}
}

// Collection owns the entities of one class for a single mode.
type Collection struct {
	items []*Entity
}

// Add appends an entity.
func (c *Collection) Add(e *Entity) {
	c.items = append(c.items, e)
}

// Items returns the live backing slice. Callers must not retain it across Cull.
func (c *Collection) Items() []*Entity {
	return c.items
}

// Len returns the number of entities held.
func (c *Collection) Len() int {
	return len(c.items)
}

// Count returns how many held entities have the given kind.
func (c *Collection) Count(k Kind) int {
	n := 0
	for _, e := range c.items {
		if e.Kind == k && e.Alive() {
			n++
		}
	}
	return n
}

// Advance steps every entity.
func (c *Collection) Advance(dt time.Duration) {
	for _, e := range c.items {
		e.Step(dt)
	}
}

// Cull removes collected or dead entities and any entity entirely outside
// bounds. It returns the number removed.
func (c *Collection) Cull(bounds core.Box) int {
	kept := c.items[:0]
	removed := 0
	for _, e := range c.items {
		if !e.Alive() || !e.Box().Intersects(bounds) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = nil
	}
	c.items = kept
	return removed
}

// Clear drops every entity.
func (c *Collection) Clear() {
	c.items = nil
}
