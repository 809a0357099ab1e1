package collide

import (
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/entity"
)

// Shape is a box with an optional mask. A nil mask is solid.
type Shape struct {
	Box  core.Box
	Mask *Mask
}

// Hits reports whether two boxes overlap.
func Hits(a, b core.Box) bool {
	return a.Intersects(b)
}

// Precise reports whether two shapes overlap: boxes first, then masks.
func Precise(a, b Shape) bool {
	if !a.Box.Intersects(b.Box) {
		return false
	}
	if a.Mask == nil && b.Mask == nil {
		return true
	}
	ar, br := a.Box.Pixel(), b.Box.Pixel()
	am, bm := a.Mask, b.Mask
	if am == nil {
		am = SolidMask(ar.W, ar.H)
	}
	if bm == nil {
		bm = SolidMask(br.W, br.H)
	}
	return am.Overlap(bm, br.X-ar.X, br.Y-ar.Y)
}

// Absorber decides whether a lethal hit is soaked up.
// Each true result consumes one unit of protection.
type Absorber interface {
	Absorb() bool
}

// Obstacle is one lethal object made of one or more parts.
// Defused obstacles are ignored.
type Obstacle struct {
	Parts   []Shape
	Defused bool
}

// Frame is the input to one resolution step.
type Frame struct {
	Actor        Shape
	Obstacles    []Obstacle
	Collectibles []core.Box
	Guard        Absorber // may be nil
}

// Outcome lists what happened in a step. Indices refer to the Frame slices.
type Outcome struct {
	Collected []int
	Defused   []int
	Lethal    bool
	HitBy     int // index of the killing obstacle, -1 when alive
}

// Resolver caches masks between frames.
type Resolver struct {
	masks map[maskKey]*Mask
}

type maskKey struct {
	w, h, inset int
	ellipse     bool
}

// NewResolver returns a resolver with an empty mask cache.
func NewResolver() *Resolver {
	return &Resolver{masks: make(map[maskKey]*Mask)}
}

func (r *Resolver) cached(k maskKey, build func() *Mask) *Mask {
	if r.masks == nil {
		r.masks = make(map[maskKey]*Mask)
	}
	if m, ok := r.masks[k]; ok {
		return m
	}
	m := build()
	r.masks[k] = m
	return m
}

// Ellipse returns a shape for b with a cached elliptical mask.
func (r *Resolver) Ellipse(b core.Box) Shape {
	p := b.Pixel()
	m := r.cached(maskKey{w: p.W, h: p.H, ellipse: true}, func() *Mask { return EllipseMask(p.W, p.H) })
	return Shape{Box: b, Mask: m}
}

// Pipe returns a shape for b with a cached rounded-corner mask.
func (r *Resolver) Pipe(b core.Box, inset int) Shape {
	p := b.Pixel()
	m := r.cached(maskKey{w: p.W, h: p.H, inset: inset}, func() *Mask { return PipeMask(p.W, p.H, inset) })
	return Shape{Box: b, Mask: m}
}

// Step resolves one frame. Every collectible whose box overlaps the actor's
// box is collected. Then obstacles are checked in order with masks: a hit
// the guard absorbs defuses that obstacle and resolution continues; the
// first unabsorbed hit is lethal and ends the step.
func (r *Resolver) Step(f Frame) Outcome {
	out := Outcome{HitBy: -1}

	for i, c := range f.Collectibles {
		if Hits(f.Actor.Box, c) {
			out.Collected = append(out.Collected, i)
		}
	}

	for i, ob := range f.Obstacles {
		if ob.Defused || !r.touches(f.Actor, ob) {
			continue
		}
		if f.Guard != nil && f.Guard.Absorb() {
			out.Defused = append(out.Defused, i)
			continue
		}
		out.Lethal = true
		out.HitBy = i
		break
	}
	return out
}

func (r *Resolver) touches(actor Shape, ob Obstacle) bool {
	for _, p := range ob.Parts {
		if Precise(actor, p) {
			return true
		}
	}
	return false
}

// Attract steers collectibles within sqrt(radiusSq) of (tx, ty) toward it at
// speed pixels per reference frame. Entities out of range are released.
func Attract(items []*entity.Entity, tx, ty, radiusSq, speed, scale float64) {
	for _, e := range items {
		if !e.Alive() || !e.Kind.Collectible() {
			continue
		}
		cx, cy := e.Center()
		dx, dy := tx-cx, ty-cy
		d2 := dx*dx + dy*dy
		if d2 >= radiusSq {
			e.Attracted = false
			continue
		}
		e.Attracted = true
		step := speed * scale
		dist := math.Sqrt(d2)
		if dist <= step {
			e.X += dx
			e.Y += dy
		} else {
			e.X += dx / dist * step
			e.Y += dy / dist * step
		}
		e.BaseY = e.Y
	}
}
