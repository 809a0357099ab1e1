// Package physics implements the gravity and impulse driven actor shared by
// the player bird and AI opponents.
package physics

import (
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Rotation limits in degrees. Positive is nose up.
const (
	MinRotation = -90.0
	MaxRotation = 25.0
)

// RotationSmoothing is the fraction of the remaining angle closed per reference frame.
const RotationSmoothing = 0.2

// rotationPerVelocity maps vertical velocity to a target angle.
const rotationPerVelocity = 3.0

// Actor is a kinematic body with a vertical velocity and a cosmetic rotation.
// Horizontal motion is applied directly by the owning mode.
type Actor struct {
	X, Y     float64 // top-left corner in world pixels
	W, H     float64
	VelY     float64 // pixels per reference frame, negative is up
	Rotation float64 // degrees in [MinRotation, MaxRotation]
	Alive    bool
}

// New creates a live actor with its centre at (cx, cy).
func New(cx, cy, w, h float64) *Actor {
	return &Actor{
		X:     cx - w/2,
		Y:     cy - h/2,
		W:     w,
		H:     h,
		Alive: true,
	}
}

// Box returns the actor's bounding box.
func (a *Actor) Box() core.Box {
	return core.NewBox(a.X, a.Y, a.W, a.H)
}

// Center returns the centre of the actor.
func (a *Actor) Center() (float64, float64) {
	return a.X + a.W/2, a.Y + a.H/2
}

// SetCenter moves the actor so its centre is at (cx, cy).
func (a *Actor) SetCenter(cx, cy float64) {
	a.X = cx - a.W/2
	a.Y = cy - a.H/2
}

// Impulse replaces the vertical velocity. Dead actors ignore it.
func (a *Actor) Impulse(v float64) {
	if !a.Alive {
		return
	}
	a.VelY = v
}

// Advance integrates one step: gravity into velocity, velocity into position,
// then eases the rotation toward the velocity-derived target.
func (a *Actor) Advance(dt time.Duration, gravity float64) {
	s := core.FrameScale(dt)
	if s == 0 {
		return
	}
	a.VelY += gravity * s
	a.Y += a.VelY * s
	a.rotate(s)
}

// TargetRotation is the angle the actor eases toward at its current velocity.
func (a *Actor) TargetRotation() float64 {
	return core.ClampF(-a.VelY*rotationPerVelocity, MinRotation, MaxRotation)
}

func (a *Actor) rotate(s float64) {
	k := RotationSmoothing * s
	if k > 1 {
		k = 1
	}
	a.Rotation += (a.TargetRotation() - a.Rotation) * k
	a.Rotation = core.ClampF(a.Rotation, MinRotation, MaxRotation)
}

// Edge reports which play-field boundaries the actor touched.
type Edge struct {
	Top    bool
	Ground bool
}

// Any reports whether either boundary was touched.
func (e Edge) Any() bool {
	return e.Top || e.Ground
}

// Confine clamps the actor into [top, ground] and zeroes its velocity on
// contact. Whether a contact is lethal is decided by the owning mode.
func (a *Actor) Confine(top, ground float64) Edge {
	var e Edge
	if a.Y <= top {
		a.Y = top
		if a.VelY < 0 {
			a.VelY = 0
		}
		e.Top = true
	}
	if a.Y+a.H >= ground {
		a.Y = ground - a.H
		if a.VelY > 0 {
			a.VelY = 0
		}
		e.Ground = true
	}
	return e
}

// ConfineX clamps the actor horizontally into [left, right].
func (a *Actor) ConfineX(left, right float64) {
	if a.X < left {
		a.X = left
	}
	if a.X+a.W > right {
		a.X = right - a.W
	}
}

// Kill marks the actor dead and stops its motion.
func (a *Actor) Kill() {
	a.Alive = false
	a.VelY = 0
}
