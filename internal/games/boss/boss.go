package boss

import (
	"math"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Boss tuning.
const (
	MaxHP   = 100
	BodyW   = 100.0
	BodyH   = 100.0
	enterV  = 3.0
	easing  = 0.05
	hoverY  = 300.0
	hoverA  = 50.0
	hoverMs = 500.0
)

// Boss state durations.
const (
	IdleDuration       = 2000 * time.Millisecond
	AttackDuration     = 1500 * time.Millisecond
	VulnerableDuration = 1500 * time.Millisecond
)

// State is the boss behaviour state.
type State int

const (
	StateEntering State = iota
	StateIdle
	StateAttacking
	StateVulnerable
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateIdle:
		return "idle"
	case StateAttacking:
		return "attacking"
	case StateVulnerable:
		return "vulnerable"
	default:
		return "unknown"
	}
}

// volleyPatterns names the attack pattern of each phase.
var volleyPatterns = [...]string{
	1: "boss_phase1",
	2: "boss_phase2",
	3: "boss_phase3",
}

// VolleyPattern returns the pattern name for a phase.
func VolleyPattern(phase int) string {
	return volleyPatterns[core.Clamp(phase, 1, 3)]
}

// weak point offsets and sizes relative to the body, per phase.
var weakPoints = [...]core.Box{
	1: {X: 74, Y: 24, W: 16, H: 16},
	2: {X: 38, Y: 38, W: 24, H: 24},
	3: {X: 0, Y: 42, W: 16, H: 16},
}

// Boss is the enemy body and its state machine.
type Boss struct {
	X, Y       float64
	HP         int
	State      State
	stateStart time.Duration
	phase      int
	baseX      float64
}

// NewBoss places a boss just off the right edge of a field of the given width.
func NewBoss(fieldW float64) *Boss {
	return &Boss{
		X:     fieldW + 50 - BodyW,
		Y:     hoverY - BodyH/2,
		HP:    MaxHP,
		State: StateEntering,
		phase: 1,
		baseX: fieldW - 120,
	}
}

// Box returns the body box.
func (b *Boss) Box() core.Box {
	return core.NewBox(b.X, b.Y, BodyW, BodyH)
}

// WeakPoint returns the weak point box for the current phase.
func (b *Boss) WeakPoint() core.Box {
	wp := weakPoints[b.phase]
	return core.NewBox(b.X+wp.X, b.Y+wp.Y, wp.W, wp.H)
}

// Phase returns the current phase, 1 to 3. It never decreases.
func (b *Boss) Phase() int {
	return b.phase
}

// updatePhase raises the phase as HP falls below thirds.
func (b *Boss) updatePhase() {
	next := 1
	switch {
	case b.HP <= MaxHP/3:
		next = 3
	case b.HP <= MaxHP*2/3:
		next = 2
	}
	if next > b.phase {
		b.phase = next
	}
}

// Damage applies n damage and updates the phase.
func (b *Boss) Damage(n int) {
	b.HP -= n
	if b.HP < 0 {
		b.HP = 0
	}
	b.updatePhase()
}

// Dead reports whether the boss is defeated.
func (b *Boss) Dead() bool {
	return b.HP <= 0
}

func (b *Boss) enter(now time.Duration) {
	b.State = StateIdle
	b.stateStart = now
}

// step moves the boss and advances its state machine. It reports whether
// an attack began on this step.
func (b *Boss) step(now time.Duration, scale float64) bool {
	if b.State == StateEntering {
		if b.X+BodyW > b.baseX+60 {
			b.X -= enterV * scale
			return false
		}
		b.enter(now)
		return false
	}

	target := hoverY + math.Sin(float64(now.Milliseconds())/hoverMs)*hoverA
	cy := b.Y + BodyH/2
	b.Y += (target - cy) * math.Min(1, easing*scale)

	elapsed := now - b.stateStart
	switch b.State {
	case StateIdle:
		if elapsed >= IdleDuration {
			b.State = StateAttacking
			b.stateStart = now
			return true
		}
	case StateAttacking:
		if elapsed >= AttackDuration {
			b.State = StateVulnerable
			b.stateStart = now
		}
	case StateVulnerable:
		if elapsed >= VulnerableDuration {
			b.State = StateIdle
			b.stateStart = now
		}
	}
	return false
}
