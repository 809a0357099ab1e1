// Package arena holds the scaffolding every mode shares: the mode clock,
// queued input, pause handling, the one-shot terminal signal and drawing
// helpers that map the world onto the screen.
package arena

import (
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Run is the lifecycle of a single run.
type Run struct {
	Now    time.Duration // mode clock, the sum of every unpaused dt
	Paused bool

	pending  core.InputFrame
	over     bool
	signaled bool
}

// Reset starts a fresh run.
func (r *Run) Reset() {
	*r = Run{pending: core.NewInputFrame()}
}

// Queue merges input into the pending frame. Pause toggles immediately.
func (r *Run) Queue(in core.InputFrame) {
	if r.pending.Actions == nil {
		r.pending = core.NewInputFrame()
	}
	for a, on := range in.Actions {
		if !on {
			continue
		}
		if a == core.ActionPause {
			if !r.over {
				r.Paused = !r.Paused
			}
			continue
		}
		r.pending.Set(a)
	}
}

// Begin starts an update. It returns the queued input and false when the
// update must be skipped because the run is over or paused. Queued input
// is discarded in that case.
func (r *Run) Begin(dt time.Duration) (core.InputFrame, bool) {
	in := r.pending.Clone()
	r.pending.Clear()
	if r.over || r.Paused {
		return core.NewInputFrame(), false
	}
	if dt > 0 {
		r.Now += dt
	}
	return in, true
}

// End marks the run as over. Later calls have no effect.
func (r *Run) End() {
	r.over = true
	r.Paused = false
}

// Over reports whether the run has ended.
func (r *Run) Over() bool {
	return r.over
}

// Step builds the update result, raising SignalDone on the first update
// after End and never again.
func (r *Run) Step(score int) core.StepResult {
	res := core.StepResult{State: core.GameState{Score: score, GameOver: r.over}}
	if r.over && !r.signaled {
		r.signaled = true
		res.Signal = core.SignalDone
	}
	return res
}
