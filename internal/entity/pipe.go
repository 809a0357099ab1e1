package entity

import (
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// PipeWidth is the width of a pipe column in world pixels.
const PipeWidth = 52

// Pipe is an upper and lower barrier sharing one gap.
// Scoring and collision treat the pair as a single obstacle.
type Pipe struct {
	X      float64
	GapY   float64 // centre of the gap
	Gap    float64
	Width  float64
	Top    float64 // top of the play field
	Ground float64 // ground line

	Scored  bool // passed by the actor
	Defused bool // absorbed by a protective effect, harmless from then on
}

// NewPipe creates a pipe pair at x with the gap centred on gapY.
func NewPipe(x, gapY, gap, top, ground float64) *Pipe {
	return &Pipe{
		X:      x,
		GapY:   gapY,
		Gap:    gap,
		Width:  PipeWidth,
		Top:    top,
		Ground: ground,
	}
}

// Upper returns the upper barrier box.
func (p *Pipe) Upper() core.Box {
	bottom := p.GapY - p.Gap/2
	return core.NewBox(p.X, p.Top, p.Width, bottom-p.Top)
}

// Lower returns the lower barrier box.
func (p *Pipe) Lower() core.Box {
	top := p.GapY + p.Gap/2
	return core.NewBox(p.X, top, p.Width, p.Ground-top)
}

// Right returns the x-coordinate of the pair's right edge.
func (p *Pipe) Right() float64 {
	return p.X + p.Width
}

// Advance scrolls the pair left at speed pixels per reference frame.
func (p *Pipe) Advance(dt time.Duration, speed float64) {
	p.X -= speed * core.FrameScale(dt)
}

// Passed reports whether the pair is fully behind x and not yet scored.
func (p *Pipe) Passed(x float64) bool {
	return !p.Scored && p.Right() < x
}

// Gone reports whether the pair has scrolled off the left edge.
func (p *Pipe) Gone() bool {
	return p.Right() < 0
}
