// Package memory implements a repeat-the-sequence flight through coloured gates.
package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/arena"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

// Color is one gate colour.
type Color int

const (
	Red Color = iota
	Blue
	Yellow
	Purple
	Orange
	colorCount
)

var colorNames = [colorCount]string{"red", "blue", "yellow", "purple", "orange"}

var colorInk = [colorCount]core.Color{
	Red:    core.ColorRed,
	Blue:   core.ColorBlue,
	Yellow: core.ColorYellow,
	Purple: core.ColorMagenta,
	Orange: core.ColorOrange,
}

// String returns the colour name.
func (c Color) String() string {
	if c < 0 || c >= colorCount {
		return "unknown"
	}
	return colorNames[c]
}

// Timing.
const (
	ShowTime      = 800 * time.Millisecond
	AnswerTimeout = 5000 * time.Millisecond
	FeedbackTime  = 500 * time.Millisecond
)

// Flight tuning.
const (
	Gravity    = 0.15
	Impulse    = -5.0
	Forward    = 2.0
	PlayerW    = 45.0
	PlayerH    = 35.0
	StartLeft  = 30.0
	GateW      = 40.0
	gateOffset = 0.7 // gate column position as a fraction of the width
	Reward     = 5   // coins per completed sequence
)

// State is the round phase.
type State int

const (
	StateShowing State = iota
	StatePlaying
	StateFeedback
	StateOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateShowing:
		return "showing"
	case StatePlaying:
		return "playing"
	case StateFeedback:
		return "feedback"
	case StateOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game implements the memory mode.
type Game struct {
	run arena.Run
	env registry.Env
	rng *rand.Rand

	width   float64
	height  float64
	groundY float64
	gateX   float64

	player *physics.Actor

	sequence   []Color
	answers    []Color
	state      State
	stateStart time.Duration
	lastAnswer time.Duration
	lastGate   Color
	reason     string
	score      int
}

// New creates a memory mode.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Memory Flight"
}

// Start initializes a new run with a one-colour sequence.
func (g *Game) Start(env registry.Env) {
	g.env = env
	g.rng = env.RNG()
	g.run.Reset()
	g.width = env.Tuning.World.Width
	g.height = env.Tuning.World.Height
	g.groundY = env.Tuning.World.GroundY()
	g.gateX = g.width*gateOffset - GateW/2

	g.player = physics.New(StartLeft+PlayerW/2, g.height/2, PlayerW, PlayerH)
	g.sequence = g.sequence[:0]
	g.score = 0
	g.reason = ""
	g.extend()
	g.startShowing(0)
}

// HandleInput queues actions for the next update.
func (g *Game) HandleInput(in core.InputFrame) {
	g.run.Queue(in)
}

// Terminal reports whether the run has ended.
func (g *Game) Terminal() bool {
	return g.run.Over()
}

// Result returns the outcome of the run.
func (g *Game) Result() core.Result {
	return core.Result{
		Mode:  g.ID(),
		Tier:  g.env.Tier.String(),
		Score: g.score,
		Coins: g.score * Reward,
	}
}

// State returns the current phase.
func (g *Game) State() State {
	return g.state
}

// Sequence returns a copy of the target sequence.
func (g *Game) Sequence() []Color {
	return append([]Color(nil), g.sequence...)
}

func (g *Game) extend() {
	g.sequence = append(g.sequence, Color(g.rng.Intn(int(colorCount))))
}

func (g *Game) startShowing(now time.Duration) {
	g.state = StateShowing
	g.stateStart = now
}

func (g *Game) startPlaying(now time.Duration) {
	g.state = StatePlaying
	g.stateStart = now
	g.answers = g.answers[:0]
	g.lastAnswer = now
	g.resetPlayer()
}

func (g *Game) resetPlayer() {
	g.player.SetCenter(StartLeft+PlayerW/2, g.height/2)
	g.player.VelY = 0
}

// Highlight returns the colour being revealed at now, if any.
func (g *Game) Highlight(now time.Duration) (Color, bool) {
	if g.state != StateShowing {
		return 0, false
	}
	i := int((now - g.stateStart) / ShowTime)
	if i < 0 || i >= len(g.sequence) {
		return 0, false
	}
	return g.sequence[i], true
}

// Update advances the run by dt.
func (g *Game) Update(dt time.Duration) core.StepResult {
	in, ok := g.run.Begin(dt)
	if !ok {
		return g.run.Step(g.score)
	}
	now := g.run.Now

	switch g.state {
	case StateShowing:
		if _, showing := g.Highlight(now); !showing {
			g.startPlaying(now)
		}
	case StatePlaying:
		g.fly(in, dt, now)
	case StateFeedback:
		if now-g.stateStart <= FeedbackTime {
			break
		}
		if len(g.answers) >= len(g.sequence) {
			g.score++
			g.extend()
			g.startShowing(now)
		} else {
			g.state = StatePlaying
			g.lastAnswer = now
		}
	}
	return g.run.Step(g.score)
}

func (g *Game) fly(in core.InputFrame, dt, now time.Duration) {
	if in.Has(core.ActionFlap) {
		g.player.Impulse(Impulse)
	}
	g.player.Advance(dt, Gravity)
	g.player.Confine(0, g.groundY)
	g.player.X += Forward * core.FrameScale(dt)

	if g.player.Box().Intersects(g.gate()) {
		g.answer(g.band(), now)
		return
	}
	if now-g.lastAnswer > AnswerTimeout {
		g.gameOver("Too slow")
	}
}

// gate returns the box of the gate column.
func (g *Game) gate() core.Box {
	return core.NewBox(g.gateX, 0, GateW, g.groundY)
}

// Band returns the box of one colour band of the gate column.
func (g *Game) Band(c Color) core.Box {
	h := g.groundY / float64(colorCount)
	return core.NewBox(g.gateX, float64(c)*h, GateW, h)
}

// band returns the colour band the player's centre is in.
func (g *Game) band() Color {
	_, cy := g.player.Center()
	i := int(cy / (g.groundY / float64(colorCount)))
	return Color(core.Clamp(i, 0, int(colorCount)-1))
}

// answer records a gate pass. A wrong colour ends the run.
func (g *Game) answer(c Color, now time.Duration) {
	g.lastGate = c
	g.lastAnswer = now
	g.resetPlayer()

	want := g.sequence[len(g.answers)]
	if c != want {
		g.gameOver(fmt.Sprintf("Wrong gate: %s, expected %s", c, want))
		return
	}
	g.answers = append(g.answers, c)
	g.state = StateFeedback
	g.stateStart = now
}

func (g *Game) gameOver(reason string) {
	g.state = StateOver
	g.reason = reason
	g.player.Kill()
	g.run.End()
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	c := arena.NewCanvas(dst, g.width, g.height)
	now := g.run.Now
	lit, showing := g.Highlight(now)

	for col := Color(0); col < colorCount; col++ {
		glyph := '░'
		switch {
		case showing && col == lit:
			glyph = '█'
		case g.state == StateFeedback && col == g.lastGate:
			glyph = '▓'
		}
		c.Fill(g.Band(col), glyph, colorInk[col])
	}
	if g.state == StatePlaying || g.state == StateFeedback {
		tint := g.env.Cosmetic.Tint
		if tint == core.ColorDefault {
			tint = core.ColorYellow
		}
		c.Fill(g.player.Box(), '●', tint)
	}
	c.Ground(g.groundY, core.ColorGround)

	c.HUD("Level %d  Sequence %d", g.score+1, len(g.sequence))
	switch g.state {
	case StateShowing:
		c.HUDRight("WATCH", core.ColorBrightYellow)
	case StatePlaying, StateFeedback:
		c.HUDRight(fmt.Sprintf("YOUR TURN %d/%d  %ds", len(g.answers), len(g.sequence),
			arena.Seconds(AnswerTimeout-(now-g.lastAnswer))), core.ColorBrightGreen)
	}

	switch {
	case g.run.Over():
		c.Banner("GAME OVER", g.reason, fmt.Sprintf("Remembered %d sequences", g.score))
	case g.run.Paused:
		c.Banner("PAUSED", "Press P to resume")
	}
}

func init() {
	registry.Register("memory", func() registry.Mode { return New() })
}
