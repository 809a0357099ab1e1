// Package dodge implements wave-based survival against falling hazards.
package dodge

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/collide"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/entity"
	"github.com/vovakirdan/flappy-arcade/internal/games/arena"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/spawn"
)

// Player tuning.
const (
	PlayerW      = 45.0
	PlayerH      = 35.0
	MoveSpeed    = 5.0
	DashDistance = 80.0
	DashCooldown = 3000 * time.Millisecond
	holdWindow   = 150 * time.Millisecond
	groundGap    = 20.0
)

// Hazard tuning.
const (
	RockSize      = 35.0
	MissileW      = 40.0
	MissileH      = 15.0
	MissileSpeed  = 3.0
	BombW         = 30.0
	BombH         = 40.0
	FragmentSize  = 8.0
	FragmentSpeed = 6.0
	FragmentDrag  = 0.2
	Fragments     = 12
	fragmentLife  = time.Second // 60 reference frames
	fuseHeight    = 10.0
	spawnMargin   = 30.0

	LaserWarning = 1000 * time.Millisecond
	LaserActive  = 500 * time.Millisecond
	LaserH       = 20.0
	laserGlowH   = 4.0
	laserEvery   = 5
	laserChance  = 0.01 // per reference frame on laser waves

	ScoreUnit = 100 * time.Millisecond
)

// DefaultWaves escalates every 30 seconds from a 1s spawn interval down to 300ms.
var DefaultWaves = spawn.Waves{
	Length:       30 * time.Second,
	BaseInterval: 1000 * time.Millisecond,
	Step:         100 * time.Millisecond,
	Floor:        300 * time.Millisecond,
}

// Hazards unlocks new hazard kinds as waves advance.
var Hazards = spawn.NewPool(
	spawn.Gate[entity.Kind]{MinWave: 1, Choices: spawn.Uniform(entity.KindRock)},
	spawn.Gate[entity.Kind]{MinWave: 3, Choices: spawn.Uniform(entity.KindRock, entity.KindRock, entity.KindMissile)},
	spawn.Gate[entity.Kind]{MinWave: 5, Choices: spawn.Uniform(entity.KindRock, entity.KindMissile, entity.KindBomb)},
	spawn.Gate[entity.Kind]{MinWave: 8, Choices: spawn.Uniform(entity.KindRock, entity.KindMissile, entity.KindMissile, entity.KindBomb)},
)

// FallSpeed returns the fall speed of hazards on wave.
func FallSpeed(wave int) float64 {
	return 3 + float64(wave)*0.5
}

// Game implements the dodge mode.
type Game struct {
	run arena.Run
	env registry.Env
	rng *rand.Rand

	width   float64
	groundY float64
	waves   spawn.Waves
	cadence spawn.Cadence

	player  *physics.Actor
	hazards entity.Collection

	moveDir   float64
	facing    float64
	holdUntil time.Duration
	lastDash  time.Duration

	wave  int
	score int
}

// New creates a dodge mode.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return "dodge"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Dodge Master"
}

// Start initializes a new run.
func (g *Game) Start(env registry.Env) {
	g.env = env
	g.rng = env.RNG()
	g.run.Reset()
	g.width = env.Tuning.World.Width
	g.groundY = env.Tuning.World.GroundY()
	g.waves = DefaultWaves
	g.cadence = spawn.NewCadence(g.waves.Interval(1), 0)

	g.player = physics.New(g.width/2, g.groundY-groundGap-PlayerH/2, PlayerW, PlayerH)
	g.hazards.Clear()

	g.moveDir = 0
	g.facing = 1
	g.holdUntil = 0
	g.lastDash = -time.Hour
	g.wave = 1
	g.score = 0
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
		Coins: g.score / 10,
	}
}

// Wave returns the current wave number.
func (g *Game) Wave() int {
	return g.wave
}

// DashReady reports whether a dash is available at now.
func (g *Game) DashReady(now time.Duration) bool {
	return now-g.lastDash >= DashCooldown
}

// Update advances the run by dt.
func (g *Game) Update(dt time.Duration) core.StepResult {
	in, ok := g.run.Begin(dt)
	if !ok {
		return g.run.Step(g.score)
	}
	now := g.run.Now
	scale := core.FrameScale(dt)

	g.score = int(now / ScoreUnit)
	g.wave = g.waves.Wave(now)
	g.cadence.Interval = g.waves.Interval(g.wave)

	g.controls(in, now, scale)

	if g.cadence.Due(now) {
		g.spawnHazard()
	}
	if g.wave%laserEvery == 0 && spawn.Chance(g.rng, 1-math.Pow(1-laserChance, scale)) {
		g.spawnLaser()
	}

	g.hazards.Advance(dt)
	g.updateLasers()
	g.detonate()

	if g.lethal() {
		g.player.Kill()
		g.run.End()
	}
	g.hazards.Cull(core.NewBox(-g.width, -g.groundY, 3*g.width, 3*g.groundY))
	return g.run.Step(g.score)
}

func (g *Game) controls(in core.InputFrame, now time.Duration, scale float64) {
	switch {
	case in.Has(core.ActionLeft):
		g.moveDir, g.facing = -1, -1
		g.holdUntil = now + holdWindow
	case in.Has(core.ActionRight):
		g.moveDir, g.facing = 1, 1
		g.holdUntil = now + holdWindow
	}
	if now >= g.holdUntil {
		g.moveDir = 0
	}
	g.player.X += g.moveDir * MoveSpeed * scale

	if in.Has(core.ActionDash) || in.Has(core.ActionFlap) {
		g.dash(now)
	}
	g.player.ConfineX(0, g.width)
	g.player.Confine(0, g.groundY)
}

// dash displaces the player in the facing direction. It reports whether the
// dash was taken.
func (g *Game) dash(now time.Duration) bool {
	if !g.DashReady(now) {
		return false
	}
	g.lastDash = now
	g.player.X += g.facing * DashDistance
	g.player.ConfineX(0, g.width)
	return true
}

// spawnHazard drops one hazard chosen from the current wave's pool.
func (g *Game) spawnHazard() {
	kind, ok := Hazards.Pick(g.rng, g.wave)
	if !ok {
		return
	}
	g.hazards.Add(g.newHazard(kind, spawn.Between(g.rng, spawnMargin, g.width-spawnMargin)))
}

// newHazard builds a hazard of kind centred on x, just above the field.
// Missiles instead enter from a side edge at a random height.
func (g *Game) newHazard(kind entity.Kind, x float64) *entity.Entity {
	speed := FallSpeed(g.wave)
	switch kind {
	case entity.KindMissile:
		m := &entity.Entity{Kind: kind, W: MissileW, H: MissileH, VX: MissileSpeed}
		if spawn.Chance(g.rng, 0.5) {
			m.VX = -MissileSpeed
			m.X = g.width
		}
		m.Y = spawn.Between(g.rng, 100, g.groundY-100) - MissileH/2
		return m
	case entity.KindBomb:
		return &entity.Entity{Kind: kind, X: x - BombW/2, Y: -BombH, W: BombW, H: BombH, VY: speed}
	default:
		return &entity.Entity{Kind: entity.KindRock, X: x - RockSize/2, Y: -RockSize, W: RockSize, H: RockSize, VY: speed}
	}
}

func (g *Game) spawnLaser() {
	y := spawn.Between(g.rng, 100, g.groundY-50)
	g.hazards.Add(&entity.Entity{
		Kind:     entity.KindLaser,
		X:        0,
		Y:        y,
		W:        g.width,
		H:        laserGlowH,
		Lifetime: LaserWarning + LaserActive,
	})
}

// updateLasers widens lasers into their damaging beam once the warning ends.
func (g *Game) updateLasers() {
	for _, e := range g.hazards.Items() {
		if e.Kind == entity.KindLaser && e.Alive() && e.Age >= LaserWarning {
			e.H = LaserH
		}
	}
}

func laserActive(e *entity.Entity) bool {
	return e.Age >= LaserWarning
}

// detonate bursts bombs that reach the fuse line into radial fragments.
func (g *Game) detonate() {
	for _, b := range g.hazards.Items() {
		if b.Kind != entity.KindBomb || !b.Alive() || b.Box().Bottom() < g.groundY-fuseHeight {
			continue
		}
		b.Dead = true
		cx, cy := b.Center()
		for i := 0; i < Fragments; i++ {
			rad := float64(i*360/Fragments) * math.Pi / 180
			g.hazards.Add(&entity.Entity{
				Kind:     entity.KindFragment,
				X:        cx - FragmentSize/2,
				Y:        cy - FragmentSize/2,
				W:        FragmentSize,
				H:        FragmentSize,
				VX:       math.Cos(rad) * FragmentSpeed,
				VY:       math.Sin(rad) * FragmentSpeed,
				AY:       FragmentDrag,
				Lifetime: fragmentLife,
			})
		}
	}
}

// lethal reports whether any live hazard touches the player.
func (g *Game) lethal() bool {
	for _, h := range g.hazards.Items() {
		if !h.Alive() {
			continue
		}
		if h.Kind == entity.KindLaser && !laserActive(h) {
			continue
		}
		if collide.Hits(g.player.Box(), h.Box()) {
			return true
		}
	}
	return false
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	c := arena.NewCanvas(dst, g.width, g.env.Tuning.World.Height)

	for _, h := range g.hazards.Items() {
		if !h.Alive() {
			continue
		}
		switch h.Kind {
		case entity.KindRock:
			c.Fill(h.Box(), '▓', core.ColorGray)
		case entity.KindMissile:
			glyph := '►'
			if h.VX < 0 {
				glyph = '◄'
			}
			c.Fill(h.Box(), glyph, core.ColorRed)
		case entity.KindBomb:
			c.Fill(h.Box(), '●', core.ColorWhite)
		case entity.KindFragment:
			c.Glyph(h.Box(), '*', core.ColorOrange)
		case entity.KindLaser:
			if laserActive(h) {
				c.Fill(h.Box(), '═', core.ColorBrightRed)
			} else {
				c.Fill(h.Box(), '┄', core.ColorRed)
			}
		}
	}

	tint := g.env.Cosmetic.Tint
	if tint == core.ColorDefault {
		tint = core.ColorYellow
	}
	c.Fill(g.player.Box(), '●', tint)
	c.Ground(g.groundY, core.ColorGround)

	c.HUD("Score %d  Wave %d", g.score, g.wave)
	now := g.run.Now
	if g.DashReady(now) {
		c.HUDRight("DASH READY", core.ColorBrightGreen)
	} else {
		c.HUDRight(fmt.Sprintf("Dash %ds", arena.Seconds(DashCooldown-(now-g.lastDash))), core.ColorGray)
	}

	switch {
	case g.run.Over():
		c.Banner("GAME OVER", fmt.Sprintf("Score %d  Wave %d", g.score, g.wave))
	case g.run.Paused:
		c.Banner("PAUSED", "Press P to resume")
	}
}

func init() {
	registry.Register("dodge", func() registry.Mode { return New() })
}
