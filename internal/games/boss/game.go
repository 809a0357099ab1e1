// Package boss implements a single fight against a three-phase boss.
package boss

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/collide"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/effects"
	"github.com/vovakirdan/flappy-arcade/internal/entity"
	"github.com/vovakirdan/flappy-arcade/internal/games/arena"
	"github.com/vovakirdan/flappy-arcade/internal/pattern"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

// Player tuning.
const (
	PlayerX      = 80.0
	PlayerW      = 45.0
	PlayerH      = 35.0
	MaxHits      = 5
	ShotCooldown = 300 * time.Millisecond
	HitGrace     = 1000 * time.Millisecond
	moveStep     = 15.0

	BulletW     = 12.0
	BulletH     = 6.0
	BulletSpeed = 8.0
	ShotW       = 10.0
	ShotH       = 10.0
)

// Damage dealt by one player bullet.
const (
	WeakPointDamage = 5
	BodyDamage      = 1
)

// Reward returns the coin reward for a victory after taking the given hits.
func Reward(hits int) int {
	switch {
	case hits == 0:
		return 200
	case hits <= 2:
		return 100
	case hits <= 4:
		return 50
	default:
		return 25
	}
}

// Game implements the boss mode.
type Game struct {
	run arena.Run
	env registry.Env

	width   float64
	groundY float64
	gravity float64
	impulse float64

	player   *physics.Actor
	fx       *effects.Registry
	lastShot time.Duration
	hits     int

	boss    *Boss
	bullets entity.Collection
	volleys map[string]*pattern.Pattern

	damage  int
	victory bool
}

// New creates a boss mode.
func New() *Game {
	g := &Game{volleys: make(map[string]*pattern.Pattern)}
	for phase := 1; phase <= 3; phase++ {
		name := VolleyPattern(phase)
		g.volleys[name] = pattern.MustLoad(name)
	}
	return g
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return "boss"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Boss Fight"
}

// Start initializes a new fight.
func (g *Game) Start(env registry.Env) {
	g.env = env
	g.run.Reset()
	g.width = env.Tuning.World.Width
	g.groundY = env.Tuning.World.GroundY()
	g.gravity = env.Difficulty.Gravity
	g.impulse = env.Difficulty.Impulse

	g.player = physics.New(PlayerX+PlayerW/2, g.groundY/2, PlayerW, PlayerH)
	g.fx = effects.New()
	g.lastShot = -time.Hour
	g.hits = 0

	g.boss = NewBoss(g.width)
	g.bullets.Clear()
	g.damage = 0
	g.victory = false
}

// HandleInput queues actions for the next update.
func (g *Game) HandleInput(in core.InputFrame) {
	g.run.Queue(in)
}

// Terminal reports whether the fight has ended.
func (g *Game) Terminal() bool {
	return g.run.Over()
}

// Result returns the outcome of the fight.
func (g *Game) Result() core.Result {
	coins := 0
	if g.victory {
		coins = Reward(g.hits)
	}
	return core.Result{
		Mode:    g.ID(),
		Tier:    g.env.Tier.String(),
		Score:   g.damage,
		Victory: g.victory,
		Coins:   coins,
	}
}

// Boss returns the boss being fought.
func (g *Game) Boss() *Boss {
	return g.boss
}

// Hits returns how many times the player has been hit.
func (g *Game) Hits() int {
	return g.hits
}

// Update advances the fight by dt.
func (g *Game) Update(dt time.Duration) core.StepResult {
	in, ok := g.run.Begin(dt)
	if !ok {
		return g.run.Step(g.damage)
	}
	now := g.run.Now
	g.fx.Tick(now)

	g.controls(in, now)
	g.player.Advance(dt, g.gravity)
	g.player.Confine(0, g.groundY)
	g.player.ConfineX(0, g.width/2)

	if g.boss.step(now, core.FrameScale(dt)) {
		g.volley()
	}

	g.bullets.Advance(dt)
	g.resolveShots()
	g.resolveHazards(now)
	g.bullets.Cull(core.NewBox(0, 0, g.width, g.groundY))

	switch {
	case g.boss.Dead():
		g.victory = true
		g.run.End()
	case g.hits >= MaxHits:
		g.player.Kill()
		g.run.End()
	}
	return g.run.Step(g.damage)
}

func (g *Game) controls(in core.InputFrame, now time.Duration) {
	if in.Has(core.ActionFlap) {
		g.player.Impulse(g.impulse)
	}
	if in.Has(core.ActionLeft) {
		g.player.X -= moveStep
	}
	if in.Has(core.ActionRight) {
		g.player.X += moveStep
	}
	if in.Has(core.ActionFire) && now-g.lastShot >= ShotCooldown {
		g.lastShot = now
		b := g.player.Box()
		_, cy := b.Center()
		g.bullets.Add(&entity.Entity{
			Kind:  entity.KindBullet,
			Owner: entity.OwnerPlayer,
			X:     b.Right(),
			Y:     cy - BulletH/2,
			W:     BulletW,
			H:     BulletH,
			VX:    BulletSpeed,
		})
	}
}

// volley launches the attack pattern of the current phase from the boss's
// left edge.
func (g *Game) volley() {
	name := VolleyPattern(g.boss.Phase())
	b := g.boss.Box()
	_, cy := b.Center()
	x := b.X - ShotW

	shots, err := g.volleys[name].Fire(pattern.Origin{X: x, Y: cy, Dir: -1})
	if err != nil {
		log.Warn("boss: volley failed", "pattern", name, "error", err)
		return
	}
	for _, s := range shots {
		g.bullets.Add(&entity.Entity{
			Kind:  entity.KindBullet,
			Owner: entity.OwnerEnemy,
			X:     x + s.DX,
			Y:     cy + s.DY - ShotH/2,
			W:     ShotW,
			H:     ShotH,
			VX:    s.VX,
			VY:    s.VY,
		})
	}
}

// resolveShots applies player bullets to the boss. The weak point is
// checked before the body.
func (g *Game) resolveShots() {
	if g.boss.State == StateEntering {
		return
	}
	for _, b := range g.bullets.Items() {
		if !b.Alive() || b.Owner != entity.OwnerPlayer {
			continue
		}
		dmg := 0
		switch {
		case collide.Hits(b.Box(), g.boss.WeakPoint()):
			dmg = WeakPointDamage
			if g.boss.State == StateVulnerable {
				dmg *= 2
			}
		case collide.Hits(b.Box(), g.boss.Box()):
			dmg = BodyDamage
		default:
			continue
		}
		b.Dead = true
		before := g.boss.HP
		g.boss.Damage(dmg)
		g.damage += before - g.boss.HP
	}
}

// resolveHazards applies boss bullets and body contact to the player.
func (g *Game) resolveHazards(now time.Duration) {
	hit := false
	for _, b := range g.bullets.Items() {
		if !b.Alive() || b.Owner != entity.OwnerEnemy {
			continue
		}
		if collide.Hits(g.player.Box(), b.Box()) {
			b.Dead = true
			hit = true
		}
	}
	if collide.Hits(g.player.Box(), g.boss.Box()) {
		hit = true
	}
	if !hit || g.fx.Active(effects.Invincible) {
		return
	}
	g.hits++
	g.fx.Activate(effects.Invincible, now, HitGrace)
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	c := arena.NewCanvas(dst, g.width, g.env.Tuning.World.Height)

	bodyCol := core.ColorMagenta
	switch g.boss.State {
	case StateAttacking:
		bodyCol = core.ColorRed
	case StateVulnerable:
		bodyCol = core.ColorGray
	}
	c.Fill(g.boss.Box(), '█', bodyCol)
	c.Fill(g.boss.WeakPoint(), '◉', core.ColorBrightYellow)

	for _, b := range g.bullets.Items() {
		if !b.Alive() {
			continue
		}
		if b.Owner == entity.OwnerPlayer {
			c.Glyph(b.Box(), '»', core.ColorBrightCyan)
		} else {
			c.Glyph(b.Box(), '●', core.ColorBrightRed)
		}
	}

	tint := g.env.Cosmetic.Tint
	if tint == core.ColorDefault {
		tint = core.ColorYellow
	}
	if g.fx.Active(effects.Invincible) {
		tint = core.ColorWhite
	}
	c.Fill(g.player.Box(), '●', tint)
	c.Ground(g.groundY, core.ColorGround)

	c.HUD("BOSS %s %d  Phase %d", arena.Bar(g.boss.HP, MaxHP, 10), g.boss.HP, g.boss.Phase())
	c.HUDRight(fmt.Sprintf("Hits %d/%d", g.hits, MaxHits), core.ColorBrightRed)

	switch {
	case g.run.Over() && g.victory:
		c.Banner("BOSS DEFEATED", fmt.Sprintf("Hits taken %d  Reward %d", g.hits, Reward(g.hits)))
	case g.run.Over():
		c.Banner("DEFEAT", fmt.Sprintf("Damage dealt %d", g.damage))
	case g.boss.State == StateEntering:
		c.Banner("WARNING", "Boss approaching")
	case g.run.Paused:
		c.Banner("PAUSED", "Press P to resume")
	}
}

func init() {
	registry.Register("boss", func() registry.Mode { return New() })
}
