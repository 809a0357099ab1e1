// Package battle implements a best-of-three duel against an AI bird.
package battle

import (
	"fmt"
	"math/rand"
	"strings"
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
	"github.com/vovakirdan/flappy-arcade/internal/spawn"
)

// Fighter physics, shared by both birds.
const (
	Gravity = 0.25
	Impulse = -5.0

	FighterW = 45.0
	FighterH = 35.0
	PlayerX  = 60.0
	MaxHP    = 3
)

// Weapon tuning.
const (
	BulletW         = 12.0
	BulletH         = 6.0
	BulletSpeed     = 8.0
	SpecialPattern  = "battle_special"
	GaugeMax        = 100
	GaugePerHit     = 15
	WinsNeeded      = 2
	VictoryReward   = 100
	RoundWinReward  = 25
	shieldHold      = 10 * time.Second
	powerUpSize     = 30.0
	powerUpLifetime = 6 * time.Second
)

// Timing.
const (
	PlayerCooldown  = 400 * time.Millisecond
	RapidCooldown   = 150 * time.Millisecond
	RapidDuration   = 6 * time.Second
	ComboWindow     = 2 * time.Second
	RoundTransition = 2 * time.Second
	PowerUpInterval = 4 * time.Second
)

// Pickup is a battle power-up.
type Pickup int

const (
	PickupRapid Pickup = iota
	PickupShield
	PickupHeal
	PickupSpecial
)

var pickupGlyphs = [...]struct {
	glyph rune
	color core.Color
}{
	PickupRapid:   {'R', core.ColorBrightYellow},
	PickupShield:  {'S', core.ColorBrightCyan},
	PickupHeal:    {'+', core.ColorBrightGreen},
	PickupSpecial: {'*', core.ColorBrightMagenta},
}

// State is the match phase.
type State int

const (
	StateTransition State = iota
	StateActive
	StateMatchOver
)

// fighter is one bird with its health and weapon state.
type fighter struct {
	body     *physics.Actor
	hp       int
	fx       *effects.Registry
	lastShot time.Duration
	combo    int
	lastHit  time.Duration
	gauge    int
	wins     int
}

func (f *fighter) cooldown() time.Duration {
	if f.fx.Active(effects.RapidFire) {
		return RapidCooldown
	}
	return PlayerCooldown
}

// Game implements the battle mode.
type Game struct {
	run arena.Run
	env registry.Env
	rng *rand.Rand

	width   float64
	groundY float64

	player  *fighter
	enemy   *fighter
	ai      *Opponent
	bullets entity.Collection
	pickups entity.Collection
	special *pattern.Pattern

	pickupCadence spawn.Cadence

	state      State
	stateStart time.Duration
	round      int
	damage     int
	lastWinner string
}

// New creates a battle mode.
func New() *Game {
	return &Game{special: pattern.MustLoad(SpecialPattern)}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return "battle"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "PvP Battle"
}

// Start initializes a new match.
func (g *Game) Start(env registry.Env) {
	g.env = env
	g.rng = env.RNG()
	g.run.Reset()
	g.width = env.Tuning.World.Width
	g.groundY = env.Tuning.World.GroundY()

	g.player = &fighter{fx: effects.New()}
	g.enemy = &fighter{fx: effects.New()}
	g.round = 0
	g.damage = 0
	g.lastWinner = ""
	g.nextRound(0)
}

// nextRound advances the round counter and starts it.
func (g *Game) nextRound(now time.Duration) {
	g.round++
	g.startRound(now)
}

// startRound resets both fighters and enters the transition countdown.
func (g *Game) startRound(now time.Duration) {
	g.state = StateTransition
	g.stateStart = now

	g.player.body = physics.New(PlayerX+FighterW/2, g.groundY/2, FighterW, FighterH)
	g.enemy.body = physics.New(g.width-100+FighterW/2, g.groundY/2, FighterW, FighterH)
	for _, f := range []*fighter{g.player, g.enemy} {
		f.hp = MaxHP
		f.fx.Reset()
		f.combo = 0
		f.lastShot = now - time.Hour
	}
	g.bullets.Clear()
	g.pickups.Clear()
	g.ai = newOpponent(SkillFor(RoundTier(g.round)), g.rng, g.groundY, now)
}

// HandleInput queues actions for the next update.
func (g *Game) HandleInput(in core.InputFrame) {
	g.run.Queue(in)
}

// Terminal reports whether the match has ended.
func (g *Game) Terminal() bool {
	return g.run.Over()
}

// Result returns the outcome of the match.
func (g *Game) Result() core.Result {
	victory := g.player.wins >= WinsNeeded
	coins := g.player.wins * RoundWinReward
	if victory {
		coins += VictoryReward
	}
	return core.Result{
		Mode:    g.ID(),
		Tier:    g.env.Tier.String(),
		Score:   g.damage,
		Victory: victory,
		Coins:   coins,
	}
}

// Update advances the match by dt.
func (g *Game) Update(dt time.Duration) core.StepResult {
	in, ok := g.run.Begin(dt)
	if !ok {
		return g.run.Step(g.damage)
	}
	now := g.run.Now

	if g.state == StateTransition {
		if now-g.stateStart < RoundTransition {
			return g.run.Step(g.damage)
		}
		g.state = StateActive
		g.stateStart = now
		g.pickupCadence = spawn.NewCadence(PowerUpInterval, now)
		g.ai = newOpponent(SkillFor(RoundTier(g.round)), g.rng, g.groundY, now)
	}

	g.player.fx.Tick(now)
	g.enemy.fx.Tick(now)
	g.decayCombo(g.player, now)
	g.decayCombo(g.enemy, now)

	g.playerControls(in, now)
	g.enemyControls(now)

	for _, f := range []*fighter{g.player, g.enemy} {
		f.body.Advance(dt, Gravity)
		f.body.Confine(0, g.groundY)
	}

	if g.pickupCadence.Due(now) {
		g.spawnPickup()
	}
	g.bullets.Advance(dt)
	g.pickups.Advance(dt)
	g.collectPickups(now)
	g.resolveBullets(now)
	g.bullets.Cull(core.NewBox(0, 0, g.width, g.groundY))
	g.pickups.Cull(core.NewBox(0, 0, g.width, g.groundY))

	g.checkRoundEnd(now)
	return g.run.Step(g.damage)
}

func (g *Game) decayCombo(f *fighter, now time.Duration) {
	if f.combo > 0 && now-f.lastHit > ComboWindow {
		f.combo = 0
	}
}

func (g *Game) playerControls(in core.InputFrame, now time.Duration) {
	p := g.player
	if in.Has(core.ActionFlap) {
		p.body.Impulse(Impulse)
	}
	if in.Has(core.ActionSpecial) && p.gauge >= GaugeMax {
		p.gauge = 0
		g.fireSpecial(p, entity.OwnerPlayer, 1)
	}
	if in.Has(core.ActionFire) && now-p.lastShot >= p.cooldown() {
		p.lastShot = now
		g.fire(p, entity.OwnerPlayer, 1)
	}
}

func (g *Game) enemyControls(now time.Duration) {
	e := g.enemy
	g.ai.think(now, e.body.Box(), g.player.body.Box(), g.bullets.Items())
	if g.ai.wantsFlap(e.body.Box(), e.body.VelY) {
		e.body.Impulse(Impulse)
	}
	if e.gauge >= GaugeMax {
		e.gauge = 0
		g.fireSpecial(e, entity.OwnerEnemy, -1)
	}
	if g.ai.wantsShot(now, g.ai.Skill.Cooldown) {
		e.lastShot = now
		g.fire(e, entity.OwnerEnemy, -1)
	}
}

// fire launches one bullet. dir is +1 to the right, -1 to the left.
func (g *Game) fire(f *fighter, owner entity.Owner, dir float64) {
	b := f.body.Box()
	_, cy := b.Center()
	x := b.Right()
	if dir < 0 {
		x = b.X - BulletW
	}
	g.bullets.Add(&entity.Entity{
		Kind:  entity.KindBullet,
		Owner: owner,
		X:     x,
		Y:     cy - BulletH/2,
		W:     BulletW,
		H:     BulletH,
		VX:    BulletSpeed * dir,
		Value: 1,
	})
}

// fireSpecial launches the special burst toward the opponent.
func (g *Game) fireSpecial(f *fighter, owner entity.Owner, dir float64) {
	b := f.body.Box()
	_, cy := b.Center()
	x := b.Right()
	if dir < 0 {
		x = b.X - BulletW
	}
	shots, err := g.special.Fire(pattern.Origin{X: x, Y: cy, Dir: dir})
	if err != nil {
		log.Warn("battle: special failed", "pattern", SpecialPattern, "error", err)
		return
	}
	for _, s := range shots {
		g.bullets.Add(&entity.Entity{
			Kind:  entity.KindBullet,
			Owner: owner,
			X:     x + s.DX,
			Y:     cy + s.DY - BulletH/2,
			W:     BulletW,
			H:     BulletH,
			VX:    s.VX,
			VY:    s.VY,
			Value: 1,
		})
	}
}

func (g *Game) spawnPickup() {
	x := spawn.Between(g.rng, g.width/2-50, g.width/2+50)
	y := spawn.Between(g.rng, 100, g.groundY-100)
	g.pickups.Add(&entity.Entity{
		Kind:     entity.KindPowerUp,
		X:        x - powerUpSize/2,
		Y:        y - powerUpSize/2,
		W:        powerUpSize,
		H:        powerUpSize,
		Payload:  g.rng.Intn(len(pickupGlyphs)),
		Lifetime: powerUpLifetime,
	})
}

func (g *Game) collectPickups(now time.Duration) {
	for _, pu := range g.pickups.Items() {
		if !pu.Alive() {
			continue
		}
		for _, f := range []*fighter{g.player, g.enemy} {
			if collide.Hits(f.body.Box(), pu.Box()) {
				pu.Collected = true
				g.applyPickup(f, Pickup(pu.Payload), now)
				break
			}
		}
	}
}

func (g *Game) applyPickup(f *fighter, p Pickup, now time.Duration) {
	switch p {
	case PickupRapid:
		f.fx.Activate(effects.RapidFire, now, RapidDuration)
	case PickupShield:
		f.fx.Activate(effects.Shield, now, shieldHold)
	case PickupHeal:
		f.hp = min(f.hp+1, MaxHP)
	case PickupSpecial:
		f.gauge = GaugeMax
	}
}

// resolveBullets applies every bullet hit this frame.
func (g *Game) resolveBullets(now time.Duration) {
	for _, b := range g.bullets.Items() {
		if !b.Alive() {
			continue
		}
		shooter, target := g.player, g.enemy
		if b.Owner == entity.OwnerEnemy {
			shooter, target = g.enemy, g.player
		}
		if !collide.Hits(target.body.Box(), b.Box()) {
			continue
		}
		b.Dead = true
		if target.fx.Absorb() {
			continue
		}
		g.hit(shooter, target, now)
	}
}

// hit applies combo-scaled damage from shooter to target.
func (g *Game) hit(shooter, target *fighter, now time.Duration) {
	shooter.combo++
	shooter.lastHit = now
	dmg := 1 + shooter.combo/3
	shooter.gauge = min(shooter.gauge+GaugePerHit, GaugeMax)

	target.hp -= dmg
	target.combo = 0
	if shooter == g.player {
		g.damage += dmg
	}
}

// checkRoundEnd awards the round once a fighter is out. When both go down
// in the same frame the round is a draw and is replayed.
func (g *Game) checkRoundEnd(now time.Duration) {
	var winner *fighter
	switch {
	case g.enemy.hp <= 0 && g.player.hp <= 0:
		g.lastWinner = ""
		g.startRound(now)
		return
	case g.enemy.hp <= 0:
		winner = g.player
		g.lastWinner = "YOU"
	case g.player.hp <= 0:
		winner = g.enemy
		g.lastWinner = "CPU"
	default:
		return
	}
	winner.wins++
	if winner.wins >= WinsNeeded {
		g.state = StateMatchOver
		g.stateStart = now
		g.run.End()
		return
	}
	g.nextRound(now)
}

// State returns the current match phase.
func (g *Game) State() State {
	return g.state
}

// Round returns the 1-based round number.
func (g *Game) Round() int {
	return g.round
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	c := arena.NewCanvas(dst, g.width, g.env.Tuning.World.Height)

	for _, pu := range g.pickups.Items() {
		if pu.Alive() {
			gl := pickupGlyphs[pu.Payload]
			c.Glyph(pu.Box(), gl.glyph, gl.color)
		}
	}
	for _, b := range g.bullets.Items() {
		if !b.Alive() {
			continue
		}
		if b.Owner == entity.OwnerPlayer {
			c.Glyph(b.Box(), '»', core.ColorBrightCyan)
		} else {
			c.Glyph(b.Box(), '«', core.ColorBrightRed)
		}
	}

	tint := g.env.Cosmetic.Tint
	if tint == core.ColorDefault {
		tint = core.ColorYellow
	}
	g.drawFighter(c, g.player, tint, '▶')
	g.drawFighter(c, g.enemy, core.ColorRed, '◀')
	c.Ground(g.groundY, core.ColorGround)

	c.HUD("YOU %s  Round %d  %d-%d  CPU %s",
		hearts(g.player.hp), g.round, g.player.wins, g.enemy.wins, hearts(g.enemy.hp))
	special := "SPECIAL " + arena.Bar(g.player.gauge, GaugeMax, 8)
	if g.player.combo > 1 {
		special = fmt.Sprintf("x%d ", g.player.combo) + special
	}
	c.HUDRight(special, core.ColorBrightMagenta)

	switch {
	case g.state == StateTransition && g.round == 1:
		c.Banner(fmt.Sprintf("ROUND %d", g.round), "F fire  E special")
	case g.state == StateTransition && g.lastWinner == "":
		c.Banner("DRAW", fmt.Sprintf("Round %d replays", g.round))
	case g.state == StateTransition:
		c.Banner(fmt.Sprintf("%s WIN THE ROUND", g.lastWinner), fmt.Sprintf("Round %d vs %s AI", g.round, RoundTier(g.round)))
	case g.state == StateMatchOver:
		title := "DEFEAT"
		if g.player.wins >= WinsNeeded {
			title = "VICTORY"
		}
		c.Banner(title, fmt.Sprintf("Rounds %d-%d  Damage %d", g.player.wins, g.enemy.wins, g.damage))
	case g.run.Paused:
		c.Banner("PAUSED", "Press P to resume")
	}
}

func (g *Game) drawFighter(c arena.Canvas, f *fighter, col core.Color, beak rune) {
	if f.fx.Active(effects.Shield) {
		col = core.ColorBrightCyan
	}
	r := c.View.Rect(f.body.Box())
	c.Screen.DrawRectColor(r, '●', col)
	x := r.Right() - 1
	if beak == '◀' {
		x = r.X
	}
	c.Screen.SetColor(x, r.Y, beak, core.ColorOrange)
}

func hearts(n int) string {
	if n <= 0 {
		return "-"
	}
	return strings.Repeat("♥", n)
}

func init() {
	registry.Register("battle", func() registry.Mode { return New() })
}
