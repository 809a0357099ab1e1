// Package classic implements the flight modes: classic pipes, a timed
// variant and the pipe-free zen mode.
package classic

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/collide"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/effects"
	"github.com/vovakirdan/flappy-arcade/internal/entity"
	"github.com/vovakirdan/flappy-arcade/internal/games/arena"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/scoring"
	"github.com/vovakirdan/flappy-arcade/internal/spawn"
)

// Variant selects the rule set.
type Variant int

const (
	Classic Variant = iota
	TimeAttack
	Zen
)

// Bird geometry in world pixels.
const (
	BirdX = 100.0
	BirdW = 45.0
	BirdH = 35.0
)

// Collectible sizes and bob amplitudes.
const (
	coinSize     = 30.0
	coinBob      = 5.0
	powerUpSize  = 35.0
	powerUpBob   = 8.0
	envelopeSize = 28.0
	pipeCapInset = 4
	zenMargin    = 100.0
	gapTopMargin = 80.0 // gaps never open into the top band
	warpCooldown = 5 * time.Second
)

// phase of a flight run.
type phase int

const (
	phaseGetReady phase = iota
	phasePlaying
	phaseOver
)

// Game implements the flight modes.
type Game struct {
	variant Variant
	run     arena.Run
	env     registry.Env
	rng     *rand.Rand

	world   config.WorldConfig
	groundY float64
	cfg     config.ClassicConfig
	diff    config.Difficulty

	bird     *physics.Actor
	pipes    []*entity.Pipe
	items    entity.Collection
	fx       *effects.Registry
	combo    *scoring.Combo
	resolver *collide.Resolver

	pipeCadence spawn.Cadence
	coinCadence spawn.Cadence
	lane        spawn.Lane

	phase     phase
	playStart time.Duration
	score     int
	coins     int
	victory   bool
	spare     bool          // extra life not yet spent
	nextWarp  time.Duration // earliest teleport
}

// New creates a flight mode of the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	switch g.variant {
	case TimeAttack:
		return "time_attack"
	case Zen:
		return "zen"
	default:
		return "classic"
	}
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	switch g.variant {
	case TimeAttack:
		return "Time Attack"
	case Zen:
		return "Zen"
	default:
		return "Classic"
	}
}

// Start initializes a new run.
func (g *Game) Start(env registry.Env) {
	g.env = env
	g.rng = env.RNG()
	g.run.Reset()

	g.world = env.Tuning.World
	g.groundY = g.world.GroundY()
	g.cfg = env.Tuning.Classic
	g.diff = env.Difficulty

	g.bird = physics.New(BirdX+BirdW/2, g.world.Height/2, BirdW, BirdH)
	g.pipes = nil
	g.items.Clear()
	g.fx = effects.New()
	g.combo = scoring.NewCombo(env.Tuning.Combo)
	g.resolver = collide.NewResolver()
	g.lane = spawn.Lane{Top: gapTopMargin, Ground: g.groundY, Margin: g.cfg.GapMargin}

	g.phase = phaseGetReady
	g.playStart = 0
	g.score = 0
	g.coins = 0
	g.victory = false
	g.spare = false
	g.nextWarp = 0
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
		Mode:    g.ID(),
		Tier:    g.env.Tier.String(),
		Score:   g.score,
		Victory: g.victory,
		Coins:   g.coins,
	}
}

// Update advances the run by dt.
func (g *Game) Update(dt time.Duration) core.StepResult {
	in, ok := g.run.Begin(dt)
	if !ok {
		return g.run.Step(g.score)
	}
	now := g.run.Now

	if g.phase == phaseGetReady {
		if now < config.Ms(g.cfg.GetReadyMs) {
			return g.run.Step(g.score)
		}
		g.begin(now)
	}

	if in.Has(core.ActionFlap) {
		g.bird.Impulse(g.diff.Impulse)
	}
	if in.Has(core.ActionSpecial) {
		g.warp(now)
	}
	g.bird.Advance(dt, g.diff.Gravity)
	edge := g.bird.Confine(0, g.groundY)

	g.fx.Tick(now)
	g.combo.Tick(now)

	g.spawn(now)
	g.scroll(dt)
	g.scorePasses(now)
	lethal := g.resolve(now)

	switch {
	case edge.Ground && g.spendSpare():
		g.bird.Impulse(g.diff.Impulse)
	case edge.Ground:
		g.die()
	case edge.Top && g.variant != Zen && !g.fx.Protected():
		g.die()
	case lethal:
		g.die()
	}

	if g.variant == TimeAttack && g.phase == phasePlaying && g.Remaining() <= 0 {
		g.victory = true
		g.finish()
	}

	return g.run.Step(g.score)
}

// begin leaves the get-ready phase and applies the cosmetic ability.
func (g *Game) begin(now time.Duration) {
	g.phase = phasePlaying
	g.playStart = now
	g.pipeCadence = spawn.NewCadence(g.diff.PipeInterval(), now)
	g.coinCadence = spawn.NewCadence(config.Ms(g.cfg.ZenCoinMs), now)

	ability := g.env.Cosmetic.Ability
	if kind, ok := abilityEffect(ability); ok {
		g.fx.Activate(kind, now, ability.StartDuration())
	}
	g.spare = ability == config.AbilityExtraLife
}

// warp moves the bird into the next gap ahead of it. Only the teleport
// ability can warp, once per cooldown.
func (g *Game) warp(now time.Duration) {
	if g.env.Cosmetic.Ability != config.AbilityTeleport || now < g.nextWarp {
		return
	}
	target := g.world.Height / 2
	for _, p := range g.pipes {
		if !p.Scored && p.Right() >= g.bird.X {
			target = p.GapY
			break
		}
	}
	cx, _ := g.bird.Center()
	g.bird.SetCenter(cx, target)
	g.bird.VelY = 0
	g.nextWarp = now + warpCooldown
}

func (g *Game) spendSpare() bool {
	if !g.spare {
		return false
	}
	g.spare = false
	return true
}

// guard absorbs hits with active effects first, then the extra life.
type guard struct{ g *Game }

func (gd guard) Absorb() bool {
	return gd.g.fx.Absorb() || gd.g.spendSpare()
}

func abilityEffect(a config.Ability) (effects.Kind, bool) {
	switch a {
	case config.AbilityShield:
		return effects.Shield, true
	case config.AbilityCoinMagnet:
		return effects.Magnet, true
	case config.AbilitySlowTime:
		return effects.SlowTime, true
	case config.AbilityScoreBoost:
		return effects.ScoreBoost, true
	case config.AbilityInvincible:
		return effects.Invincible, true
	default:
		return 0, false
	}
}

func powerUpEffect(k config.PowerUpKind) (effects.Kind, bool) {
	switch k {
	case config.PowerUpShield:
		return effects.Shield, true
	case config.PowerUpCoinMagnet:
		return effects.Magnet, true
	case config.PowerUpSlowTime:
		return effects.SlowTime, true
	case config.PowerUpScoreBoost:
		return effects.ScoreBoost, true
	default:
		return 0, false
	}
}

// spawn runs the cadences for pipes and zen coins.
func (g *Game) spawn(now time.Duration) {
	if g.variant == Zen {
		if g.coinCadence.Due(now) {
			y := spawn.Between(g.rng, zenMargin, g.groundY-zenMargin)
			g.items.Add(g.collectible(entity.KindCoin, g.world.Width+30, y, coinSize, coinBob))
		}
		return
	}

	factor := 1.0
	if g.fx.Active(effects.SlowTime) {
		factor = g.cfg.SlowTimeFactor
	}
	if g.pipeCadence.DueScaled(now, factor) {
		g.spawnPipe()
	}
}

// spawnPipe adds a pipe pair and rolls each side channel once.
func (g *Game) spawnPipe() {
	gapY := g.lane.GapCenter(g.rng, g.diff.Gap)
	p := entity.NewPipe(g.world.Width, gapY, g.diff.Gap, 0, g.groundY)
	g.pipes = append(g.pipes, p)

	pipeCenter := p.X + p.Width/2
	if spawn.Chance(g.rng, g.cfg.CoinChance) {
		g.items.Add(g.collectible(entity.KindCoin, pipeCenter, gapY, coinSize, coinBob))
	}
	if spawn.Chance(g.rng, g.cfg.PowerUpChance) {
		kinds := config.PowerUpKinds()
		pu := g.collectible(entity.KindPowerUp, p.Right()+60, gapY, powerUpSize, powerUpBob)
		pu.Payload = int(kinds[g.rng.Intn(len(kinds))])
		g.items.Add(pu)
	}
	if spawn.Chance(g.rng, g.cfg.EnvelopeChance) {
		red := g.collectible(entity.KindEnvelope, pipeCenter, gapY+g.diff.Gap/4, envelopeSize, 0)
		red.Value = g.cfg.EnvelopeCoinValue
		g.items.Add(red)
	}
}

// collectible builds a scrolling pickup centred on (cx, cy).
func (g *Game) collectible(kind entity.Kind, cx, cy, size, bob float64) *entity.Entity {
	return &entity.Entity{
		Kind:  kind,
		X:     cx - size/2,
		Y:     cy - size/2,
		W:     size,
		H:     size,
		VX:    -g.diff.ScrollSpeed,
		Value: 1,
		BaseY: cy - size/2,
		Bob:   bob,
		Phase: g.rng.Float64() * 2 * math.Pi,
	}
}

// scroll moves pipes and pickups and drops what has left the field.
func (g *Game) scroll(dt time.Duration) {
	for _, p := range g.pipes {
		p.Advance(dt, g.diff.ScrollSpeed)
	}
	kept := g.pipes[:0]
	for _, p := range g.pipes {
		if !p.Gone() {
			kept = append(kept, p)
		}
	}
	g.pipes = kept

	if g.fx.Active(effects.Magnet) {
		cx, cy := g.bird.Center()
		collide.Attract(g.items.Items(), cx, cy, g.cfg.MagnetRadius*g.cfg.MagnetRadius, g.cfg.MagnetSpeed, core.FrameScale(dt))
	} else {
		for _, it := range g.items.Items() {
			it.Attracted = false
		}
	}
	g.items.Advance(dt)
	g.items.Cull(core.NewBox(-100, -100, g.world.Width+200, g.world.Height+200))
}

// scorePasses awards points for every pipe pair fully behind the bird.
func (g *Game) scorePasses(now time.Duration) {
	for _, p := range g.pipes {
		if p.Passed(g.bird.X) {
			p.Scored = true
			g.score += g.combo.Register(now, g.fx.ScoreMultiplier())
		}
	}
}

// resolve runs collision for the frame and applies pickups. It reports a lethal hit.
func (g *Game) resolve(now time.Duration) bool {
	frame := collide.Frame{
		Actor: g.resolver.Ellipse(g.bird.Box()),
		Guard: guard{g},
	}
	for _, p := range g.pipes {
		frame.Obstacles = append(frame.Obstacles, collide.Obstacle{
			Parts: []collide.Shape{
				g.resolver.Pipe(p.Upper(), pipeCapInset),
				g.resolver.Pipe(p.Lower(), pipeCapInset),
			},
			Defused: p.Defused,
		})
	}
	live := make([]*entity.Entity, 0, g.items.Len())
	for _, it := range g.items.Items() {
		if it.Alive() {
			live = append(live, it)
			frame.Collectibles = append(frame.Collectibles, it.Box())
		}
	}

	out := g.resolver.Step(frame)
	for _, i := range out.Collected {
		g.collect(live[i], now)
	}
	for _, i := range out.Defused {
		g.pipes[i].Defused = true
	}
	return out.Lethal
}

// collect applies a pickup.
func (g *Game) collect(it *entity.Entity, now time.Duration) {
	it.Collected = true
	switch it.Kind {
	case entity.KindCoin:
		g.coins += it.Value * g.coinMultiplier()
	case entity.KindEnvelope:
		g.coins += it.Value
	case entity.KindPowerUp:
		pu := config.PowerUpFor(config.PowerUpKind(it.Payload))
		if kind, ok := powerUpEffect(pu.Kind); ok {
			g.fx.Activate(kind, now, pu.Duration)
		}
	}
}

// coinMultiplier is 2 under a score boost or the double-coins ability.
func (g *Game) coinMultiplier() int {
	return max(g.env.Cosmetic.Ability.CoinMultiplier(), g.fx.ScoreMultiplier())
}

func (g *Game) die() {
	g.bird.Kill()
	g.finish()
}

func (g *Game) finish() {
	if g.phase == phaseOver {
		return
	}
	g.phase = phaseOver
	g.run.End()
}

// Remaining returns the time left in a time attack run.
func (g *Game) Remaining() time.Duration {
	limit := config.Ms(g.cfg.TimeAttackMs)
	if g.phase == phaseGetReady {
		return limit
	}
	left := limit - (g.run.Now - g.playStart)
	if left < 0 {
		return 0
	}
	return left
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	c := arena.NewCanvas(dst, g.world.Width, g.world.Height)

	for _, p := range g.pipes {
		col := core.ColorPipe
		if p.Defused {
			col = core.ColorGray
		}
		c.Fill(p.Upper(), '█', col)
		c.Fill(p.Lower(), '█', col)
	}

	for _, it := range g.items.Items() {
		if !it.Alive() {
			continue
		}
		switch it.Kind {
		case entity.KindCoin:
			c.Glyph(it.Box(), 'o', core.ColorGold)
		case entity.KindEnvelope:
			c.Glyph(it.Box(), '✉', core.ColorBrightRed)
		case entity.KindPowerUp:
			pu := config.PowerUpFor(config.PowerUpKind(it.Payload))
			c.Glyph(it.Box(), pu.Glyph, pu.Color)
		}
	}

	c.Ground(g.groundY, core.ColorGround)
	g.drawBird(c)

	hud := fmt.Sprintf("Score: %d  Coins: %d", g.score, g.coins)
	if n := g.combo.Count(); n > 1 {
		hud += fmt.Sprintf("  Combo x%d", n)
	}
	if g.variant == TimeAttack {
		hud += fmt.Sprintf("  Time: %ds", arena.Seconds(g.Remaining()))
	}
	c.HUD("%s", hud)
	if active := g.effectLabels(); active != "" {
		c.HUDRight(active, core.ColorBrightCyan)
	}

	switch {
	case g.phase == phaseGetReady:
		hint := "SPACE to flap"
		if g.env.Cosmetic.Ability == config.AbilityTeleport {
			hint += "  E to warp"
		}
		c.Banner("GET READY", hint)
	case g.run.Paused:
		c.Banner("PAUSED", "Press P to resume")
	case g.phase == phaseOver:
		title := "GAME OVER"
		if g.victory {
			title = "TIME UP"
		}
		c.Banner(title, fmt.Sprintf("Score: %d  Coins: %d", g.score, g.coins),
			fmt.Sprintf("Medal: %s", scoring.MedalFor(g.score)))
	}
}

func (g *Game) drawBird(c arena.Canvas) {
	col := g.env.Cosmetic.Tint
	if col == core.ColorDefault {
		col = core.ColorYellow
	}
	if g.fx.Protected() || g.spare {
		col = core.ColorBrightCyan
	}
	r := c.View.Rect(g.bird.Box())
	c.Screen.DrawRectColor(r, '●', col)

	beak := '▶'
	switch {
	case g.bird.Rotation > 10:
		beak = '◥'
	case g.bird.Rotation < -30:
		beak = '◢'
	}
	c.Screen.SetColor(r.Right()-1, r.Y, beak, core.ColorOrange)
}

func (g *Game) effectLabels() string {
	var parts []string
	for _, k := range g.fx.Kinds() {
		parts = append(parts, fmt.Sprintf("%s %ds", k, arena.Seconds(g.fx.Remaining(k, g.run.Now))))
	}
	return strings.Join(parts, " ")
}

func init() {
	registry.Register("classic", func() registry.Mode { return New(Classic) })
	registry.Register("time_attack", func() registry.Mode { return New(TimeAttack) })
	registry.Register("zen", func() registry.Mode { return New(Zen) })
}
