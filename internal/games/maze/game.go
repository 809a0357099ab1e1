// Package maze implements a timed treasure hunt on a tile map.
package maze

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/games/arena"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/spawn"
)

// Map and rule tuning.
const (
	TileSize   = 40.0
	mapTop     = 60.0 // world rows above the map
	MaxHP      = 3
	TimeLimit  = 90 * time.Second
	PatrolStep = 800 * time.Millisecond
	HitGrace   = 1000 * time.Millisecond

	VictoryReward  = 50
	TreasureReward = 10
)

// Game implements the maze mode.
type Game struct {
	run arena.Run
	env registry.Env

	width, height float64

	grid    *Grid
	pos     Point
	hp      int
	hasKey  bool
	found   int
	total   int
	patrols []Patrol
	cadence spawn.Cadence
	lastHit time.Duration

	victory bool
	reason  string
}

// New creates a maze mode.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return "maze"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Treasure Hunt"
}

// Start generates the level and places the player.
func (g *Game) Start(env registry.Env) {
	g.env = env
	g.width = env.Tuning.World.Width
	g.height = env.Tuning.World.Height

	w := int(g.width / TileSize)
	h := int((g.height - mapTop) / TileSize)
	g.load(Generate(w, h))
}

func (g *Game) load(l Layout) {
	g.run.Reset()
	g.grid = l.Grid
	g.pos = l.Start
	g.hp = MaxHP
	g.hasKey = false
	g.found = 0
	g.total = l.Treasures
	g.patrols = append([]Patrol(nil), l.Patrols...)
	g.cadence = spawn.NewCadence(PatrolStep, 0)
	g.lastHit = -time.Hour
	g.victory = false
	g.reason = ""
}

// HandleInput queues actions for the next update.
func (g *Game) HandleInput(in core.InputFrame) {
	g.run.Queue(in)
}

// Terminal reports whether the hunt has ended.
func (g *Game) Terminal() bool {
	return g.run.Over()
}

// Result returns the outcome of the hunt.
func (g *Game) Result() core.Result {
	coins := 0
	if g.victory {
		coins = VictoryReward + TreasureReward*g.found
	}
	return core.Result{
		Mode:    g.ID(),
		Tier:    g.env.Tier.String(),
		Score:   g.score(),
		Victory: g.victory,
		Coins:   coins,
	}
}

// score is 100 per treasure plus the whole seconds left on a win.
func (g *Game) score() int {
	s := g.found * 100
	if g.victory {
		s += arena.Seconds(g.remaining())
	}
	return s
}

func (g *Game) remaining() time.Duration {
	return max(TimeLimit-g.run.Now, 0)
}

// Grid returns the level map.
func (g *Game) Grid() *Grid {
	return g.grid
}

// Player returns the player's tile and hit points.
func (g *Game) Player() (Point, int) {
	return g.pos, g.hp
}

// Update advances the hunt by dt.
func (g *Game) Update(dt time.Duration) core.StepResult {
	in, ok := g.run.Begin(dt)
	if !ok {
		return g.run.Step(g.score())
	}
	now := g.run.Now

	if now >= TimeLimit {
		g.end(false, "Out of time")
		return g.run.Step(g.score())
	}

	switch {
	case in.Has(core.ActionUp) || in.Has(core.ActionFlap):
		g.move(0, -1, now)
	case in.Has(core.ActionDown):
		g.move(0, 1, now)
	case in.Has(core.ActionLeft):
		g.move(-1, 0, now)
	case in.Has(core.ActionRight):
		g.move(1, 0, now)
	}

	if !g.run.Over() && g.cadence.Due(now) {
		for i := range g.patrols {
			g.patrols[i].Step(g.grid)
		}
	}
	if !g.run.Over() && g.caught() {
		g.damage(now)
	}
	return g.run.Step(g.score())
}

// move steps the player one tile and applies the tile it lands on.
func (g *Game) move(dx, dy int, now time.Duration) {
	next := Point{g.pos.X + dx, g.pos.Y + dy}
	switch g.grid.At(next) {
	case Wall:
		return
	case Door:
		if !g.hasKey {
			return
		}
		g.hasKey = false
		g.grid.Set(next, Floor)
	}
	g.pos = next

	switch g.grid.At(next) {
	case Treasure:
		g.found++
		g.grid.Set(next, Floor)
	case Key:
		g.hasKey = true
		g.grid.Set(next, Floor)
	case Trap:
		g.damage(now)
	case Exit:
		if g.found >= g.total {
			g.end(true, "")
		}
	}
}

func (g *Game) caught() bool {
	for _, p := range g.patrols {
		if p.Pos == g.pos {
			return true
		}
	}
	return false
}

// damage costs one hit point unless the player was hurt within HitGrace.
func (g *Game) damage(now time.Duration) {
	if now-g.lastHit < HitGrace {
		return
	}
	g.lastHit = now
	g.hp--
	if g.hp <= 0 {
		g.end(false, "Out of health")
	}
}

func (g *Game) end(victory bool, reason string) {
	g.victory = victory
	g.reason = reason
	g.run.End()
}

func (g *Game) tileBox(p Point) core.Box {
	return core.NewBox(float64(p.X)*TileSize, mapTop+float64(p.Y)*TileSize, TileSize, TileSize)
}

var tileInk = map[Tile]struct {
	glyph rune
	color core.Color
}{
	Wall:     {'█', core.ColorGray},
	Key:      {'⚷', core.ColorGold},
	Treasure: {'$', core.ColorYellow},
	Trap:     {'^', core.ColorWhite},
	Door:     {'▒', core.ColorOrange},
	Exit:     {'⇩', core.ColorBrightGreen},
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	c := arena.NewCanvas(dst, g.width, g.height)

	for y := 0; y < g.grid.H; y++ {
		for x := 0; x < g.grid.W; x++ {
			p := Point{x, y}
			ink, ok := tileInk[g.grid.At(p)]
			if !ok {
				continue
			}
			if ink.glyph == '█' {
				c.Fill(g.tileBox(p), ink.glyph, ink.color)
			} else {
				c.Glyph(g.tileBox(p), ink.glyph, ink.color)
			}
		}
	}
	for _, p := range g.patrols {
		c.Glyph(g.tileBox(p.Pos), 'Ö', core.ColorBrightRed)
	}
	tint := g.env.Cosmetic.Tint
	if tint == core.ColorDefault {
		tint = core.ColorYellow
	}
	c.Glyph(g.tileBox(g.pos), '●', tint)

	key := ""
	if g.hasKey {
		key = "  KEY"
	}
	c.HUD("%s  Treasures %d/%d%s", strings.Repeat("♥", max(g.hp, 0)), g.found, g.total, key)
	left := arena.Seconds(g.remaining())
	col := core.ColorBrightWhite
	if left <= 20 {
		col = core.ColorBrightRed
	}
	c.HUDRight(fmt.Sprintf("Time %ds", left), col)

	switch {
	case g.run.Over() && g.victory:
		c.Banner("TREASURE FOUND!", fmt.Sprintf("Time left %ds", left))
	case g.run.Over():
		c.Banner("GAME OVER", g.reason, fmt.Sprintf("Treasures %d/%d", g.found, g.total))
	case g.run.Paused:
		c.Banner("PAUSED", "Press P to resume")
	}
}

func init() {
	registry.Register("maze", func() registry.Mode { return New() })
}
