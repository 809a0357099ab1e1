package dodge

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/entity"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

const frame = core.ReferenceFrame

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Start(registry.DefaultEnv(11))
	return g
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("dodge") {
		t.Fatal("dodge not registered")
	}
}

func TestWaves(t *testing.T) {
	w := DefaultWaves
	waves := []struct {
		at   time.Duration
		wave int
	}{
		{0, 1},
		{29 * time.Second, 1},
		{30 * time.Second, 2},
		{95 * time.Second, 4},
	}
	for _, tt := range waves {
		if got := w.Wave(tt.at); got != tt.wave {
			t.Errorf("Wave(%v) = %d, expected %d", tt.at, got, tt.wave)
		}
	}

	intervals := []struct {
		wave int
		want time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{2, 900 * time.Millisecond},
		{8, 300 * time.Millisecond},
		{20, 300 * time.Millisecond},
	}
	for _, tt := range intervals {
		if got := w.Interval(tt.wave); got != tt.want {
			t.Errorf("Interval(%d) = %v, expected %v", tt.wave, got, tt.want)
		}
	}
}

func TestHazardPools(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		wave    int
		allowed map[entity.Kind]bool
	}{
		{1, map[entity.Kind]bool{entity.KindRock: true}},
		{2, map[entity.Kind]bool{entity.KindRock: true}},
		{3, map[entity.Kind]bool{entity.KindRock: true, entity.KindMissile: true}},
		{5, map[entity.Kind]bool{entity.KindRock: true, entity.KindMissile: true, entity.KindBomb: true}},
		{9, map[entity.Kind]bool{entity.KindRock: true, entity.KindMissile: true, entity.KindBomb: true}},
	}
	for _, tt := range tests {
		seen := map[entity.Kind]bool{}
		for i := 0; i < 500; i++ {
			k, ok := Hazards.Pick(rng, tt.wave)
			if !ok {
				t.Fatalf("wave %d: empty pool", tt.wave)
			}
			if !tt.allowed[k] {
				t.Fatalf("wave %d picked %s", tt.wave, k)
			}
			seen[k] = true
		}
		if len(seen) != len(tt.allowed) {
			t.Errorf("wave %d saw %v, expected every kind of %v", tt.wave, seen, tt.allowed)
		}
	}
}

func TestFallSpeed(t *testing.T) {
	if FallSpeed(1) != 3.5 || FallSpeed(4) != 5 {
		t.Errorf("FallSpeed = %v, %v", FallSpeed(1), FallSpeed(4))
	}
}

func TestMissilesEnterFromAnEdge(t *testing.T) {
	g := newGame(t)
	for i := 0; i < 50; i++ {
		m := g.newHazard(entity.KindMissile, 200)
		switch {
		case m.VX == MissileSpeed && m.X == 0:
		case m.VX == -MissileSpeed && m.X == g.width:
		default:
			t.Fatalf("missile at x=%v vx=%v", m.X, m.VX)
		}
		if cy := m.Y + MissileH/2; cy < 100 || cy > g.groundY-100 || m.VY != 0 {
			t.Fatalf("missile centre y=%v vy=%v", cy, m.VY)
		}
	}
}

func TestBombBurstsIntoFragments(t *testing.T) {
	g := newGame(t)
	bomb := g.newHazard(entity.KindBomb, 200)
	bomb.Y = g.groundY - fuseHeight - BombH - 1
	g.hazards.Add(bomb)

	g.detonate()
	if g.hazards.Count(entity.KindFragment) != 0 {
		t.Fatal("bomb burst above the fuse line")
	}

	bomb.Y++
	g.detonate()
	if bomb.Alive() {
		t.Error("bomb should be consumed")
	}
	if n := g.hazards.Count(entity.KindFragment); n != Fragments {
		t.Fatalf("fragments = %d, expected %d", n, Fragments)
	}
	for _, f := range g.hazards.Items() {
		if f.Kind != entity.KindFragment {
			continue
		}
		if v := math.Hypot(f.VX, f.VY); math.Abs(v-FragmentSpeed) > 1e-9 {
			t.Errorf("fragment speed = %v", v)
		}
		if f.AY != FragmentDrag || f.Lifetime != time.Second {
			t.Errorf("fragment ay=%v lifetime=%v", f.AY, f.Lifetime)
		}
	}
}

func TestLaserWarnsBeforeItBurns(t *testing.T) {
	g := newGame(t)
	g.spawnLaser()
	laser := g.hazards.Items()[0]
	_, cy := g.player.Center()
	laser.Y = cy - laserGlowH/2

	for laser.Age+frame < LaserWarning {
		g.hazards.Advance(frame)
		g.updateLasers()
		if g.lethal() {
			t.Fatalf("laser lethal during warning at %v", laser.Age)
		}
	}
	g.hazards.Advance(frame)
	g.hazards.Advance(frame)
	g.updateLasers()
	if !g.lethal() {
		t.Fatal("active laser should be lethal")
	}
	if laser.H != LaserH {
		t.Errorf("active laser height = %v", laser.H)
	}

	for laser.Alive() && laser.Age < time.Minute {
		g.hazards.Advance(frame)
	}
	if laser.Age > LaserWarning+LaserActive+frame {
		t.Errorf("laser lived until %v", laser.Age)
	}
}

func TestLasersOnlyOnFifthWaves(t *testing.T) {
	g := newGame(t)
	g.waves.Length = 20 * time.Millisecond
	g.waves.BaseInterval = time.Hour
	g.waves.Floor = time.Hour
	for i := 0; i < 600; i++ {
		g.Update(frame)
		if g.run.Over() {
			break
		}
		for _, h := range g.hazards.Items() {
			if h.Kind == entity.KindLaser && h.Age == frame && g.wave%5 != 0 {
				t.Fatalf("laser spawned on wave %d", g.wave)
			}
		}
	}
}

func TestDashCooldown(t *testing.T) {
	g := newGame(t)
	x := g.player.X

	if !g.dash(time.Second) || g.player.X != x+DashDistance {
		t.Fatalf("first dash: x=%v", g.player.X)
	}
	if g.dash(2 * time.Second) {
		t.Error("dash taken during cooldown")
	}
	g.facing = -1
	if !g.dash(4*time.Second) || g.player.X != x {
		t.Errorf("second dash: x=%v, expected %v", g.player.X, x)
	}

	g.player.X = 10
	g.dash(10 * time.Second)
	if g.player.X != 0 {
		t.Errorf("dash left the field: x=%v", g.player.X)
	}
}

func TestMoveHoldWindow(t *testing.T) {
	g := newGame(t)
	x := g.player.X
	g.HandleInput(core.Frame(core.ActionLeft))
	g.Update(frame)
	if g.player.X != x-MoveSpeed {
		t.Fatalf("x = %v after one frame, expected %v", g.player.X, x-MoveSpeed)
	}
	for i := 0; i < 20; i++ {
		g.Update(frame)
	}
	moved := x - g.player.X
	if moved < 40 || moved > 55 {
		t.Errorf("moved %v px over the hold window", moved)
	}
	stopped := g.player.X
	g.Update(frame)
	if g.player.X != stopped {
		t.Error("player kept moving after the hold window")
	}
}

func TestScoreIsSurvivalTime(t *testing.T) {
	g := newGame(t)
	for i := 0; i < 61; i++ {
		g.Update(frame)
	}
	if g.score != 10 {
		t.Errorf("score = %d after %v, expected 10", g.score, g.run.Now)
	}

	g.score = 123
	if r := g.Result(); r.Coins != 12 || r.Victory || r.Mode != "dodge" {
		t.Errorf("result = %+v", r)
	}
}

func TestHazardEndsRun(t *testing.T) {
	g := newGame(t)
	cx, cy := g.player.Center()
	g.hazards.Add(&entity.Entity{Kind: entity.KindRock, X: cx - RockSize/2, Y: cy - RockSize/2, W: RockSize, H: RockSize})

	if g.Update(frame).Signal != core.SignalDone {
		t.Fatal("rock hit should end the run")
	}
	if g.player.Alive {
		t.Error("player should be dead")
	}
	if g.Update(frame).Signal == core.SignalDone {
		t.Error("done signalled twice")
	}
}

func TestHazardTouchingBoxCornerEndsRun(t *testing.T) {
	g := newGame(t)
	b := g.player.Box()
	g.hazards.Add(&entity.Entity{Kind: entity.KindRock, X: b.Right() - 4, Y: b.Bottom() - 4, W: RockSize, H: RockSize})

	if g.Update(frame).Signal != core.SignalDone {
		t.Error("a rock overlapping the player's box should end the run")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t)
	g.spawnLaser()
	g.Update(frame)
	s := core.NewScreen(60, 30)
	g.Render(s)
	if !strings.Contains(s.Row(0), "Wave 1") || !strings.Contains(s.Row(0), "DASH READY") {
		t.Errorf("HUD row = %q", s.Row(0))
	}
}
