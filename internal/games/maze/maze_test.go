package maze

import (
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

const frame = core.ReferenceFrame

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Start(registry.DefaultEnv(1))
	return g
}

// withGrid starts a game on a hand-drawn level without patrols.
func withGrid(t *testing.T, start Point, rows ...string) *Game {
	t.Helper()
	grid, err := ParseGrid(rows...)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	g := newGame(t)
	g.load(Layout{Grid: grid, Start: start, Treasures: grid.Count(Treasure)})
	return g
}

func press(g *Game, a core.Action) core.StepResult {
	g.HandleInput(core.Frame(a))
	return g.Update(frame)
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("maze") {
		t.Fatal("maze not registered")
	}
}

func TestGenerateLayout(t *testing.T) {
	l := Generate(10, 13)
	rows := strings.Split(l.Grid.String(), "\n")
	if len(rows) != 13 || len(rows[0]) != 10 {
		t.Fatalf("grid is %dx%d", len(rows[0]), len(rows))
	}
	expected := map[int]string{
		0:  "##########",
		1:  "#...##..T#",
		2:  "#...^T^K.#",
		4:  "#####^####",
		10: "#.T......#",
		11: "#T...D.T.#",
		12: "#####E####",
	}
	for y, want := range expected {
		if rows[y] != want {
			t.Errorf("row %d = %q, expected %q", y, rows[y], want)
		}
	}
	if l.Treasures != 5 || l.Grid.Count(Treasure) != 5 || l.Grid.Count(Trap) != 4 {
		t.Errorf("treasures=%d traps=%d", l.Treasures, l.Grid.Count(Trap))
	}
	if l.Start != (Point{1, 1}) || len(l.Patrols) != 2 {
		t.Errorf("start=%v patrols=%d", l.Start, len(l.Patrols))
	}
}

func TestStartUsesWorldSize(t *testing.T) {
	g := newGame(t)
	if g.grid.W != 10 || g.grid.H != 13 {
		t.Errorf("map is %dx%d, expected 10x13", g.grid.W, g.grid.H)
	}
	if pos, hp := g.Player(); pos != (Point{1, 1}) || hp != MaxHP {
		t.Errorf("player at %v with %d hp", pos, hp)
	}
}

func TestParseGridRejectsRaggedRows(t *testing.T) {
	if _, err := ParseGrid("###", "##"); err == nil {
		t.Error("expected an error for ragged rows")
	}
	if _, err := ParseGrid(); err == nil {
		t.Error("expected an error for an empty grid")
	}
}

func TestWallsBlock(t *testing.T) {
	g := withGrid(t, Point{1, 1},
		"###",
		"#.#",
		"###",
	)
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		press(g, a)
	}
	if g.pos != (Point{1, 1}) {
		t.Errorf("player walked into a wall: %v", g.pos)
	}
}

func TestKeyOpensDoor(t *testing.T) {
	g := withGrid(t, Point{2, 1},
		"#######",
		"#K.D.E#",
		"#######",
	)

	press(g, core.ActionRight)
	if g.pos != (Point{2, 1}) {
		t.Fatalf("locked door let the player through to %v", g.pos)
	}

	press(g, core.ActionLeft)
	if !g.hasKey || g.grid.At(Point{1, 1}) != Floor {
		t.Fatal("key not picked up")
	}

	press(g, core.ActionRight)
	press(g, core.ActionRight)
	if g.pos != (Point{3, 1}) || g.hasKey || g.grid.At(Point{3, 1}) != Floor {
		t.Fatalf("door not consumed: pos=%v key=%v tile=%c", g.pos, g.hasKey, g.grid.At(Point{3, 1}))
	}

	press(g, core.ActionRight)
	if res := press(g, core.ActionRight); res.Signal != core.SignalDone {
		t.Fatal("reaching the exit with every treasure should win")
	}
	if r := g.Result(); !r.Victory || r.Coins != VictoryReward {
		t.Errorf("result = %+v", r)
	}
}

func TestExitNeedsEveryTreasure(t *testing.T) {
	g := withGrid(t, Point{2, 1},
		"#####",
		"#T.E#",
		"#####",
	)
	press(g, core.ActionRight)
	if g.run.Over() || g.pos != (Point{3, 1}) {
		t.Fatalf("exit without treasure: over=%v pos=%v", g.run.Over(), g.pos)
	}

	press(g, core.ActionLeft)
	press(g, core.ActionLeft)
	if g.found != 1 || g.grid.At(Point{1, 1}) != Floor {
		t.Fatalf("treasure not collected: found=%d", g.found)
	}
	press(g, core.ActionRight)
	press(g, core.ActionRight)
	if !g.run.Over() || !g.victory {
		t.Fatal("exit with every treasure should win")
	}
	r := g.Result()
	if r.Coins != VictoryReward+TreasureReward || r.Score < 100 {
		t.Errorf("result = %+v", r)
	}
}

func TestTrapsHurtWithGrace(t *testing.T) {
	g := withGrid(t, Point{1, 1},
		"######",
		"#.^^.#",
		"######",
	)
	press(g, core.ActionRight)
	if g.hp != MaxHP-1 {
		t.Fatalf("hp = %d after trap", g.hp)
	}
	press(g, core.ActionRight)
	if g.hp != MaxHP-1 {
		t.Errorf("hp = %d, second trap inside the grace window should not hurt", g.hp)
	}

	for i := 0; i < 61; i++ {
		g.Update(frame)
	}
	press(g, core.ActionLeft)
	if g.hp != MaxHP-2 {
		t.Errorf("hp = %d after grace, expected %d", g.hp, MaxHP-2)
	}
}

func TestLastHitPointEndsHunt(t *testing.T) {
	g := withGrid(t, Point{1, 1},
		"####",
		"#.^#",
		"####",
	)
	g.hp = 1
	if press(g, core.ActionRight).Signal != core.SignalDone {
		t.Fatal("losing the last hit point should end the hunt")
	}
	if r := g.Result(); r.Victory || r.Coins != 0 {
		t.Errorf("result = %+v", r)
	}
}

func TestPatrolStep(t *testing.T) {
	grid, _ := ParseGrid("######", "#....#", "######")

	p := Patrol{Pos: Point{1, 1}, Origin: 1, Range: 2, Dir: 1}
	var got []int
	for i := 0; i < 6; i++ {
		p.Step(grid)
		got = append(got, p.Pos.X)
	}
	if want := []int{2, 3, 2, 1, 2, 3}; !equalInts(got, want) {
		t.Errorf("beat = %v, expected %v", got, want)
	}

	w := Patrol{Pos: Point{1, 1}, Origin: 1, Range: 10, Dir: 1}
	got = got[:0]
	for i := 0; i < 5; i++ {
		w.Step(grid)
		got = append(got, w.Pos.X)
	}
	if want := []int{2, 3, 4, 3, 2}; !equalInts(got, want) {
		t.Errorf("walled beat = %v, expected %v", got, want)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPatrolsStepOnCadence(t *testing.T) {
	g := newGame(t)
	start := g.patrols[0].Pos
	for g.run.Now+frame <= PatrolStep {
		g.Update(frame)
	}
	if g.patrols[0].Pos != start {
		t.Fatalf("patrol moved early at %v", g.run.Now)
	}
	g.Update(frame)
	if g.patrols[0].Pos == start {
		t.Error("patrol should have stepped")
	}
}

func TestPatrolContactHurtsWithGrace(t *testing.T) {
	g := newGame(t)
	g.patrols[0].Pos = g.pos
	g.Update(frame)
	g.Update(frame)
	if g.hp != MaxHP-1 {
		t.Errorf("hp = %d, expected one hit inside the grace window", g.hp)
	}
}

func TestTimeLimit(t *testing.T) {
	g := newGame(t)
	var res core.StepResult
	for i := 0; i < 10000 && res.Signal != core.SignalDone; i++ {
		res = g.Update(frame)
	}
	if res.Signal != core.SignalDone {
		t.Fatal("time limit never ended the hunt")
	}
	if g.run.Now < TimeLimit || g.run.Now > TimeLimit+frame {
		t.Errorf("ended at %v", g.run.Now)
	}
	if g.reason != "Out of time" || g.victory {
		t.Errorf("reason=%q victory=%v", g.reason, g.victory)
	}
	if g.remaining() != 0 {
		t.Errorf("remaining = %v", g.remaining())
	}
}

func TestRender(t *testing.T) {
	g := newGame(t)
	g.Update(frame)
	s := core.NewScreen(60, 30)
	g.Render(s)
	if !strings.Contains(s.Row(0), "Treasures 0/5") || !strings.Contains(s.Row(0), "Time 90s") {
		t.Errorf("HUD row = %q", s.Row(0))
	}
}
