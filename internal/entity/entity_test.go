package entity

import (
	"testing"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

const frame = core.ReferenceFrame

func TestEntityStep(t *testing.T) {
	e := &Entity{Kind: KindBullet, X: 10, Y: 20, W: 12, H: 6, VX: 8}
	e.Step(frame)
	if e.X != 18 || e.Y != 20 {
		t.Errorf("position = (%v, %v), expected (18, 20)", e.X, e.Y)
	}

	frag := &Entity{Kind: KindFragment, VX: 0, VY: -6, AY: 0.2}
	frag.Step(frame)
	if frag.VY != -5.8 || frag.Y != -5.8 {
		t.Errorf("fragment vy=%v y=%v, expected -5.8", frag.VY, frag.Y)
	}
}

func TestEntityLifetime(t *testing.T) {
	e := &Entity{Kind: KindFragment, Lifetime: time.Second}
	for i := 0; i < 59; i++ {
		e.Step(frame)
	}
	if e.Dead {
		t.Fatal("fragment died early")
	}
	e.Step(frame)
	e.Step(frame)
	if !e.Dead {
		t.Error("fragment should expire after its lifetime")
	}
}

func TestEntityBobStaysNearBase(t *testing.T) {
	e := &Entity{Kind: KindCoin, Y: 200, BaseY: 200, W: 30, H: 30, VX: -3, Bob: 5}
	for i := 0; i < 600; i++ {
		e.Step(frame)
		if e.Y < 195 || e.Y > 205 {
			t.Fatalf("bobbing coin left its band: y=%v", e.Y)
		}
	}
}

func TestCollectedEntitiesDoNotMove(t *testing.T) {
	e := &Entity{Kind: KindCoin, X: 100, VX: -3, Collected: true}
	e.Step(frame)
	if e.X != 100 {
		t.Error("collected entity moved")
	}
	if e.Alive() {
		t.Error("collected entity should not be alive")
	}
}

func TestCollectionCull(t *testing.T) {
	var c Collection
	bounds := core.NewBox(0, 0, 400, 600)

	c.Add(&Entity{Kind: KindRock, X: 10, Y: 10, W: 35, H: 35})
	c.Add(&Entity{Kind: KindRock, X: 10, Y: 700, W: 35, H: 35}) // below
	c.Add(&Entity{Kind: KindCoin, X: -40, Y: 10, W: 30, H: 30}) // off the left edge
	c.Add(&Entity{Kind: KindCoin, X: 50, Y: 50, W: 30, H: 30, Collected: true})
	c.Add(&Entity{Kind: KindMissile, X: -20, Y: 100, W: 40, H: 15}) // partly visible

	if removed := c.Cull(bounds); removed != 3 {
		t.Errorf("Cull removed %d, expected 3", removed)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", c.Len())
	}
	if c.Count(KindRock) != 1 || c.Count(KindMissile) != 1 {
		t.Errorf("unexpected survivors")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Error("Clear left entities")
	}
}

func TestPipeGeometry(t *testing.T) {
	p := NewPipe(400, 300, 150, 0, 520)

	up := p.Upper()
	if up.Y != 0 || up.Bottom() != 225 || up.W != PipeWidth {
		t.Errorf("upper = %+v", up)
	}
	low := p.Lower()
	if low.Y != 375 || low.Bottom() != 520 {
		t.Errorf("lower = %+v", low)
	}

	p.Advance(frame, 3)
	if p.X != 397 {
		t.Errorf("X = %v, expected 397", p.X)
	}
}

func TestPipePassed(t *testing.T) {
	p := NewPipe(0, 300, 150, 0, 520)
	actorLeft := 77.5

	p.X = actorLeft - PipeWidth
	if p.Passed(actorLeft) {
		t.Error("pipe touching the actor's left edge is not passed yet")
	}
	p.X -= 0.5
	if !p.Passed(actorLeft) {
		t.Error("pipe fully behind the actor should be passed")
	}
	p.Scored = true
	if p.Passed(actorLeft) {
		t.Error("scored pipes never pass twice")
	}
}
