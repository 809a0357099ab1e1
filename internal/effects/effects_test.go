package effects

import (
	"testing"
	"time"
)

const ms = time.Millisecond

func TestEffectExpiresAtExpiry(t *testing.T) {
	r := New()
	r.Activate(Shield, 1000*ms, 5000*ms)

	if got := r.Tick(5999 * ms); len(got) != 0 {
		t.Fatalf("expired early: %v", got)
	}
	if !r.Active(Shield) || r.Remaining(Shield, 5999*ms) != ms {
		t.Error("shield should still be active with 1ms left")
	}
	got := r.Tick(6000 * ms)
	if len(got) != 1 || got[0] != Shield {
		t.Errorf("Tick = %v, expected [shield]", got)
	}
	if r.Active(Shield) {
		t.Error("shield should be gone")
	}
}

func TestActivateRefreshesInsteadOfStacking(t *testing.T) {
	r := New()
	r.Activate(Magnet, 0, 8000*ms)
	r.Activate(Magnet, 3000*ms, 8000*ms)
	if got := r.Remaining(Magnet, 3000*ms); got != 8000*ms {
		t.Errorf("Remaining = %v, expected 8s", got)
	}
	r.Activate(Magnet, 3000*ms, 0)
	if got := r.Remaining(Magnet, 3000*ms); got != 8000*ms {
		t.Error("zero duration should be ignored")
	}
}

func TestScoreMultiplierRevertsOnExpiry(t *testing.T) {
	r := New()
	if r.ScoreMultiplier() != 1 {
		t.Fatal("base multiplier should be 1")
	}
	r.Activate(ScoreBoost, 0, 10000*ms)
	if r.ScoreMultiplier() != 2 {
		t.Error("boost should double")
	}
	r.Tick(10000 * ms)
	if r.ScoreMultiplier() != 1 {
		t.Error("multiplier should revert")
	}
}

func TestAbsorbPrefersShield(t *testing.T) {
	r := New()
	r.Activate(Shield, 0, time.Second)
	r.Activate(Invincible, 0, time.Second)

	if !r.Absorb() || r.Active(Shield) || !r.Active(Invincible) {
		t.Fatal("first absorb should consume the shield only")
	}
	if !r.Absorb() || r.Protected() {
		t.Fatal("second absorb should consume invincibility")
	}
	if r.Absorb() {
		t.Error("unprotected registry absorbed a hit")
	}
}

func TestTickReturnsSortedKinds(t *testing.T) {
	r := New()
	r.Activate(RapidFire, 0, time.Second)
	r.Activate(Shield, 0, time.Second)
	r.Activate(SlowTime, 0, 2*time.Second)

	got := r.Tick(time.Second)
	if len(got) != 2 || got[0] != Shield || got[1] != RapidFire {
		t.Errorf("Tick = %v", got)
	}
	if kinds := r.Kinds(); len(kinds) != 1 || kinds[0] != SlowTime {
		t.Errorf("Kinds = %v", kinds)
	}
	r.Reset()
	if len(r.Kinds()) != 0 {
		t.Error("Reset left effects")
	}
	if SlowTime.String() != "slow_time" || Kind(99).String() != "unknown" {
		t.Error("unexpected names")
	}
}
