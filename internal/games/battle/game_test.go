package battle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/effects"
	"github.com/vovakirdan/flappy-arcade/internal/entity"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

const frame = core.ReferenceFrame

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Start(registry.DefaultEnv(7))
	return g
}

// activate runs updates until the round transition has finished.
func activate(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000 && g.state == StateTransition; i++ {
		g.Update(frame)
	}
	if g.state != StateActive {
		t.Fatalf("state = %v, expected active", g.state)
	}
}

func bulletAt(b core.Box, owner entity.Owner) *entity.Entity {
	cx, cy := b.Center()
	return &entity.Entity{Kind: entity.KindBullet, Owner: owner, X: cx - BulletW/2, Y: cy - BulletH/2, W: BulletW, H: BulletH}
}

func TestRoundTiers(t *testing.T) {
	expected := []config.Tier{config.TierEasy, config.TierMedium, config.TierHard, config.TierHard}
	for i, want := range expected {
		if got := RoundTier(i + 1); got != want {
			t.Errorf("RoundTier(%d) = %s, expected %s", i+1, got, want)
		}
	}
	if SkillFor(config.TierHard).Accuracy != 0.85 || SkillFor(config.Tier(9)) != SkillFor(config.TierMedium) {
		t.Error("unexpected skill table")
	}
}

func TestTransitionLastsTwoSeconds(t *testing.T) {
	g := newGame(t)
	for g.run.Now+frame < RoundTransition {
		g.Update(frame)
		if g.state != StateTransition {
			t.Fatalf("left transition at %v", g.run.Now)
		}
	}
	g.Update(frame)
	g.Update(frame)
	if g.state != StateActive {
		t.Error("transition should end after two seconds")
	}
}

func TestComboDamage(t *testing.T) {
	g := newGame(t)
	activate(t, g)
	g.enemy.hp = 100

	expected := []int{1, 1, 2, 2, 2, 3}
	for i, want := range expected {
		before := g.enemy.hp
		g.hit(g.player, g.enemy, g.run.Now)
		if got := before - g.enemy.hp; got != want {
			t.Errorf("hit %d dealt %d, expected %d", i+1, got, want)
		}
	}
	if g.player.gauge != 90 {
		t.Errorf("gauge = %d, expected 90", g.player.gauge)
	}
	g.hit(g.player, g.enemy, g.run.Now)
	if g.player.gauge != GaugeMax {
		t.Errorf("gauge should cap at %d, got %d", GaugeMax, g.player.gauge)
	}

	g.hit(g.enemy, g.player, g.run.Now)
	if g.player.combo != 0 {
		t.Error("getting hit should reset the combo")
	}
}

func TestComboDecay(t *testing.T) {
	g := newGame(t)
	activate(t, g)
	g.hit(g.player, g.enemy, 0)

	g.decayCombo(g.player, ComboWindow)
	if g.player.combo != 1 {
		t.Error("combo should survive up to the window edge")
	}
	g.decayCombo(g.player, ComboWindow+time.Millisecond)
	if g.player.combo != 0 {
		t.Error("combo should reset after the window")
	}
}

func TestShieldAbsorbsOneBullet(t *testing.T) {
	g := newGame(t)
	activate(t, g)
	g.enemy.fx.Activate(effects.Shield, g.run.Now, shieldHold)

	g.bullets.Add(bulletAt(g.enemy.body.Box(), entity.OwnerPlayer))
	g.resolveBullets(g.run.Now)
	if g.enemy.hp != MaxHP || g.enemy.fx.Active(effects.Shield) {
		t.Fatalf("hp=%d shield=%v after first bullet", g.enemy.hp, g.enemy.fx.Active(effects.Shield))
	}

	g.bullets.Add(bulletAt(g.enemy.body.Box(), entity.OwnerPlayer))
	g.resolveBullets(g.run.Now)
	if g.enemy.hp != MaxHP-1 {
		t.Errorf("hp = %d, expected %d", g.enemy.hp, MaxHP-1)
	}
}

func TestPickups(t *testing.T) {
	g := newGame(t)
	activate(t, g)
	now := g.run.Now

	g.player.hp = MaxHP
	g.applyPickup(g.player, PickupHeal, now)
	if g.player.hp != MaxHP {
		t.Error("heal should not exceed max HP")
	}
	g.player.hp = 1
	g.applyPickup(g.player, PickupHeal, now)
	if g.player.hp != 2 {
		t.Errorf("hp = %d, expected 2", g.player.hp)
	}

	g.applyPickup(g.player, PickupRapid, now)
	if g.player.cooldown() != RapidCooldown {
		t.Error("rapid fire should shorten the cooldown")
	}
	g.player.fx.Tick(now + RapidDuration)
	if g.player.cooldown() != PlayerCooldown {
		t.Error("rapid fire should expire")
	}

	g.applyPickup(g.player, PickupSpecial, now)
	if g.player.gauge != GaugeMax {
		t.Error("special pickup should fill the gauge")
	}
}

func TestSpecialNeedsFullGauge(t *testing.T) {
	g := newGame(t)
	activate(t, g)

	playerBullets := func() int {
		n := 0
		for _, b := range g.bullets.Items() {
			if b.Owner == entity.OwnerPlayer && b.Alive() {
				n++
			}
		}
		return n
	}

	g.HandleInput(core.Frame(core.ActionSpecial))
	g.Update(frame)
	if playerBullets() != 0 {
		t.Fatal("special fired with an empty gauge")
	}

	g.player.gauge = GaugeMax
	g.HandleInput(core.Frame(core.ActionSpecial))
	g.Update(frame)
	if n := playerBullets(); n != 7 {
		t.Errorf("special fired %d bullets, expected 7", n)
	}
	if g.player.gauge != 0 {
		t.Error("special should drain the gauge")
	}
}

func TestFireCooldown(t *testing.T) {
	g := newGame(t)
	activate(t, g)

	shots := 0
	for i := 0; i < 30; i++ { // 0.5s of held fire
		g.HandleInput(core.Frame(core.ActionFire))
		before := g.player.lastShot
		g.Update(frame)
		if g.player.lastShot != before {
			shots++
		}
	}
	if shots != 2 {
		t.Errorf("shots in 500ms = %d, expected 2", shots)
	}
}

func TestMatchBestOfThree(t *testing.T) {
	g := newGame(t)
	done := 0

	for round := 1; round <= 2; round++ {
		activate(t, g)
		if g.round != round {
			t.Fatalf("round = %d, expected %d", g.round, round)
		}
		g.enemy.hp = 0
		if g.Update(frame).Signal == core.SignalDone {
			done++
		}
	}

	if !g.Terminal() || g.state != StateMatchOver {
		t.Fatal("two round wins should end the match")
	}
	for i := 0; i < 10; i++ {
		if g.Update(frame).Signal == core.SignalDone {
			done++
		}
	}
	if done != 1 {
		t.Errorf("Done signalled %d times, expected 1", done)
	}

	res := g.Result()
	if !res.Victory || res.Coins != VictoryReward+2*RoundWinReward || res.Mode != "battle" {
		t.Errorf("result = %+v", res)
	}
}

func TestDoubleKnockoutReplaysRound(t *testing.T) {
	g := newGame(t)
	activate(t, g)
	g.player.hp = 0
	g.enemy.hp = 0
	g.Update(frame)

	if g.state != StateTransition || g.round != 1 {
		t.Fatalf("state = %v round = %d, expected transition into round 1", g.state, g.round)
	}
	if g.player.wins != 0 || g.enemy.wins != 0 {
		t.Errorf("wins = %d-%d, a draw awards nobody", g.player.wins, g.enemy.wins)
	}
	if g.player.hp != MaxHP || g.enemy.hp != MaxHP {
		t.Error("both fighters should be restored for the replay")
	}
}

func TestDefeatResult(t *testing.T) {
	g := newGame(t)
	activate(t, g)
	g.enemy.hp = 0
	g.Update(frame)
	for r := 0; r < 2; r++ {
		activate(t, g)
		g.player.hp = 0
		g.Update(frame)
	}
	res := g.Result()
	if res.Victory || res.Coins != RoundWinReward {
		t.Errorf("result = %+v", res)
	}
}

func TestOpponentDodges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	skill := Skill{Accuracy: 0, Reaction: 100 * time.Millisecond, Cooldown: time.Second, Dodge: 1}
	o := newOpponent(skill, rng, 520, 0)

	self := core.NewBox(300, 250, FighterW, FighterH)
	player := core.NewBox(60, 250, FighterW, FighterH)
	incoming := &entity.Entity{Kind: entity.KindBullet, Owner: entity.OwnerPlayer, X: 250, Y: 270, W: BulletW, H: BulletH}

	o.think(time.Second, self, player, []*entity.Entity{incoming})
	_, cy := self.Center()
	if o.Target() != cy-dodgeDistance {
		t.Errorf("target = %v, expected %v", o.Target(), cy-dodgeDistance)
	}
}

func TestOpponentAims(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	skill := Skill{Accuracy: 1, Reaction: 100 * time.Millisecond, Cooldown: time.Second}
	o := newOpponent(skill, rng, 520, 0)

	player := core.NewBox(60, 150, FighterW, FighterH)
	o.think(time.Second, core.NewBox(300, 300, FighterW, FighterH), player, nil)
	_, py := player.Center()
	if d := o.Target() - py; d < -aimJitter || d > aimJitter {
		t.Errorf("target %v is not near the player at %v", o.Target(), py)
	}

	if !o.wantsShot(2*time.Second, time.Second) {
		t.Error("a perfect shooter fires once the cooldown passes")
	}
	if o.wantsShot(2*time.Second+500*time.Millisecond, time.Second) {
		t.Error("cooldown should block the next shot")
	}
}

func TestRenderDoesNotPanic(t *testing.T) {
	g := newGame(t)
	screen := core.NewScreen(80, 24)
	for i := 0; i < 400; i++ {
		if i%10 == 0 {
			g.HandleInput(core.Frame(core.ActionFlap, core.ActionFire))
		}
		g.Update(frame)
		screen.Clear()
		g.Render(screen)
	}
}
