package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

const ms = time.Millisecond

func newCombo(p Policy) *Combo {
	return &Combo{Window: 2000 * ms, Threshold: 3, Multiplier: 1.5, Policy: p}
}

func TestComboFourQuickPasses(t *testing.T) {
	c := newCombo(AfterThreshold)
	total := 0
	for i := 0; i < 4; i++ {
		total += c.Register(time.Duration(i)*500*ms, 1)
	}
	// The fourth pass is multiplied: int(1 * 1.5) = 1.
	if total != 4 {
		t.Errorf("total = %d, expected 4", total)
	}
	if c.Count() != 4 || c.Best() != 4 {
		t.Errorf("Count = %d Best = %d", c.Count(), c.Best())
	}
}

func TestComboPolicies(t *testing.T) {
	tests := []struct {
		policy   Policy
		expected []int
	}{
		{AfterThreshold, []int{2, 2, 2, 3}},
		{AtThreshold, []int{2, 2, 3, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.policy.String(), func(t *testing.T) {
			c := newCombo(tc.policy)
			for i, want := range tc.expected {
				if got := c.Register(time.Duration(i)*100*ms, 2); got != want {
					t.Errorf("event %d = %d, expected %d", i+1, got, want)
				}
			}
		})
	}
}

func TestComboWindowBoundary(t *testing.T) {
	c := newCombo(AfterThreshold)
	c.Register(0, 1)

	c.Tick(2000 * ms)
	if c.Count() != 1 {
		t.Error("event exactly at the window edge should keep the streak")
	}
	c.Register(2000*ms, 1)
	if c.Count() != 2 {
		t.Errorf("Count = %d, expected 2", c.Count())
	}

	c.Tick(4001 * ms)
	if c.Count() != 0 {
		t.Error("streak should reset one tick past the window")
	}
	c.Register(4001*ms, 1)
	if c.Count() != 1 {
		t.Errorf("Count = %d after reset, expected 1", c.Count())
	}
}

func TestNewComboFromTuning(t *testing.T) {
	c := NewCombo(config.DefaultTuning().Combo)
	if c.Window != 2000*ms || c.Threshold != 3 || c.Multiplier != 1.5 || c.Policy != AfterThreshold {
		t.Errorf("unexpected combo %+v", c)
	}
	if ParsePolicy("AT_THRESHOLD") != AtThreshold || ParsePolicy("bogus") != AfterThreshold {
		t.Error("ParsePolicy mismatch")
	}
}

func TestMedalFor(t *testing.T) {
	tests := []struct {
		score    int
		expected Medal
	}{
		{0, MedalNone},
		{4, MedalNone},
		{5, MedalBronze},
		{14, MedalBronze},
		{15, MedalSilver},
		{30, MedalGold},
		{49, MedalGold},
		{50, MedalPlatinum},
		{500, MedalPlatinum},
	}
	for _, tc := range tests {
		if got := MedalFor(tc.score); got != tc.expected {
			t.Errorf("MedalFor(%d) = %s, expected %s", tc.score, got, tc.expected)
		}
	}
}

func TestHighScoresFinalize(t *testing.T) {
	h := NewHighScores()
	h.Set(config.TierMedium, 12)

	if h.Finalize(12, config.TierMedium) {
		t.Error("a tie should not replace the record")
	}
	if h.Finalize(9, config.TierMedium) || h.Best(config.TierMedium) != 12 {
		t.Error("a lower score should not replace the record")
	}
	if !h.Finalize(13, config.TierMedium) || h.Best(config.TierMedium) != 13 {
		t.Error("a higher score should replace the record")
	}
	if !h.Finalize(1, config.TierHard) || h.Best(config.TierEasy) != 0 {
		t.Error("tiers are independent")
	}
	if len(h.All()) != 2 {
		t.Errorf("All = %v", h.All())
	}
}

func TestWalletPurchase(t *testing.T) {
	cat := config.DefaultCatalog()
	robot := cat.Lookup("robot")
	dragon := cat.Lookup("tet_dragon")

	w := NewWallet()
	w.Add(150)

	if err := w.Purchase(robot, config.ThemeClassic); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, expected ErrInsufficientFunds", err)
	}
	if w.Coins != 150 || w.Owns("robot") {
		t.Fatal("failed purchase changed the wallet")
	}

	w.Add(250)
	if err := w.Purchase(robot, config.ThemeClassic); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if w.Coins != 200 || !w.Owns("robot") {
		t.Errorf("coins = %d owns = %v", w.Coins, w.Owns("robot"))
	}
	if err := w.Purchase(robot, config.ThemeClassic); err != nil || w.Coins != 200 {
		t.Error("buying an owned item should be a free no-op")
	}

	if err := w.Purchase(dragon, config.ThemeClassic); !errors.Is(err, ErrNotPurchasable) {
		t.Errorf("err = %v, expected ErrNotPurchasable", err)
	}
	if err := w.Purchase(dragon, config.ThemeTet); err != nil || w.Coins != 12 {
		t.Errorf("tet purchase: err=%v coins=%d", err, w.Coins)
	}
	if err := w.Purchase(config.Cosmetic{}, config.ThemeClassic); !errors.Is(err, ErrUnknownCosmetic) {
		t.Errorf("err = %v, expected ErrUnknownCosmetic", err)
	}
}

func TestWalletEquipLocked(t *testing.T) {
	w := NewWallet()
	if err := w.Equip("golden"); !errors.Is(err, ErrLocked) {
		t.Errorf("err = %v, expected ErrLocked", err)
	}
	if w.Equipped != config.DefaultCosmeticID {
		t.Error("failed equip changed the selection")
	}
	w.Unlocked["golden"] = true
	if err := w.Equip("golden"); err != nil || w.Equipped != "golden" {
		t.Errorf("equip owned: err=%v equipped=%s", err, w.Equipped)
	}
}

func TestWalletSpendAndStats(t *testing.T) {
	w := NewWallet()
	w.Add(-5)
	if w.Coins != 0 {
		t.Error("negative credit applied")
	}
	w.Add(10)
	if err := w.Spend(11); !errors.Is(err, ErrInsufficientFunds) || w.Coins != 10 {
		t.Error("overspend should fail atomically")
	}
	if err := w.Spend(-1); err == nil {
		t.Error("negative spend should fail")
	}

	w.RecordGame(7)
	w.RecordGame(3)
	if w.GamesPlayed != 2 || w.TotalScore != 10 {
		t.Errorf("stats = %d/%d", w.GamesPlayed, w.TotalScore)
	}
}

func TestWalletNormalize(t *testing.T) {
	w := &Wallet{Coins: -3, Equipped: "galaxy"}
	w.Normalize()
	if w.Coins != 0 || !w.Owns(config.DefaultCosmeticID) || w.Equipped != config.DefaultCosmeticID {
		t.Errorf("Normalize left %+v", w)
	}

	c := w.Clone()
	c.Unlocked["x"] = true
	if w.Owns("x") {
		t.Error("Clone shares the unlocked set")
	}
	if ids := c.UnlockedIDs(); len(ids) != 2 || ids[0] != "default" {
		t.Errorf("UnlockedIDs = %v", ids)
	}
}
