package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestTierTable(t *testing.T) {
	for _, tier := range Tiers() {
		d := DifficultyFor(tier)
		if d.Gravity <= 0 {
			t.Errorf("%s: gravity = %v, expected > 0", tier, d.Gravity)
		}
		if d.Impulse >= 0 {
			t.Errorf("%s: impulse = %v, expected < 0", tier, d.Impulse)
		}
	}

	medium := DifficultyFor(TierMedium)
	if medium.Gap != 150 || medium.ScrollSpeed != 3 || medium.PipeInterval() != 1500*time.Millisecond {
		t.Errorf("medium tier = %+v", medium)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in       string
		expected Tier
		known    bool
	}{
		{"easy", TierEasy, true},
		{" HARD ", TierHard, true},
		{"medium", TierMedium, true},
		{"nightmare", TierMedium, false},
		{"", TierMedium, false},
	}
	for _, tc := range tests {
		got, ok := LookupTier(tc.in)
		if got != tc.expected || ok != tc.known {
			t.Errorf("LookupTier(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.expected, tc.known)
		}
		if ParseTier(tc.in) != tc.expected {
			t.Errorf("ParseTier(%q) = %v", tc.in, ParseTier(tc.in))
		}
	}
	if Tier(42).String() != "medium" || DifficultyFor(Tier(-1)) != DifficultyFor(TierMedium) {
		t.Error("invalid tiers should resolve to medium")
	}
}

func TestCatalogLookup(t *testing.T) {
	cat := DefaultCatalog()

	if got := cat.Lookup("no_such_skin"); got.ID != DefaultCosmeticID {
		t.Errorf("Lookup(unknown) = %q, expected default", got.ID)
	}
	def := cat.Lookup(DefaultCosmeticID)
	if def.Price != 0 {
		t.Errorf("default cosmetic price = %d, expected 0", def.Price)
	}
	ninja, ok := cat.Get("ninja")
	if !ok || ninja.Ability != AbilityDoubleCoins || ninja.Price != 150 {
		t.Errorf("ninja = %+v, %v", ninja, ok)
	}
	for _, c := range cat.All() {
		if c.Price < 0 {
			t.Errorf("%s has negative price", c.ID)
		}
	}
}

func TestParseAbility(t *testing.T) {
	if ParseAbility("coin_magnet") != AbilityCoinMagnet {
		t.Error("coin_magnet not parsed")
	}
	if ParseAbility("laser_eyes") != AbilityNone {
		t.Error("unknown ability should be none")
	}
	if AbilityNone.StartDuration() != 0 || AbilityNone.CoinMultiplier() != 1 {
		t.Error("no ability should have no effect")
	}
	if AbilityScoreBoost.StartDuration() != 15*time.Second {
		t.Errorf("score boost start duration = %v", AbilityScoreBoost.StartDuration())
	}
}

func TestPowerUpFallback(t *testing.T) {
	if ParsePowerUp("mega_jump") != PowerUpNone {
		t.Error("unknown power-up should be neutral")
	}
	if PowerUpFor(PowerUpKind(99)).Duration != 0 {
		t.Error("out of range power-up should have zero duration")
	}
	if PowerUpFor(ParsePowerUp("shield")).Duration != 5*time.Second {
		t.Error("shield duration should be 5s")
	}
}

func TestThemeShopStock(t *testing.T) {
	cat := DefaultCatalog()
	lantern, _ := cat.Get("tet_lantern")

	if ThemeClassic.Purchasable(lantern) {
		t.Error("seasonal cosmetic purchasable under classic theme")
	}
	if !ThemeTet.Purchasable(lantern) {
		t.Error("seasonal cosmetic not purchasable under tet theme")
	}

	classic := cat.ForTheme(ThemeClassic)
	tet := cat.ForTheme(ThemeTet)
	if len(tet) != len(cat.All()) || len(classic) >= len(tet) {
		t.Errorf("ForTheme sizes: classic=%d tet=%d all=%d", len(classic), len(tet), len(cat.All()))
	}
	if !tet[0].Seasonal {
		t.Error("tet shop should lead with seasonal items")
	}
	if ParseTheme("TET") != ThemeTet || ParseTheme("winter") != ThemeClassic {
		t.Error("ParseTheme fallback broken")
	}
}

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	cfg, err := ParseTuning(defaultTuningYAML)
	if err != nil {
		t.Fatalf("embedded tuning invalid: %v", err)
	}
	def := DefaultTuning()
	if cfg.World != def.World || cfg.Combo != def.Combo || cfg.Classic != def.Classic {
		t.Errorf("embedded tuning drifted from DefaultTuning")
	}
	for _, tier := range Tiers() {
		if cfg.DifficultyFor(tier) != DifficultyFor(tier) {
			t.Errorf("%s: embedded difficulty differs from table", tier)
		}
	}
}

func TestLoadTuningCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	data := []byte("difficulty:\n  hard:\n    gravity: 0.5\ncombo:\n  policy: at_threshold\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning() failed: %v", err)
	}
	hard := cfg.DifficultyFor(TierHard)
	if hard.Gravity != 0.5 {
		t.Errorf("hard gravity = %v, expected override 0.5", hard.Gravity)
	}
	if hard.Impulse != -5.5 {
		t.Errorf("hard impulse = %v, expected table value", hard.Impulse)
	}
	if cfg.Combo.Policy != "at_threshold" || cfg.Combo.Threshold != 3 {
		t.Errorf("combo = %+v", cfg.Combo)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"positive impulse", "difficulty:\n  easy:\n    impulse: 3\n"},
		{"negative gravity", "difficulty:\n  medium:\n    gravity: -1\n"},
		{"bad yaml", "world: [1, 2\n"},
		{"zero threshold", "combo:\n  threshold: 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadTuning(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := LoadTuning(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TuningFile)
	if err := os.WriteFile(path, []byte("world:\n  width: 400\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	// Writes to other files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("world:\n  width: 420\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		abs, _ := filepath.Abs(path)
		if got != abs {
			t.Errorf("event for %q, expected %q", got, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestWatcherWaitsForWritesToSettle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TuningFile)
	if err := os.WriteFile(path, []byte("world:\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	// A save that lands in several chunks, each well inside the debounce window.
	chunks := []string{"world:\n", "  width: 420\n", "  height: 600\n", "  ground_height: 80\n"}
	var written atomic.Int32
	go func() {
		content := ""
		for _, c := range chunks {
			content += c
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				return
			}
			written.Add(1)
			time.Sleep(reloadDebounce / 4)
		}
	}()

	select {
	case <-w.Events:
		if n := int(written.Load()); n != len(chunks) {
			t.Errorf("reload reported after %d of %d writes", n, len(chunks))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}

	select {
	case <-w.Events:
		t.Error("a burst of writes should produce one event")
	case <-time.After(3 * reloadDebounce):
	}
}
