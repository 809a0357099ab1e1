package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(RunEntry{Mode: "classic", Tier: "medium", Score: score, Coins: score / 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunFromResult(core.Result{Mode: "boss", Tier: "hard", Score: 40, Victory: true, Coins: 200})); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not ordered: %d, %d, %d", runs[0].Score, runs[1].Score, runs[2].Score)
	}

	boss, err := store.TopRuns("boss", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(boss) != 1 || !boss[0].Victory || boss[0].Coins != 200 || boss[0].Tier != "hard" {
		t.Errorf("boss run = %+v", boss)
	}

	limited, _ := store.TopRuns("classic", 2)
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	cleared, _ := store.TopRuns("classic", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(cleared))
	}
}

func TestStoreHighScoresRoundTrip(t *testing.T) {
	store := openTestStore(t)

	hs, err := store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	if hs.Best(config.TierMedium) != 0 {
		t.Error("fresh database should have no high scores")
	}

	if err := store.SaveHighScore(config.TierMedium, 12); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if err := store.SaveHighScore(config.TierMedium, 17); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if err := store.SaveHighScore(config.TierHard, 4); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}

	hs, err = store.LoadHighScores()
	if err != nil {
		t.Fatalf("LoadHighScores() failed: %v", err)
	}
	if hs.Best(config.TierMedium) != 17 || hs.Best(config.TierHard) != 4 || hs.Best(config.TierEasy) != 0 {
		t.Errorf("high scores = %v", hs.All())
	}
}

func TestStoreWalletRoundTrip(t *testing.T) {
	store := openTestStore(t)

	w, err := store.LoadWallet()
	if err != nil {
		t.Fatalf("LoadWallet() failed: %v", err)
	}
	if w.Coins != 0 || !w.Owns(config.DefaultCosmeticID) || w.Equipped != config.DefaultCosmeticID {
		t.Fatalf("fresh wallet = %+v", w)
	}

	w.Add(120)
	w.Unlocked["red_angry"] = true
	w.Unlocked["ninja"] = true
	if err := w.Equip("ninja"); err != nil {
		t.Fatal(err)
	}
	w.RecordGame(33)
	if err := store.SaveWallet(w); err != nil {
		t.Fatalf("SaveWallet() failed: %v", err)
	}

	// A second save with fewer items replaces the set.
	delete(w.Unlocked, "red_angry")
	if err := store.SaveWallet(w); err != nil {
		t.Fatalf("SaveWallet() failed: %v", err)
	}

	got, err := store.LoadWallet()
	if err != nil {
		t.Fatalf("LoadWallet() failed: %v", err)
	}
	if got.Coins != 120 || got.Equipped != "ninja" || got.GamesPlayed != 1 || got.TotalScore != 33 {
		t.Errorf("loaded wallet = %+v", got)
	}
	if !got.Owns("ninja") || got.Owns("red_angry") || !got.Owns(config.DefaultCosmeticID) {
		t.Errorf("unlocked = %v", got.UnlockedIDs())
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.ModeStats("dodge")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(RunEntry{Mode: "dodge", Tier: "easy", Score: 10, Coins: 1})
	store.SaveRun(RunEntry{Mode: "dodge", Tier: "easy", Score: 30, Coins: 3})
	store.SaveRun(RunEntry{Mode: "maze", Tier: "easy", Score: 5, Coins: 100, Victory: true})

	stats, err := store.ModeStats("dodge")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalCoins != 4 || stats.Victories != 0 {
		t.Errorf("dodge stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	if len(all) != 2 || all["maze"].Victories != 1 {
		t.Errorf("all stats = %v", all)
	}
}
