package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	_ "github.com/vovakirdan/flappy-arcade/internal/games/classic"
	"github.com/vovakirdan/flappy-arcade/internal/profile"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func testProfile(theme config.Theme, coins int) *profile.Manager {
	p := profile.New(nil, nil, theme, log.New(io.Discard))
	if coins > 0 {
		p.FinishRun(core.Result{Mode: "dodge", Tier: "medium", Coins: coins})
	}
	return p
}

func testOptions() Options {
	return Options{
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 42},
		Tier:    config.TierMedium,
		Logger:  log.New(io.Discard),
	}
}

func TestMenuListsClassicFirst(t *testing.T) {
	items := menuItems()
	if len(items) == 0 || items[0].ModeID != "classic" {
		t.Fatalf("menu items = %v, expected classic first", items)
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(testProfile(config.ThemeClassic, 0), config.TierMedium, testOptions().Runtime)

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}

	press(keyRight)
	press(keyRight)
	if m.Tier() != config.TierHard {
		t.Errorf("tier = %v, expected hard to stick at the top", m.Tier())
	}
	press(keyLeft)
	press(keyLeft)
	press(keyLeft)
	if m.Tier() != config.TierEasy {
		t.Errorf("tier = %v, expected easy", m.Tier())
	}

	for range 50 {
		press(keyDown)
	}
	press(keyEnter)
	sel := m.Selected()
	if sel == nil {
		t.Fatal("enter should select a mode")
	}
	if want := m.items[len(m.items)-1].ModeID; sel.ModeID != want {
		t.Errorf("selected %s, expected cursor clamped at %s", sel.ModeID, want)
	}
}

func TestMenuShowsBalanceAndTitle(t *testing.T) {
	m := NewMenuModel(testProfile(config.ThemeTet, 42), config.TierMedium, testOptions().Runtime)
	view := m.View()

	labels := config.ThemeTet.Labels()
	if !strings.Contains(view, labels.Title) {
		t.Error("menu should show the themed title")
	}
	if !strings.Contains(view, labels.Coins+": 42") {
		t.Error("menu should show the coin balance")
	}
	if !strings.Contains(view, "Classic Bird") {
		t.Error("menu should show the equipped skin")
	}
}

func TestShopPurchaseAndEquip(t *testing.T) {
	prof := testProfile(config.ThemeClassic, 100)
	m := NewShopModel(prof, 100, 30)

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(ShopModel)
	}

	// Row 1 is Angry Red at 50 coins.
	press(keyDown)
	if c, _ := m.Selected(); c.ID != "red_angry" {
		t.Fatalf("selected %s, expected red_angry", c.ID)
	}
	press(keyEnter)
	if !strings.HasPrefix(m.Message(), "Bought Angry Red") {
		t.Errorf("message = %q", m.Message())
	}
	if prof.Wallet().Coins != 50 {
		t.Errorf("balance = %d, expected 50", prof.Wallet().Coins)
	}
	if prof.Equipped().ID != "red_angry" {
		t.Errorf("equipped = %s, expected red_angry", prof.Equipped().ID)
	}

	// Ice Blue costs 100, more than what is left.
	press(keyDown)
	press(keyEnter)
	if m.Message() != "Not enough coins" {
		t.Errorf("message = %q, expected insufficient funds", m.Message())
	}
	if prof.Wallet().Coins != 50 || prof.Wallet().Owns("blue_ice") {
		t.Error("failed purchase changed the wallet")
	}

	// Equipping something not owned is refused.
	press(runeKey('e'))
	if m.Message() != "Buy it first" {
		t.Errorf("message = %q, expected locked", m.Message())
	}
	if prof.Equipped().ID != "red_angry" {
		t.Error("failed equip changed the equipped skin")
	}
}

func TestShopSeasonalStock(t *testing.T) {
	classic := NewShopModel(testProfile(config.ThemeClassic, 0), 100, 30)
	for _, c := range classic.items {
		if c.Seasonal {
			t.Errorf("seasonal %s listed under the classic theme", c.ID)
		}
	}

	prof := testProfile(config.ThemeTet, 100)
	tet := NewShopModel(prof, 100, 30)
	if len(tet.items) == 0 || !tet.items[0].Seasonal {
		t.Fatal("seasonal skins should lead the Tet shop")
	}

	m := tet
	for m.items[m.table.Cursor()].ID != "tet_lantern" {
		next, _ := m.Update(keyDown)
		m = next.(ShopModel)
	}
	next, _ := m.Update(keyEnter)
	m = next.(ShopModel)
	if !prof.Wallet().Owns("tet_lantern") || prof.Wallet().Coins != 12 {
		t.Errorf("lantern purchase failed: %q", m.Message())
	}
}

func TestSessionTransitions(t *testing.T) {
	var m tea.Model = NewSessionModel(testProfile(config.ThemeClassic, 0), nil, testOptions(), "tester")

	press := func(msg tea.KeyMsg) SessionModel {
		next, _ := m.Update(msg)
		m = next
		return next.(SessionModel)
	}

	if s := press(runeKey('c')); s.screen != screenShop {
		t.Fatalf("screen = %v, expected shop", s.screen)
	}
	if !strings.Contains(m.View(), config.ThemeClassic.Labels().Shop) {
		t.Error("shop view missing its title")
	}
	if s := press(keyEsc); s.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after leaving the shop", s.screen)
	}

	if s := press(keyTab); s.screen != screenScores {
		t.Fatalf("screen = %v, expected scores", s.screen)
	}
	if !strings.Contains(m.View(), "No runs") {
		t.Error("empty scoreboard should say so")
	}
	press(keyEsc)

	press(keyRight) // hard tier
	s := press(keyEnter)
	if s.screen != screenGame {
		t.Fatalf("screen = %v, expected game", s.screen)
	}
	if s.game.env.Tier != config.TierHard {
		t.Errorf("game tier = %v, expected the tier picked in the menu", s.game.env.Tier)
	}

	s = press(keyEsc)
	if s.screen != screenMenu || s.quitting {
		t.Fatal("back should return to the menu")
	}
	if s.menu.Tier() != config.TierHard {
		t.Error("menu should remember the tier")
	}

	s = press(runeKey('q'))
	if !s.quitting {
		t.Error("q should quit the session")
	}
}

// playScripted drives a classic run through the game model with fixed tick
// times and flaps, and returns its recorded result.
func playScripted(t *testing.T, theme config.Theme) core.Result {
	t.Helper()
	mode, err := registry.Create("classic")
	if err != nil {
		t.Fatal(err)
	}
	var m tea.Model = NewGameModel(mode, testProfile(theme, 0), testOptions())

	t0 := time.Unix(0, 0)
	for i := 0; i < 5000; i++ {
		gm := m.(GameModel)
		if gm.Outcome() != nil {
			return gm.Outcome().Result
		}
		if i < 400 && i%24 == 0 {
			m, _ = m.Update(runeKey('w'))
		}
		m, _ = m.Update(TickMsg(t0.Add(time.Duration(i) * 16 * time.Millisecond)))
		_ = m.View()
	}
	t.Fatal("run never finished")
	return core.Result{}
}

func TestThemeDoesNotChangeGameplay(t *testing.T) {
	classic := playScripted(t, config.ThemeClassic)
	tet := playScripted(t, config.ThemeTet)

	if classic != tet {
		t.Errorf("results differ across themes: %+v vs %+v", classic, tet)
	}
	if classic.Mode != "classic" || classic.Tier != "medium" {
		t.Errorf("unexpected result %+v", classic)
	}
}

func TestGameModelRestartsAfterDone(t *testing.T) {
	mode, err := registry.Create("classic")
	if err != nil {
		t.Fatal(err)
	}
	prof := testProfile(config.ThemeClassic, 0)
	var m tea.Model = NewGameModel(mode, prof, testOptions())

	t0 := time.Unix(0, 0)
	for i := 0; i < 2000 && m.(GameModel).Outcome() == nil; i++ {
		m, _ = m.Update(TickMsg(t0.Add(time.Duration(i) * 16 * time.Millisecond)))
	}
	if m.(GameModel).Outcome() == nil {
		t.Fatal("falling bird should end the run")
	}
	if !strings.Contains(m.View(), "Best:") {
		t.Error("finished run should show its outcome")
	}
	if prof.Wallet().GamesPlayed != 1 {
		t.Errorf("games played = %d, expected 1", prof.Wallet().GamesPlayed)
	}

	m, _ = m.Update(runeKey('r'))
	if m.(GameModel).Outcome() != nil || mode.Terminal() {
		t.Error("restart should begin a fresh run")
	}
}
