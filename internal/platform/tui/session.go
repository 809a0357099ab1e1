package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-arcade/internal/profile"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenShop
	screenScores
)

// SessionModel manages the full arcade flow: menu -> game/shop/scores -> menu.
// It is the top-level model for `flappy menu` and for SSH sessions.
type SessionModel struct {
	profile  *profile.Manager
	runs     RunSource
	opts     Options
	username string

	screen   sessionScreen
	menu     MenuModel
	game     GameModel
	shop     ShopModel
	scores   ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model. runs may be nil when no
// database is available.
func NewSessionModel(prof *profile.Manager, runs RunSource, opts Options, username string) SessionModel {
	opts = opts.withDefaults()
	return SessionModel{
		profile:  prof,
		runs:     runs,
		opts:     opts,
		username: username,
		menu:     NewMenuModel(prof, opts.Tier, opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session. Sub-models quit their own
// program when they are done; the session drops those commands and
// switches screens instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}
	if tm, ok := msg.(TuningMsg); ok {
		m.opts.Tuning = tm.Tuning
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenShop:
		return m.updateShop(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// A tick from a finished game; letting it drop ends that loop.
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	m.opts.Tier = m.menu.Tier()

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsShop():
		m.shop = NewShopModel(m.profile, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.screen = screenShop
		return m, m.shop.Init()

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.runs, m.profile.Theme(), m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		mode, err := registry.Create(m.menu.Selected().ModeID)
		if err != nil {
			// Shouldn't happen since menu only shows registered modes
			m.opts.Logger.Error("cannot create mode", "error", err)
			return m.toMenu()
		}
		m.opts.Logger.Info("mode selected", "user", m.username, "mode", mode.ID(), "tier", m.opts.Tier)
		m.game = NewGameModel(mode, m.profile, m.opts)
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.WantsBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateShop handles updates when in the skin shop.
func (m SessionModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.shop.Update(msg)
	if shopModel, ok := newModel.(ShopModel); ok {
		m.shop = shopModel
	}

	if m.shop.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.shop.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateScores handles updates when on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scoresModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = scoresModel
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu resets the menu, keeping the chosen tier.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.profile, m.opts.Tier, m.opts.Runtime)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenShop:
		return m.shop.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the interactive menu session on the local terminal.
func RunSession(prof *profile.Manager, runs RunSource, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(prof, runs, opts, "local"),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
