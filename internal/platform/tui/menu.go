package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/profile"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

// menuOrder puts the flagship modes first; anything else follows by ID.
var menuOrder = []string{"classic", "time_attack", "zen", "battle", "boss", "dodge", "memory", "maze"}

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	ModeID string
	Title  string
}

// menuItems lists the registered modes in menu order.
func menuItems() []MenuItem {
	infos := registry.List()
	byID := make(map[string]registry.ModeInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}

	items := make([]MenuItem, 0, len(infos))
	for _, id := range menuOrder {
		if info, ok := byID[id]; ok {
			items = append(items, MenuItem{ModeID: info.ID, Title: info.Title})
			delete(byID, id)
		}
	}
	for _, info := range infos {
		if _, ok := byID[info.ID]; ok {
			items = append(items, MenuItem{ModeID: info.ID, Title: info.Title})
		}
	}
	return items
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	tier      config.Tier
	width     int
	height    int
	profile   *profile.Manager
	renderer  *Renderer
	keyMapper *KeyMapper

	quitting       bool
	selected       *MenuItem // Set when user selects a mode
	openScoreboard bool      // True if user pressed Tab for scoreboard
	openShop       bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(prof *profile.Manager, tier config.Tier, cfg core.RuntimeConfig) MenuModel {
	if !tier.Valid() {
		tier = config.DefaultTier
	}
	return MenuModel{
		items:     menuItems(),
		tier:      tier,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		profile:   prof,
		renderer:  NewRenderer(prof.Theme()),
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.tier > config.TierEasy {
			m.tier--
		}

	case MenuActionRight:
		if m.tier < config.TierHard {
			m.tier++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the mode
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionShop:
		m.openShop = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	theme := m.profile.Theme()
	pal := theme.Palette()
	labels := theme.Labels()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pal.Header))
	selectedStyle := m.renderer.Style(pal.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(labels.Title), m.width))
	b.WriteString("\n\n")

	wallet := m.profile.Wallet()
	equipped := m.profile.Equipped()
	status := fmt.Sprintf("%s: %d  |  Skin: %s  |  Best (%s): %d",
		labels.Coins, wallet.Coins, equipped.Name, m.tier, m.profile.Best(m.tier))
	b.WriteString(centerText(m.renderer.Style(pal.Coin).Render(status), m.width))
	b.WriteString("\n\n")

	var tiers []string
	for _, t := range config.Tiers() {
		if t == m.tier {
			tiers = append(tiers, selectedStyle.Render("["+t.String()+"]"))
		} else {
			tiers = append(tiers, dimStyle.Render(" "+t.String()+" "))
		}
	}
	b.WriteString(centerText("< "+strings.Join(tiers, " ")+" >", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = selectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Mode  |  Left/Right: Tier  |  Enter: Play  |  C: Shop  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Tier returns the tier the player picked.
func (m MenuModel) Tier() config.Tier {
	return m.tier
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// WantsShop returns true if user requested the skin shop.
func (m MenuModel) WantsShop() bool {
	return m.openShop
}

// centerText centers text within given width, measuring styled text by its
// printable width. Multi-line blocks are centred as a whole.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	if strings.Contains(text, "\n") {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
