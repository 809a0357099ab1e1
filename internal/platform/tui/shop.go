package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/profile"
	"github.com/vovakirdan/flappy-arcade/internal/scoring"
)

// ShopKeyMap defines the key bindings for the skin shop.
type ShopKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Buy   key.Binding
	Equip key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Equip, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Buy, k.Equip},
		{k.Back, k.Quit},
	}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy/equip"),
		),
		Equip: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "equip"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShopModel is the Bubble Tea model for buying and equipping skins.
type ShopModel struct {
	profile   *profile.Manager
	renderer  *Renderer
	items     []config.Cosmetic
	table     table.Model
	help      help.Model
	keys      ShopKeyMap
	width     int
	height    int
	message   string
	failed    bool
	quitting  bool
	goingBack bool
}

// NewShopModel creates a shop listing the cosmetics on sale under the
// profile's theme.
func NewShopModel(prof *profile.Manager, width, height int) ShopModel {
	h := help.New()
	h.ShowAll = false

	m := ShopModel{
		profile:  prof,
		renderer: NewRenderer(prof.Theme()),
		items:    prof.Catalog().ForTheme(prof.Theme()),
		keys:     DefaultShopKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.updateRows()
	return m
}

func (m *ShopModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Skin", Width: 16},
		{Title: "Price", Width: 6},
		{Title: "Ability", Width: 13},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(len(m.items)+1, max(m.height-10, 3))),
	)

	border := m.profile.Theme().Palette().Border
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateRows refreshes ownership and the equipped marker.
func (m *ShopModel) updateRows() {
	wallet := m.profile.Wallet()
	rows := make([]table.Row, len(m.items))
	for i, c := range m.items {
		status := "-"
		switch {
		case wallet.Equipped == c.ID:
			status = "equipped"
		case wallet.Owns(c.ID):
			status = "owned"
		case wallet.Coins < c.Price:
			status = "locked"
		}
		ability := c.Ability.String()
		if ability == "" {
			ability = "-"
		}
		rows[i] = table.Row{c.Name, fmt.Sprintf("%d", c.Price), ability, status}
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// Selected returns the cosmetic under the cursor.
func (m ShopModel) Selected() (config.Cosmetic, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.items) {
		return config.Cosmetic{}, false
	}
	return m.items[i], true
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Buy):
			m.buyOrEquip()
			return m, nil

		case key.Matches(msg, m.keys.Equip):
			if c, ok := m.Selected(); ok {
				m.report(m.profile.Equip(c.ID), "Equipped "+c.Name)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.message = ""
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// buyOrEquip equips an owned skin and buys one that isn't.
func (m *ShopModel) buyOrEquip() {
	c, ok := m.Selected()
	if !ok {
		return
	}
	if m.profile.Wallet().Owns(c.ID) {
		m.report(m.profile.Equip(c.ID), "Equipped "+c.Name)
		return
	}
	if err := m.profile.Purchase(c.ID); err != nil {
		m.report(err, "")
		return
	}
	m.report(m.profile.Equip(c.ID), fmt.Sprintf("Bought %s for %d", c.Name, c.Price))
}

func (m *ShopModel) report(err error, success string) {
	m.failed = err != nil
	if err == nil {
		m.message = success
		m.updateRows()
		return
	}
	switch {
	case errors.Is(err, scoring.ErrInsufficientFunds):
		m.message = "Not enough " + strings.ToLower(m.profile.Theme().Labels().Coins)
	case errors.Is(err, scoring.ErrLocked):
		m.message = "Buy it first"
	case errors.Is(err, scoring.ErrNotPurchasable):
		m.message = "Not on sale in this season"
	default:
		m.message = err.Error()
	}
}

// Message returns the last purchase or equip feedback.
func (m ShopModel) Message() string {
	return m.message
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	theme := m.profile.Theme()
	pal := theme.Palette()
	labels := theme.Labels()

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(pal.Header))
	b.WriteString(titleStyle.Render(centerText(labels.Shop, m.width)))
	b.WriteString("\n\n")

	wallet := m.profile.Wallet()
	balance := fmt.Sprintf("%s: %d", labels.Coins, wallet.Coins)
	b.WriteString(centerText(m.renderer.Style(pal.Coin).Render(balance), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(pal.Border)).
		Padding(0, 1)
	b.WriteString(centerText(panel.Render(m.table.View()), m.width))
	b.WriteString("\n")

	if c, ok := m.Selected(); ok {
		desc := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
		b.WriteString(centerText(desc.Render(c.Description), m.width))
		b.WriteString("\n")
	}

	if m.message != "" {
		style := m.renderer.Style(pal.Accent)
		if m.failed {
			style = m.renderer.Style(pal.Warning)
		}
		b.WriteString(centerText(style.Render(m.message), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsQuitting returns true if user requested to quit.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}

// IsGoingBack returns true if user requested to go back.
func (m ShopModel) IsGoingBack() bool {
	return m.goingBack
}
