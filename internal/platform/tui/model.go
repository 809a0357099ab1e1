package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/profile"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/scoring"
)

// Options configures a game session.
type Options struct {
	Runtime core.RuntimeConfig
	Tuning  config.Tuning
	Tier    config.Tier
	Logger  *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = 60
	}
	if o.Tuning.World.Width == 0 {
		o.Tuning = config.DefaultTuning()
	}
	if !o.Tier.Valid() {
		o.Tier = config.DefaultTier
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// TuningMsg delivers reloaded tuning. It applies from the next run.
type TuningMsg struct {
	Tuning config.Tuning
}

// GameModel is the Bubble Tea model for running one mode.
type GameModel struct {
	mode      registry.Mode
	profile   *profile.Manager
	opts      Options
	env       registry.Env
	screen    *core.Screen
	renderer  *Renderer
	keyMapper *KeyMapper
	input     core.InputFrame
	lastTick  time.Time
	state     core.GameState
	outcome   *profile.Outcome
	quitting  bool
	back      bool
}

// NewGameModel creates a model for mode and starts its first run.
func NewGameModel(mode registry.Mode, prof *profile.Manager, opts Options) GameModel {
	opts = opts.withDefaults()
	m := GameModel{
		mode:      mode,
		profile:   prof,
		opts:      opts,
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		renderer:  NewRenderer(prof.Theme()),
		keyMapper: NewKeyMapper(),
		input:     core.NewInputFrame(),
	}
	m.start()
	return m
}

// start builds a fresh env from the equipped cosmetic and begins a run.
func (m *GameModel) start() {
	rt := m.opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	m.env = registry.NewEnv(rt, m.opts.Tuning, m.opts.Tier, m.profile.Equipped())
	m.mode.Start(m.env)
	m.state = core.GameState{}
	m.outcome = nil
	m.lastTick = time.Time{}
	m.input.Clear()
	m.opts.Logger.Debug("run started",
		"mode", m.mode.ID(), "tier", m.opts.Tier, "seed", rt.Seed, "cosmetic", m.env.Cosmetic.ID)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TuningMsg:
		m.opts.Tuning = msg.Tuning
		m.opts.Logger.Info("tuning reloaded", "mode", m.mode.ID())
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	actions, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	for _, a := range actions {
		switch a {
		case core.ActionRestart:
			if m.mode.Terminal() {
				m.start()
				return m, nil
			}
		case core.ActionBack:
			// Leaving mid-run abandons it; nothing is recorded.
			m.back = true
			return m, tea.Quit
		default:
			m.input.Set(a)
		}
	}
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.opts.Runtime.TickRate)
	m.lastTick = now

	if !m.input.Empty() {
		m.mode.HandleInput(m.input.Clone())
		m.input.Clear()
	}
	res := m.mode.Update(dt)
	m.state = res.State

	if res.Signal == core.SignalDone {
		out := m.profile.FinishRun(m.mode.Result())
		m.outcome = &out
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// saveScreenshot writes the current frame as plain text under the data dir.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.mode.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.mode.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.mode.Render(m.screen)
	view := m.renderer.Render(m.screen)

	if m.outcome != nil {
		view += "\n" + m.outcomeLine()
	}
	return view
}

// outcomeLine summarises the finished run in the profile's theme.
func (m GameModel) outcomeLine() string {
	theme := m.profile.Theme()
	labels := theme.Labels()
	pal := theme.Palette()
	out := m.outcome

	var parts []string
	if out.NewRecord {
		parts = append(parts, m.renderer.Style(pal.Title).Render(labels.NewRecord))
	}
	if out.Medal != scoring.MedalNone && m.mode.ID() == "classic" {
		parts = append(parts, fmt.Sprintf("Medal: %s", out.Medal))
	}
	parts = append(parts,
		fmt.Sprintf("Score: %d", out.Result.Score),
		fmt.Sprintf("Best: %d", out.Best),
		m.renderer.Style(pal.Coin).Render(fmt.Sprintf("%s: +%d (%d)", labels.Coins, out.Result.Coins, out.Balance)),
	)
	hint := lipgloss.NewStyle().Faint(true).Render("R: retry  B: back  Q: quit")
	return strings.Join(parts, "  ") + "\n" + hint
}

// Outcome returns the last finished run, or nil while a run is in progress.
func (m GameModel) Outcome() *profile.Outcome {
	return m.outcome
}

// WantsBack reports whether the player asked to return to the menu.
func (m GameModel) WantsBack() bool {
	return m.back
}

// Run starts a standalone Bubble Tea program for mode.
func Run(mode registry.Mode, prof *profile.Manager, opts Options) error {
	p := tea.NewProgram(
		NewGameModel(mode, prof, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)
	_, err := p.Run()
	return err
}

// RunWatching is Run with tuning reloads forwarded from a watcher.
func RunWatching(mode registry.Mode, prof *profile.Manager, opts Options, watcher *config.Watcher, tuningPath string) error {
	opts = opts.withDefaults()
	p := tea.NewProgram(NewGameModel(mode, prof, opts), tea.WithAltScreen())

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				tuning, err := config.LoadTuning(tuningPath)
				if err != nil {
					opts.Logger.Warn("tuning reload failed", "path", tuningPath, "error", err)
					continue
				}
				p.Send(TuningMsg{Tuning: tuning})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				opts.Logger.Warn("watcher error", "error", err)
			}
		}
	}()

	_, err := p.Run()
	return err
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}
