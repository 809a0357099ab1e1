// Package profile is the gameplay-facing view of persistence: the wallet,
// high scores and run history, loaded once and saved best-effort.
package profile

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/scoring"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

// Backend is the persistence the manager writes through to.
// *storage.Store implements it.
type Backend interface {
	LoadWallet() (*scoring.Wallet, error)
	SaveWallet(w *scoring.Wallet) error
	LoadHighScores() (*scoring.HighScores, error)
	SaveHighScore(tier config.Tier, score int) error
	SaveRun(run storage.RunEntry) (int64, error)
}

var _ Backend = (*storage.Store)(nil)

// rankedModes feed the per-tier high score table.
var rankedModes = map[string]bool{
	"classic": true,
}

// Outcome summarises what a finished run changed.
type Outcome struct {
	Result    core.Result
	Medal     scoring.Medal
	NewRecord bool
	Best      int
	Balance   int
}

// Manager owns the in-memory profile. It is safe for concurrent use so SSH
// sessions can share one.
type Manager struct {
	mu      sync.Mutex
	backend Backend
	logger  *log.Logger
	catalog *config.Catalog
	theme   config.Theme

	wallet *scoring.Wallet
	scores *scoring.HighScores
}

// New creates a manager. A nil backend keeps everything in memory.
func New(backend Backend, catalog *config.Catalog, theme config.Theme, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	if catalog == nil {
		catalog = config.DefaultCatalog()
	}
	return &Manager{
		backend: backend,
		logger:  logger,
		catalog: catalog,
		theme:   theme,
		wallet:  scoring.NewWallet(),
		scores:  scoring.NewHighScores(),
	}
}

// Load reads the stored profile. Read failures leave defaults in place.
func (m *Manager) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend == nil {
		return
	}
	if w, err := m.backend.LoadWallet(); err != nil {
		m.logger.Warn("could not load wallet, using defaults", "error", err)
	} else {
		w.Normalize()
		if _, ok := m.catalog.Get(w.Equipped); !ok {
			w.Equipped = config.DefaultCosmeticID
		}
		m.wallet = w
	}
	if hs, err := m.backend.LoadHighScores(); err != nil {
		m.logger.Warn("could not load high scores, using defaults", "error", err)
	} else {
		m.scores = hs
	}
}

// Theme returns the active theme.
func (m *Manager) Theme() config.Theme {
	return m.theme
}

// Catalog returns the cosmetic catalog.
func (m *Manager) Catalog() *config.Catalog {
	return m.catalog
}

// Wallet returns a snapshot of the wallet.
func (m *Manager) Wallet() *scoring.Wallet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wallet.Clone()
}

// Equipped returns the equipped cosmetic.
func (m *Manager) Equipped() config.Cosmetic {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.catalog.Lookup(m.wallet.Equipped)
}

// Best returns the high score for tier.
func (m *Manager) Best(tier config.Tier) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores.Best(tier)
}

// HighScores returns a copy of the per-tier table.
func (m *Manager) HighScores() map[config.Tier]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores.All()
}

// FinishRun credits the run's coins, updates lifetime stats and the high
// score table, and persists everything. Write failures are logged only.
func (m *Manager) FinishRun(r core.Result) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.wallet.Add(r.Coins)
	m.wallet.RecordGame(r.Score)

	out := Outcome{Result: r, Medal: scoring.MedalFor(r.Score)}
	tier := config.ParseTier(r.Tier)
	if rankedModes[r.Mode] {
		out.NewRecord = m.scores.Finalize(r.Score, tier)
	}
	out.Best = m.scores.Best(tier)
	out.Balance = m.wallet.Coins

	if m.backend == nil {
		return out
	}
	if _, err := m.backend.SaveRun(storage.RunFromResult(r)); err != nil {
		m.logger.Warn("could not save run", "mode", r.Mode, "error", err)
	}
	if out.NewRecord {
		if err := m.backend.SaveHighScore(tier, r.Score); err != nil {
			m.logger.Warn("could not save high score", "tier", tier, "error", err)
		}
	}
	m.persistWallet()

	m.logger.Debug("run finished",
		"mode", r.Mode, "tier", r.Tier, "score", r.Score,
		"coins", r.Coins, "victory", r.Victory, "record", out.NewRecord)
	return out
}

// Purchase buys a cosmetic by ID under the manager's theme.
func (m *Manager) Purchase(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.catalog.Get(id)
	if !ok {
		return scoring.ErrUnknownCosmetic
	}
	if err := m.wallet.Purchase(c, m.theme); err != nil {
		return err
	}
	m.logger.Info("cosmetic purchased", "id", id, "balance", m.wallet.Coins)
	m.persistWallet()
	return nil
}

// Equip selects an owned cosmetic by ID.
func (m *Manager) Equip(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.catalog.Get(id); !ok {
		return scoring.ErrUnknownCosmetic
	}
	if err := m.wallet.Equip(id); err != nil {
		return err
	}
	m.persistWallet()
	return nil
}

func (m *Manager) persistWallet() {
	if m.backend == nil {
		return
	}
	if err := m.backend.SaveWallet(m.wallet); err != nil {
		m.logger.Warn("could not save wallet", "error", err)
	}
}
