// Package storage provides SQLite-based persistence for runs, high scores
// and the player's wallet.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/scoring"
)

// DefaultPath is where the database lives unless overridden.
const DefaultPath = "~/.flappy/flappy.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run.
type RunEntry struct {
	ID        int64
	Mode      string
	Tier      string
	Score     int
	Coins     int
	Victory   bool
	CreatedAt time.Time
}

// RunFromResult converts a mode result into a row.
func RunFromResult(r core.Result) RunEntry {
	return RunEntry{
		Mode:    r.Mode,
		Tier:    r.Tier,
		Score:   r.Score,
		Coins:   r.Coins,
		Victory: r.Victory,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			tier TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			victory INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, score DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			tier TEXT PRIMARY KEY,
			score INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			coins INTEGER NOT NULL DEFAULT 0,
			equipped TEXT NOT NULL DEFAULT 'default',
			games_played INTEGER NOT NULL DEFAULT 0,
			total_score INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS unlocked (
			cosmetic_id TEXT PRIMARY KEY
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (mode, tier, score, coins, victory) VALUES (?, ?, ?, ?, ?)",
		run.Mode, run.Tier, run.Score, run.Coins, run.Victory,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best runs of a mode, highest score first.
func (s *Store) TopRuns(mode string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, tier, score, coins, victory, created_at
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Tier, &e.Score, &e.Coins, &e.Victory, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearRuns deletes every run of a mode.
func (s *Store) ClearRuns(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LoadHighScores reads the per-tier best scores. Rows for unknown tiers are skipped.
func (s *Store) LoadHighScores() (*scoring.HighScores, error) {
	rows, err := s.db.Query("SELECT tier, score FROM best_scores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	hs := scoring.NewHighScores()
	for rows.Next() {
		var name string
		var score int
		if err := rows.Scan(&name, &score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if tier, ok := config.LookupTier(name); ok {
			hs.Set(tier, score)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return hs, nil
}

// SaveHighScore stores the best score for a tier.
func (s *Store) SaveHighScore(tier config.Tier, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (tier, score) VALUES (?, ?)
		 ON CONFLICT(tier) DO UPDATE SET score = excluded.score`,
		tier.String(), score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// LoadWallet reads the profile row and owned cosmetics.
// A fresh database yields an empty wallet.
func (s *Store) LoadWallet() (*scoring.Wallet, error) {
	w := scoring.NewWallet()

	err := s.db.QueryRow(
		"SELECT coins, equipped, games_played, total_score FROM profile WHERE id = 1",
	).Scan(&w.Coins, &w.Equipped, &w.GamesPlayed, &w.TotalScore)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot query profile: %w", err)
	}

	rows, err := s.db.Query("SELECT cosmetic_id FROM unlocked")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocked cosmetics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		w.Unlocked[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	w.Normalize()
	return w, nil
}

// SaveWallet replaces the stored profile and owned cosmetics in one transaction.
func (s *Store) SaveWallet(w *scoring.Wallet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	_, err = tx.Exec(
		`INSERT INTO profile (id, coins, equipped, games_played, total_score) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   coins = excluded.coins,
		   equipped = excluded.equipped,
		   games_played = excluded.games_played,
		   total_score = excluded.total_score`,
		w.Coins, w.Equipped, w.GamesPlayed, w.TotalScore,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM unlocked"); err != nil {
		return fmt.Errorf("storage: cannot reset unlocked cosmetics: %w", err)
	}
	for _, id := range w.UnlockedIDs() {
		if _, err := tx.Exec("INSERT INTO unlocked (cosmetic_id) VALUES (?)", id); err != nil {
			return fmt.Errorf("storage: cannot save unlocked cosmetic %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit wallet: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	Runs       int
	Victories  int
	HighScore  int
	AvgScore   float64
	TotalCoins int64
	LastPlayed time.Time
}

// ModeStats retrieves aggregated statistics for one mode.
func (s *Store) ModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(victory), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(coins), 0)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&stats.Runs, &stats.Victories, &stats.HighScore, &stats.AvgScore, &stats.TotalCoins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE mode = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		mode,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllModeStats retrieves statistics for every mode that has been played.
func (s *Store) AllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), SUM(victory), MAX(score), AVG(score), SUM(coins), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.Runs, &m.Victories, &m.HighScore, &m.AvgScore, &m.TotalCoins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
