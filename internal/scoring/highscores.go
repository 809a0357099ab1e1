package scoring

import "github.com/vovakirdan/flappy-arcade/internal/config"

// HighScores holds the best score for each difficulty tier.
type HighScores struct {
	best map[config.Tier]int
}

// NewHighScores returns an empty table.
func NewHighScores() *HighScores {
	return &HighScores{best: make(map[config.Tier]int)}
}

// Best returns the best score for tier, zero when none is recorded.
func (h *HighScores) Best(tier config.Tier) int {
	return h.best[tier]
}

// Set stores a score unconditionally. Used when loading persisted values.
func (h *HighScores) Set(tier config.Tier, score int) {
	if !tier.Valid() {
		return
	}
	h.best[tier] = score
}

// Finalize records score for tier if it beats the stored best and reports
// whether it did. Ties keep the stored value.
func (h *HighScores) Finalize(score int, tier config.Tier) bool {
	if !tier.Valid() {
		tier = config.DefaultTier
	}
	if score <= h.best[tier] {
		return false
	}
	h.best[tier] = score
	return true
}

// All returns a copy of the table.
func (h *HighScores) All() map[config.Tier]int {
	out := make(map[config.Tier]int, len(h.best))
	for t, s := range h.best {
		out[t] = s
	}
	return out
}
