package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/flappy-arcade/internal/config"
)

var (
	// ErrInsufficientFunds is returned when a purchase costs more than the balance.
	ErrInsufficientFunds = errors.New("insufficient coins")
	// ErrLocked is returned when equipping a cosmetic that is not owned.
	ErrLocked = errors.New("cosmetic is locked")
	// ErrNotPurchasable is returned for seasonal items outside their theme.
	ErrNotPurchasable = errors.New("cosmetic is not available in this theme")
	// ErrUnknownCosmetic is returned for IDs missing from the catalog.
	ErrUnknownCosmetic = errors.New("unknown cosmetic")
)

// Wallet is the player's coin balance, owned cosmetics and lifetime stats.
type Wallet struct {
	Coins       int
	Unlocked    map[string]bool
	Equipped    string
	GamesPlayed int
	TotalScore  int
}

// NewWallet returns an empty wallet owning only the default cosmetic.
func NewWallet() *Wallet {
	return &Wallet{
		Unlocked: map[string]bool{config.DefaultCosmeticID: true},
		Equipped: config.DefaultCosmeticID,
	}
}

// Normalize restores invariants after loading: the default cosmetic is
// owned, the balance is non-negative and the equipped item is owned.
func (w *Wallet) Normalize() {
	if w.Unlocked == nil {
		w.Unlocked = make(map[string]bool)
	}
	w.Unlocked[config.DefaultCosmeticID] = true
	if w.Coins < 0 {
		w.Coins = 0
	}
	if !w.Unlocked[w.Equipped] {
		w.Equipped = config.DefaultCosmeticID
	}
}

// Add credits coins. Negative amounts are ignored.
func (w *Wallet) Add(n int) {
	if n > 0 {
		w.Coins += n
	}
}

// Spend debits n coins if the balance covers it.
func (w *Wallet) Spend(n int) error {
	if n < 0 {
		return fmt.Errorf("scoring: negative spend %d", n)
	}
	if n > w.Coins {
		return ErrInsufficientFunds
	}
	w.Coins -= n
	return nil
}

// Owns reports whether a cosmetic is unlocked.
func (w *Wallet) Owns(id string) bool {
	return w.Unlocked[id]
}

// Purchase buys a cosmetic under the given theme. Owning it already is a no-op.
// On error the wallet is unchanged.
func (w *Wallet) Purchase(c config.Cosmetic, theme config.Theme) error {
	if c.ID == "" {
		return ErrUnknownCosmetic
	}
	if w.Owns(c.ID) {
		return nil
	}
	if !theme.Purchasable(c) {
		return ErrNotPurchasable
	}
	if err := w.Spend(c.Price); err != nil {
		return err
	}
	w.Unlocked[c.ID] = true
	return nil
}

// Equip selects an owned cosmetic.
func (w *Wallet) Equip(id string) error {
	if !w.Owns(id) {
		return ErrLocked
	}
	w.Equipped = id
	return nil
}

// RecordGame updates lifetime stats with a finished run.
func (w *Wallet) RecordGame(score int) {
	w.GamesPlayed++
	if score > 0 {
		w.TotalScore += score
	}
}

// UnlockedIDs returns owned cosmetic IDs in sorted order.
func (w *Wallet) UnlockedIDs() []string {
	ids := make([]string, 0, len(w.Unlocked))
	for id, ok := range w.Unlocked {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy.
func (w *Wallet) Clone() *Wallet {
	c := *w
	c.Unlocked = make(map[string]bool, len(w.Unlocked))
	for id, ok := range w.Unlocked {
		c.Unlocked[id] = ok
	}
	return &c
}
