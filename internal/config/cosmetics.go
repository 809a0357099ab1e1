package config

import (
	"strings"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Ability is the gameplay tag a cosmetic may carry.
type Ability int

const (
	AbilityNone Ability = iota
	AbilityShield
	AbilityDoubleCoins
	AbilityCoinMagnet
	AbilitySlowTime
	AbilityScoreBoost
	AbilityInvincible
	AbilityExtraLife
	AbilityTeleport
)

var abilityNames = map[Ability]string{
	AbilityNone:        "",
	AbilityShield:      "shield",
	AbilityDoubleCoins: "double_coins",
	AbilityCoinMagnet:  "coin_magnet",
	AbilitySlowTime:    "slow_time",
	AbilityScoreBoost:  "score_boost",
	AbilityInvincible:  "invincible",
	AbilityExtraLife:   "extra_life",
	AbilityTeleport:    "teleport",
}

// String returns the persisted name of the ability.
func (a Ability) String() string {
	if n, ok := abilityNames[a]; ok {
		return n
	}
	return ""
}

// ParseAbility resolves an ability name. Unknown names have no gameplay effect.
func ParseAbility(name string) Ability {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range abilityNames {
		if n != "" && n == name {
			return a
		}
	}
	return AbilityNone
}

// StartDuration is how long an ability's effect lasts when applied at run start.
// Abilities without a timed effect return zero.
func (a Ability) StartDuration() time.Duration {
	switch a {
	case AbilityShield:
		return 3000 * time.Millisecond
	case AbilityCoinMagnet:
		return 10000 * time.Millisecond
	case AbilitySlowTime:
		return 5000 * time.Millisecond
	case AbilityScoreBoost:
		return 15000 * time.Millisecond
	case AbilityInvincible:
		return 3000 * time.Millisecond
	default:
		return 0
	}
}

// CoinMultiplier is the coin value multiplier granted by the ability.
func (a Ability) CoinMultiplier() int {
	if a == AbilityDoubleCoins {
		return 2
	}
	return 1
}

// DefaultCosmeticID is always unlocked and free.
const DefaultCosmeticID = "default"

// Cosmetic is one purchasable skin.
type Cosmetic struct {
	ID          string
	Name        string
	Description string
	Price       int
	Ability     Ability
	Tint        core.Color
	Seasonal    bool // only purchasable under the Tet theme
}

// Catalog is the static, ordered table of cosmetics.
type Catalog struct {
	items []Cosmetic
	index map[string]int
}

// NewCatalog builds a catalog. The first item with DefaultCosmeticID is the fallback.
func NewCatalog(items []Cosmetic) *Catalog {
	c := &Catalog{
		items: make([]Cosmetic, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		c.index[it.ID] = i
	}
	return c
}

// DefaultCatalog returns the built-in skin table.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Cosmetic{
		{ID: DefaultCosmeticID, Name: "Classic Bird", Description: "The original yellow bird", Price: 0, Tint: core.ColorYellow},
		{ID: "red_angry", Name: "Angry Red", Description: "A fiery red bird", Price: 50, Tint: core.ColorRed},
		{ID: "blue_ice", Name: "Ice Blue", Description: "Cool as ice, slows time at start", Price: 100, Ability: AbilitySlowTime, Tint: core.ColorBrightBlue},
		{ID: "pink_love", Name: "Pink Love", Description: "Spread the love", Price: 75, Tint: core.ColorPink},
		{ID: "ninja", Name: "Ninja Bird", Description: "Stealthy, earns double coins", Price: 150, Ability: AbilityDoubleCoins, Tint: core.ColorGray},
		{ID: "robot", Name: "Robo Bird", Description: "Starts with a shield", Price: 200, Ability: AbilityShield, Tint: core.ColorCyan},
		{ID: "golden", Name: "Golden Bird", Description: "Attracts coins at start", Price: 500, Ability: AbilityCoinMagnet, Tint: core.ColorGold},
		{ID: "zombie", Name: "Zombie Bird", Description: "Hard to kill", Price: 120, Ability: AbilityExtraLife, Tint: core.ColorGreen},
		{ID: "rainbow", Name: "Rainbow Bird", Description: "Starts with a score boost", Price: 250, Ability: AbilityScoreBoost, Tint: core.ColorBrightMagenta},
		{ID: "fire", Name: "Phoenix", Description: "Briefly invincible at start", Price: 300, Ability: AbilityInvincible, Tint: core.ColorOrange},
		{ID: "galaxy", Name: "Galaxy Bird", Description: "From the stars", Price: 400, Ability: AbilityTeleport, Tint: core.ColorMagenta},
		{ID: "tet_dragon", Name: "Golden Dragon", Description: "Lunar new year dragon", Price: 188, Tint: core.ColorGold, Seasonal: true},
		{ID: "tet_lantern", Name: "Red Lantern", Description: "Lights the new year", Price: 88, Tint: core.ColorBrightRed, Seasonal: true},
	})
}

// Lookup returns the cosmetic with the given ID, or the default cosmetic.
func (c *Catalog) Lookup(id string) Cosmetic {
	if it, ok := c.Get(id); ok {
		return it
	}
	if it, ok := c.Get(DefaultCosmeticID); ok {
		return it
	}
	return Cosmetic{ID: DefaultCosmeticID, Name: "Classic Bird"}
}

// Get returns the cosmetic with the given ID.
func (c *Catalog) Get(id string) (Cosmetic, bool) {
	i, ok := c.index[id]
	if !ok {
		return Cosmetic{}, false
	}
	return c.items[i], true
}

// All returns every cosmetic in catalog order.
func (c *Catalog) All() []Cosmetic {
	out := make([]Cosmetic, len(c.items))
	copy(out, c.items)
	return out
}

// ForTheme returns the catalog in shop order: seasonal items lead under
// the Tet theme and are hidden otherwise.
func (c *Catalog) ForTheme(t Theme) []Cosmetic {
	var seasonal, regular []Cosmetic
	for _, it := range c.items {
		if it.Seasonal {
			seasonal = append(seasonal, it)
		} else {
			regular = append(regular, it)
		}
	}
	if t != ThemeTet {
		return regular
	}
	return append(seasonal, regular...)
}
