package config

import (
	"strings"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// PowerUpKind identifies a collectible power-up in the flight modes.
type PowerUpKind int

const (
	PowerUpNone PowerUpKind = iota // neutral, no effect
	PowerUpShield
	PowerUpCoinMagnet
	PowerUpSlowTime
	PowerUpScoreBoost
	powerUpCount
)

// PowerUp describes one power-up kind.
type PowerUp struct {
	Kind     PowerUpKind
	Name     string
	Duration time.Duration
	Glyph    rune
	Color    core.Color
}

var powerUpTable = [powerUpCount]PowerUp{
	PowerUpNone:       {Kind: PowerUpNone, Name: "none", Glyph: '?', Color: core.ColorGray},
	PowerUpShield:     {Kind: PowerUpShield, Name: "shield", Duration: 5000 * time.Millisecond, Glyph: 'S', Color: core.ColorBrightCyan},
	PowerUpCoinMagnet: {Kind: PowerUpCoinMagnet, Name: "coin_magnet", Duration: 8000 * time.Millisecond, Glyph: 'M', Color: core.ColorBrightRed},
	PowerUpSlowTime:   {Kind: PowerUpSlowTime, Name: "slow_time", Duration: 4000 * time.Millisecond, Glyph: 'T', Color: core.ColorBrightBlue},
	PowerUpScoreBoost: {Kind: PowerUpScoreBoost, Name: "score_boost", Duration: 10000 * time.Millisecond, Glyph: 'x', Color: core.ColorBrightYellow},
}

// String returns the power-up's persisted name.
func (k PowerUpKind) String() string {
	return PowerUpFor(k).Name
}

// PowerUpFor returns the table entry for a kind. Unknown kinds are neutral.
func PowerUpFor(k PowerUpKind) PowerUp {
	if k < 0 || k >= powerUpCount {
		return powerUpTable[PowerUpNone]
	}
	return powerUpTable[k]
}

// ParsePowerUp resolves a power-up name. Unknown names are neutral.
func ParsePowerUp(name string) PowerUpKind {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range powerUpTable {
		if p.Kind != PowerUpNone && p.Name == name {
			return p.Kind
		}
	}
	return PowerUpNone
}

// PowerUpKinds returns every spawnable power-up kind.
func PowerUpKinds() []PowerUpKind {
	return []PowerUpKind{PowerUpShield, PowerUpCoinMagnet, PowerUpSlowTime, PowerUpScoreBoost}
}
