package config

import (
	"strings"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// Theme selects the UI palette, labels and seasonal shop stock.
// Gameplay never reads it.
type Theme int

const (
	ThemeClassic Theme = iota
	ThemeTet
)

// ParseTheme resolves a theme name, falling back to classic.
func ParseTheme(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), "tet") {
		return ThemeTet
	}
	return ThemeClassic
}

// String returns the theme name.
func (t Theme) String() string {
	if t == ThemeTet {
		return "tet"
	}
	return "classic"
}

// Palette is the set of semantic UI colours for a theme.
type Palette struct {
	Title   core.Color
	Accent  core.Color
	Coin    core.Color
	Warning core.Color
	Ground  core.Color
	Pipe    core.Color
	Border  string // lipgloss colour for panel borders
	Header  string // lipgloss colour for titles
}

// Labels holds the user-facing strings that change with the theme.
type Labels struct {
	Title     string
	Shop      string
	Coins     string
	Scores    string
	GetReady  string
	GameOver  string
	NewRecord string
}

// Palette returns the theme's colours.
func (t Theme) Palette() Palette {
	if t == ThemeTet {
		return Palette{
			Title:   core.ColorGold,
			Accent:  core.ColorBrightRed,
			Coin:    core.ColorGold,
			Warning: core.ColorBrightYellow,
			Ground:  core.ColorRed,
			Pipe:    core.ColorBrightRed,
			Border:  "160",
			Header:  "220",
		}
	}
	return Palette{
		Title:   core.ColorBrightYellow,
		Accent:  core.ColorBrightCyan,
		Coin:    core.ColorYellow,
		Warning: core.ColorBrightRed,
		Ground:  core.ColorOrange,
		Pipe:    core.ColorGreen,
		Border:  "240",
		Header:  "229",
	}
}

// Labels returns the theme's strings.
func (t Theme) Labels() Labels {
	if t == ThemeTet {
		return Labels{
			Title:     "FLAPPY BIRD · TẾT",
			Shop:      "CỬA HÀNG SKIN",
			Coins:     "Xu",
			Scores:    "BẢNG ĐIỂM",
			GetReady:  "SẴN SÀNG!",
			GameOver:  "KẾT THÚC",
			NewRecord: "KỶ LỤC MỚI!",
		}
	}
	return Labels{
		Title:     "FLAPPY BIRD",
		Shop:      "SKIN SHOP",
		Coins:     "Coins",
		Scores:    "HIGH SCORES",
		GetReady:  "GET READY!",
		GameOver:  "GAME OVER",
		NewRecord: "NEW RECORD!",
	}
}

// Purchasable reports whether a cosmetic can be bought under this theme.
func (t Theme) Purchasable(c Cosmetic) bool {
	return !c.Seasonal || t == ThemeTet
}
