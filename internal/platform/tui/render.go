package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// terminalColors maps the fixed core colours to ANSI-256 codes.
var terminalColors = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPink:          "218",
	core.ColorGold:          "220",
}

// Renderer draws screens and text in one theme's colours.
type Renderer struct {
	styles map[core.Color]lipgloss.Style
}

// NewRenderer builds the style table for theme. Themed colours such as
// pipes and ground take the theme palette's choice.
func NewRenderer(theme config.Theme) *Renderer {
	styles := make(map[core.Color]lipgloss.Style, len(terminalColors)+3)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range terminalColors {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	styles[core.ColorGold] = styles[core.ColorGold].Bold(true)

	pal := theme.Palette()
	styles[core.ColorPipe] = styles[pal.Pipe]
	styles[core.ColorGround] = styles[pal.Ground]
	return &Renderer{styles: styles}
}

// Style returns the style for c, or the plain style for unknown colours.
func (r *Renderer) Style(c core.Color) lipgloss.Style {
	if style, ok := r.styles[c]; ok {
		return style
	}
	return r.styles[core.ColorDefault]
}

// Render converts a Screen buffer to a styled string, one escape sequence
// per run of same-coloured cells.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(r.Style(color).Render(run.String()))
		}
	}
	return sb.String()
}
