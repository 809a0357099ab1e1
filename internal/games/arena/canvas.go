package arena

import (
	"fmt"
	"time"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// HUDRows is the number of screen rows reserved above the play field.
const HUDRows = 1

// Canvas draws world-space shapes onto a screen.
type Canvas struct {
	Screen *core.Screen
	View   core.Viewport
}

// NewCanvas maps a world of the given size onto dst.
func NewCanvas(dst *core.Screen, worldW, worldH float64) Canvas {
	return Canvas{
		Screen: dst,
		View:   core.NewViewport(worldW, worldH, dst.Width(), dst.Height(), HUDRows),
	}
}

// Fill paints the cells a world box covers.
func (c Canvas) Fill(b core.Box, r rune, col core.Color) {
	c.Screen.DrawRectColor(c.View.Rect(b), r, col)
}

// Glyph paints a single rune at the centre of a world box.
func (c Canvas) Glyph(b core.Box, r rune, col core.Color) {
	x, y := c.View.Cell(b.Center())
	c.Screen.SetColor(x, y, r, col)
}

// Ground draws the ground line at world y.
func (c Canvas) Ground(y float64, col core.Color) {
	row := c.View.Row(y)
	for x := 0; x < c.Screen.Width(); x++ {
		c.Screen.SetColor(x, row, '▀', col)
	}
}

// HUD writes status text on the top row.
func (c Canvas) HUD(format string, args ...any) {
	c.Screen.DrawTextColor(1, 0, fmt.Sprintf(format, args...), core.ColorBrightWhite)
}

// HUDRight writes status text aligned to the right of the top row.
func (c Canvas) HUDRight(text string, col core.Color) {
	x := c.Screen.Width() - len([]rune(text)) - 1
	c.Screen.DrawTextColor(x, 0, text, col)
}

// Banner draws a centred message box.
func (c Canvas) Banner(lines ...string) {
	c.Screen.DrawMessageBox(lines)
}

// Bar renders a text gauge like [####----].
func Bar(value, max, width int) string {
	if width <= 0 {
		return ""
	}
	if max <= 0 {
		max = 1
	}
	filled := core.Clamp(value*width/max, 0, width)
	out := make([]rune, 0, width+2)
	out = append(out, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			out = append(out, '#')
		} else {
			out = append(out, '-')
		}
	}
	return string(append(out, ']'))
}

// Seconds rounds a remaining duration up to whole seconds.
func Seconds(d time.Duration) int {
	s := d.Seconds()
	if s <= 0 {
		return 0
	}
	return int(s + 0.999)
}
