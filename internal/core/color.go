package core

// Color is a semantic foreground colour for a screen cell.
// The platform layer decides the concrete terminal colour for each value.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink
	ColorGold

	// Themed colours. The platform resolves them through the active theme.
	ColorPipe
	ColorGround
)
