package core

// Viewport maps world pixel coordinates onto screen cells.
// The world is scaled uniformly to fit the screen, leaving HUDRows rows free
// at the top for status text.
type Viewport struct {
	WorldW, WorldH float64
	ScreenW        int
	ScreenH        int
	HUDRows        int
}

// NewViewport creates a viewport for the given world and screen sizes.
func NewViewport(worldW, worldH float64, screenW, screenH, hudRows int) Viewport {
	return Viewport{
		WorldW:  worldW,
		WorldH:  worldH,
		ScreenW: screenW,
		ScreenH: screenH,
		HUDRows: hudRows,
	}
}

func (v Viewport) scale() (float64, float64) {
	rows := v.ScreenH - v.HUDRows
	if rows < 1 || v.ScreenW < 1 || v.WorldW <= 0 || v.WorldH <= 0 {
		return 0, 0
	}
	return float64(v.ScreenW) / v.WorldW, float64(rows) / v.WorldH
}

// Cell converts a world point into a screen cell.
func (v Viewport) Cell(x, y float64) (int, int) {
	sx, sy := v.scale()
	return int(x * sx), int(y*sy) + v.HUDRows
}

// Rect converts a world box into the screen cells it covers.
// Non-empty boxes always cover at least one cell.
func (v Viewport) Rect(b Box) Rect {
	x0, y0 := v.Cell(b.X, b.Y)
	x1, y1 := v.Cell(b.Right(), b.Bottom())
	return NewRect(x0, y0, Max(x1-x0, 1), Max(y1-y0, 1))
}

// Row converts a world y into a screen row.
func (v Viewport) Row(y float64) int {
	_, r := v.Cell(0, y)
	return r
}
