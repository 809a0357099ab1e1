// Package collide resolves actor contact with obstacles and collectibles
// using bounding boxes refined by per-pixel masks.
package collide

import "math"

// Mask is a 1-bit silhouette, one row of 64-bit words per pixel row.
type Mask struct {
	W, H int
	rows [][]uint64
}

// NewMask returns an empty mask.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	words := (w + 63) / 64
	rows := make([][]uint64, h)
	for y := range rows {
		rows[y] = make([]uint64, words)
	}
	return &Mask{W: w, H: h, rows: rows}
}

// SolidMask returns a mask with every pixel set.
func SolidMask(w, h int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// EllipseMask returns the inscribed ellipse of a w×h box.
func EllipseMask(w, h int) *Mask {
	m := NewMask(w, h)
	rx, ry := float64(w)/2, float64(h)/2
	if rx == 0 || ry == 0 {
		return m
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			dy := (float64(y) + 0.5 - ry) / ry
			if dx*dx+dy*dy <= 1 {
				m.Set(x, y)
			}
		}
	}
	return m
}

// PipeMask returns a solid body whose corners are rounded with radius inset.
func PipeMask(w, h, inset int) *Mask {
	m := SolidMask(w, h)
	if inset <= 0 {
		return m
	}
	r := float64(inset)
	corner := func(x, y int, cx, cy float64) {
		dx := float64(x) + 0.5 - cx
		dy := float64(y) + 0.5 - cy
		if math.Hypot(dx, dy) > r {
			m.Clear(x, y)
		}
	}
	for y := 0; y < inset && y < h; y++ {
		for x := 0; x < inset && x < w; x++ {
			corner(x, y, r, r)
			corner(w-1-x, y, float64(w)-r, r)
			corner(x, h-1-y, r, float64(h)-r)
			corner(w-1-x, h-1-y, float64(w)-r, float64(h)-r)
		}
	}
	return m
}

func (m *Mask) in(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

// Set marks a pixel.
func (m *Mask) Set(x, y int) {
	if m.in(x, y) {
		m.rows[y][x/64] |= 1 << uint(x%64)
	}
}

// Clear unmarks a pixel.
func (m *Mask) Clear(x, y int) {
	if m.in(x, y) {
		m.rows[y][x/64] &^= 1 << uint(x%64)
	}
}

// Get reports whether a pixel is set.
func (m *Mask) Get(x, y int) bool {
	if !m.in(x, y) {
		return false
	}
	return m.rows[y][x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Overlap reports whether any set pixel of m coincides with a set pixel of
// other placed at offset (dx, dy) in m's coordinates.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	y0 := max(0, dy)
	y1 := min(m.H, dy+other.H)
	for y := y0; y < y1; y++ {
		row := m.rows[y]
		orow := other.rows[y-dy]
		for i, w := range row {
			if w == 0 {
				continue
			}
			if w&window(orow, i*64-dx) != 0 {
				return true
			}
		}
	}
	return false
}

// window returns 64 bits of row starting at bit start. Bits outside the row are zero.
func window(row []uint64, start int) uint64 {
	if start <= -64 {
		return 0
	}
	if start < 0 {
		if len(row) == 0 {
			return 0
		}
		return row[0] << uint(-start)
	}
	idx, off := start/64, uint(start%64)
	if idx >= len(row) {
		return 0
	}
	v := row[idx] >> off
	if off > 0 && idx+1 < len(row) {
		v |= row[idx+1] << (64 - off)
	}
	return v
}
