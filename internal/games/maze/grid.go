package maze

import (
	"fmt"
	"strings"
)

// Tile is one map cell.
type Tile rune

const (
	Wall     Tile = '#'
	Floor    Tile = '.'
	Key      Tile = 'K'
	Treasure Tile = 'T'
	Trap     Tile = '^'
	Door     Tile = 'D'
	Exit     Tile = 'E'
)

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Grid is a rectangular tile map indexed [y][x].
type Grid struct {
	W, H  int
	tiles [][]Tile
}

// NewGrid returns a grid filled with walls.
func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, tiles: make([][]Tile, h)}
	for y := range g.tiles {
		g.tiles[y] = make([]Tile, w)
		for x := range g.tiles[y] {
			g.tiles[y][x] = Wall
		}
	}
	return g
}

// ParseGrid builds a grid from rows of tile runes. All rows must have the
// same width.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("maze: empty grid")
	}
	w := len([]rune(rows[0]))
	g := NewGrid(w, len(rows))
	for y, row := range rows {
		r := []rune(row)
		if len(r) != w {
			return nil, fmt.Errorf("maze: row %d has width %d, expected %d", y, len(r), w)
		}
		for x, c := range r {
			g.tiles[y][x] = Tile(c)
		}
	}
	return g, nil
}

// In reports whether p lies on the grid.
func (g *Grid) In(p Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// At returns the tile at p. Points off the grid read as walls.
func (g *Grid) At(p Point) Tile {
	if !g.In(p) {
		return Wall
	}
	return g.tiles[p.Y][p.X]
}

// Set replaces the tile at p.
func (g *Grid) Set(p Point, t Tile) {
	if g.In(p) {
		g.tiles[p.Y][p.X] = t
	}
}

// Count returns how many tiles of kind t the grid holds.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, row := range g.tiles {
		for _, c := range row {
			if c == t {
				n++
			}
		}
	}
	return n
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y, row := range g.tiles {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteRune(rune(c))
		}
	}
	return sb.String()
}

func (g *Grid) carve(x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.Set(Point{x, y}, Floor)
		}
	}
}

// place sets t at p only if p is open floor.
func (g *Grid) place(p Point, t Tile) bool {
	if g.At(p) != Floor {
		return false
	}
	g.Set(p, t)
	return true
}

// Layout is a generated level.
type Layout struct {
	Grid      *Grid
	Start     Point
	Treasures int
	Patrols   []Patrol
}

// Generate builds the fixed treasure-hunt level for a map of w×h tiles:
// a start room, a key room reached along a trapped corridor, a central
// shaft and a treasure hall above a locked door leading to the exit.
func Generate(w, h int) Layout {
	g := NewGrid(w, h)
	mid := w / 2

	g.carve(1, 1, 3, 3)
	g.carve(4, 2, w-2, 2)
	g.carve(mid, 2, mid, h-3)
	g.carve(w-4, 1, w-2, 3)
	g.Set(Point{w - 3, 2}, Key)
	g.carve(1, h-4, w-2, h-2)

	treasures := 0
	for _, p := range []Point{{2, h - 3}, {w - 3, h - 2}, {mid, 2}, {1, h - 2}, {w - 2, 1}} {
		if g.place(p, Treasure) {
			treasures++
		}
	}
	for _, p := range []Point{{4, 2}, {6, 2}, {mid, 4}, {mid, 6}} {
		g.place(p, Trap)
	}
	g.Set(Point{mid, h - 2}, Door)
	g.Set(Point{mid, h - 1}, Exit)

	return Layout{
		Grid:      g,
		Start:     Point{1, 1},
		Treasures: treasures,
		Patrols: []Patrol{
			{Pos: Point{5, 2}, Origin: 5, Range: 3, Dir: 1},
			{Pos: Point{mid, h - 3}, Origin: mid, Range: 4, Dir: 1},
		},
	}
}

// Patrol is an enemy walking back and forth along its row.
type Patrol struct {
	Pos    Point
	Origin int // leftmost column of the beat
	Range  int // columns walked right of Origin
	Dir    int // +1 right, -1 left
}

// Step moves the patrol one tile, turning at the ends of its beat or at walls.
func (p *Patrol) Step(g *Grid) {
	for tries := 0; tries < 2; tries++ {
		next := Point{p.Pos.X + p.Dir, p.Pos.Y}
		if next.X >= p.Origin && next.X <= p.Origin+p.Range && g.At(next) != Wall && g.At(next) != Door {
			p.Pos = next
			return
		}
		p.Dir = -p.Dir
	}
}
