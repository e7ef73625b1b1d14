package world

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGrid is returned for a map without rows or columns.
	ErrEmptyGrid = errors.New("grid has no cells")
	// ErrRaggedGrid is returned when rows differ in length.
	ErrRaggedGrid = errors.New("grid rows have inconsistent width")
	// ErrMaterialRange is returned for a cell value outside [0, K].
	ErrMaterialRange = errors.New("cell material out of range")
	// ErrNotEnclosed is returned when the outer ring contains an empty cell.
	ErrNotEnclosed = errors.New("grid border is not fully enclosed")
)

// Grid is the static wall layout: R×C cells where 0 is empty and 1..K is a material id.
// A Grid is never mutated after construction and may be shared between goroutines.
type Grid struct {
	rows     int
	cols     int
	tileSize float64
	cells    []int // row-major
}

// NewGrid validates and copies cells. maxMaterial is K, the number of textures.
func NewGrid(cells [][]int, tileSize float64, maxMaterial int) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %v", tileSize)
	}
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	rows, cols := len(cells), len(cells[0])
	g := &Grid{
		rows:     rows,
		cols:     cols,
		tileSize: tileSize,
		cells:    make([]int, 0, rows*cols),
	}
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d: %w", r, cols, len(row), ErrRaggedGrid)
		}
		for c, v := range row {
			if v < 0 || v > maxMaterial {
				return nil, fmt.Errorf("cell (%d,%d) = %d, allowed 0..%d: %w", r, c, v, maxMaterial, ErrMaterialRange)
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// TileSize returns the world-unit edge length of one cell.
func (g *Grid) TileSize() float64 { return g.tileSize }

// Width returns the world pixel extent along x.
func (g *Grid) Width() float64 { return float64(g.cols) * g.tileSize }

// Height returns the world pixel extent along y.
func (g *Grid) Height() float64 { return float64(g.rows) * g.tileSize }

// TileAt returns the cell value at tile coordinates. ok is false outside the grid.
func (g *Grid) TileAt(tileX, tileY int) (value int, ok bool) {
	if tileX < 0 || tileX >= g.cols || tileY < 0 || tileY >= g.rows {
		return 0, false
	}
	return g.cells[tileY*g.cols+tileX], true
}

// IsTileBlocking reports whether a tile holds a wall. Tiles outside the grid block.
func (g *Grid) IsTileBlocking(tileX, tileY int) bool {
	v, ok := g.TileAt(tileX, tileY)
	return !ok || v != 0
}

// GetWorldBounds returns the grid size in tiles.
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.cols, g.rows
}

// MaxMaterial returns the largest material id used by the grid.
func (g *Grid) MaxMaterial() int {
	m := 0
	for _, v := range g.cells {
		if v > m {
			m = v
		}
	}
	return m
}

// IsEnclosed reports whether every cell of the outer ring is a wall.
func (g *Grid) IsEnclosed() bool {
	return g.ValidateEnclosed() == nil
}

// ValidateEnclosed returns ErrNotEnclosed naming the first open border cell.
func (g *Grid) ValidateEnclosed() error {
	for x := 0; x < g.cols; x++ {
		for _, y := range []int{0, g.rows - 1} {
			if v, _ := g.TileAt(x, y); v == 0 {
				return fmt.Errorf("cell (%d,%d): %w", y, x, ErrNotEnclosed)
			}
		}
	}
	for y := 0; y < g.rows; y++ {
		for _, x := range []int{0, g.cols - 1} {
			if v, _ := g.TileAt(x, y); v == 0 {
				return fmt.Errorf("cell (%d,%d): %w", y, x, ErrNotEnclosed)
			}
		}
	}
	return nil
}

// Cells returns a copy of the grid as rows.
func (g *Grid) Cells() [][]int {
	out := make([][]int, g.rows)
	for y := range out {
		out[y] = append([]int(nil), g.cells[y*g.cols:(y+1)*g.cols]...)
	}
	return out
}
