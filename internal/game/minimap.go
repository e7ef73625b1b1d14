package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"raycaster/internal/sim"
)

var (
	minimapWall   = color.RGBA{255, 255, 255, 255}
	minimapFloor  = color.RGBA{0, 0, 0, 255}
	minimapRay    = color.RGBA{255, 0, 0, 255}
	minimapPlayer = color.RGBA{255, 220, 0, 255}
)

// Minimap draws the grid, every ray and the player, scaled down from world units.
type Minimap struct {
	scale    float64
	showRays bool
}

// NewMinimap creates a minimap drawn at scale screen pixels per world unit.
func NewMinimap(scale float64, showRays bool) *Minimap {
	return &Minimap{scale: scale, showRays: showRays}
}

// toScreen converts a world coordinate to minimap pixels.
func (m *Minimap) toScreen(v float64) float32 {
	return float32(v * m.scale)
}

// Draw renders the overlay in the top-left corner of screen.
func (m *Minimap) Draw(screen *ebiten.Image, s *sim.Simulation) {
	grid := s.Grid()
	ts := grid.TileSize()
	size := m.toScreen(ts)

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			c := minimapFloor
			if grid.IsTileBlocking(col, row) {
				c = minimapWall
			}
			vector.DrawFilledRect(screen, m.toScreen(float64(col)*ts), m.toScreen(float64(row)*ts), size, size, c, false)
		}
	}

	p := s.Player()
	px, py := m.toScreen(p.X), m.toScreen(p.Y)
	if m.showRays {
		for _, r := range s.Rays() {
			if !r.Hit {
				continue
			}
			vector.StrokeLine(screen, px, py, m.toScreen(r.HitX), m.toScreen(r.HitY), 1, minimapRay, false)
		}
	}

	dx, dy := p.Forward()
	vector.StrokeLine(screen, px, py, px+float32(dx)*size, py+float32(dy)*size, 1, minimapPlayer, false)
	vector.DrawFilledCircle(screen, px, py, max(2, size/8), minimapPlayer, true)
}
