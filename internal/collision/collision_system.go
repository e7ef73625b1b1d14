package collision

import "math"

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	TileAt(tileX, tileY int) (value int, ok bool)
	GetWorldBounds() (width, height int)
}

// CollisionSystem answers point-in-wall queries against the grid.
// It holds no mutable state and is safe for concurrent use.
type CollisionSystem struct {
	tileChecker TileChecker
	tileSize    float64
	worldWidth  float64
	worldHeight float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, tileSize float64) *CollisionSystem {
	w, h := tileChecker.GetWorldBounds()
	return &CollisionSystem{
		tileChecker: tileChecker,
		tileSize:    tileSize,
		worldWidth:  float64(w) * tileSize,
		worldHeight: float64(h) * tileSize,
	}
}

// TileSize returns the world-unit size of one tile.
func (cs *CollisionSystem) TileSize() float64 {
	return cs.tileSize
}

// WorldSize returns the world pixel extent.
func (cs *CollisionSystem) WorldSize() (width, height float64) {
	return cs.worldWidth, cs.worldHeight
}

// InBounds reports whether (x, y) addresses a grid cell.
func (cs *CollisionSystem) InBounds(x, y float64) bool {
	return x >= 0 && x < cs.worldWidth && y >= 0 && y < cs.worldHeight
}

// HasWallAt reports whether the point lies in a wall cell.
// Points outside the world are walls.
func (cs *CollisionSystem) HasWallAt(x, y float64) bool {
	if !cs.InBounds(x, y) || math.IsNaN(x) || math.IsNaN(y) {
		return true
	}
	return cs.tileChecker.IsTileBlocking(cs.tileIndex(x), cs.tileIndex(y))
}

// MaterialAt returns the cell value under the point, or 0 outside the world.
func (cs *CollisionSystem) MaterialAt(x, y float64) int {
	if !cs.InBounds(x, y) {
		return 0
	}
	v, _ := cs.tileChecker.TileAt(cs.tileIndex(x), cs.tileIndex(y))
	return v
}

// CanMoveTo reports whether a point-sized body may occupy (x, y).
func (cs *CollisionSystem) CanMoveTo(x, y float64) bool {
	return !cs.HasWallAt(x, y)
}

// CheckLineOfSight checks if there's a clear line of sight between two points
func (cs *CollisionSystem) CheckLineOfSight(x1, y1, x2, y2 float64) bool {
	// sample at least twice per tile along the segment
	length := math.Hypot(x2-x1, y2-y1)
	steps := int(math.Ceil(length/(cs.tileSize/2))) + 1
	dx := (x2 - x1) / float64(steps)
	dy := (y2 - y1) / float64(steps)

	for i := 0; i <= steps; i++ {
		if cs.HasWallAt(x1+dx*float64(i), y1+dy*float64(i)) {
			return false
		}
	}
	return true
}

func (cs *CollisionSystem) tileIndex(v float64) int {
	return int(math.Floor(v / cs.tileSize))
}
