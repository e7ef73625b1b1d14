// Package raycast finds, for every screen column, the nearest wall along that
// column's view direction by stepping across horizontal and vertical gridlines.
package raycast

import (
	"math"

	"raycaster/internal/mathutil"
)

// Oracle is the wall query surface the caster traverses.
type Oracle interface {
	HasWallAt(x, y float64) bool
	InBounds(x, y float64) bool
	MaterialAt(x, y float64) int
	WorldSize() (width, height float64)
}

// Runner spreads column indices over workers. Each index is visited once.
type Runner interface {
	ParallelFor(start, end int, fn func(int))
}

// Caster casts rays against a fixed grid.
type Caster struct {
	oracle   Oracle
	tileSize float64
	fov      float64
	worldW   float64
	worldH   float64
	runner   Runner
}

// NewCaster creates a caster with field of view fov (radians).
func NewCaster(oracle Oracle, tileSize, fov float64) *Caster {
	w, h := oracle.WorldSize()
	return &Caster{
		oracle:   oracle,
		tileSize: tileSize,
		fov:      fov,
		worldW:   w,
		worldH:   h,
	}
}

// SetRunner makes CastAll distribute columns through r. nil restores serial casting.
func (c *Caster) SetRunner(r Runner) {
	c.runner = r
}

// FOV returns the field of view in radians.
func (c *Caster) FOV() float64 {
	return c.fov
}

// ColumnAngle returns the unnormalized cast angle of column i out of n.
func (c *Caster) ColumnAngle(heading float64, i, n int) float64 {
	return heading - c.fov/2 + float64(i)*(c.fov/float64(n))
}

// CastAll fills rays with one cast per column, len(rays) being the screen width.
func (c *Caster) CastAll(px, py, heading float64, rays []Ray) {
	n := len(rays)
	cast := func(i int) {
		rays[i] = c.CastRay(px, py, c.ColumnAngle(heading, i, n))
	}
	if c.runner == nil {
		for i := 0; i < n; i++ {
			cast(i)
		}
		return
	}
	c.runner.ParallelFor(0, n, cast)
}

// CastRay casts a single ray from (px, py) at angle.
func (c *Caster) CastRay(px, py, angle float64) Ray {
	angle = mathutil.NormalizeAngle(angle)
	up, down, left, right := facing(angle)

	ray := Ray{
		Angle:       angle,
		HitX:        px,
		HitY:        py,
		FacingUp:    up,
		FacingDown:  down,
		FacingLeft:  left,
		FacingRight: right,
	}

	tan := math.Tan(angle)
	horz := c.horizontal(px, py, tan, up, left)
	vert := c.vertical(px, py, tan, up, left)

	best, vertical := pickNearer(horz, vert)
	if !best.hit {
		return ray
	}
	ray.Hit = true
	ray.HitX, ray.HitY = best.x, best.y
	ray.Distance = best.distance
	ray.Material = best.material
	ray.WasHitVertical = vertical
	return ray
}

// horizontal steps along horizontal gridline crossings.
func (c *Caster) horizontal(px, py, tan float64, up, left bool) candidate {
	t := c.tileSize

	yIntercept := math.Floor(py/t) * t
	if !up {
		yIntercept += t
	}
	xIntercept := px + (yIntercept-py)/tan

	yStep := t
	if up {
		yStep = -t
	}
	xStep := t / tan
	if (left && xStep > 0) || (!left && xStep < 0) {
		xStep = -xStep
	}

	nextX, nextY := xIntercept, yIntercept
	for c.inExtent(nextX, nextY) {
		checkX, checkY := nextX, nextY
		if up {
			checkY--
		}
		if !c.oracle.InBounds(checkX, checkY) {
			break
		}
		if c.oracle.HasWallAt(checkX, checkY) {
			return c.hitAt(px, py, nextX, nextY, checkX, checkY)
		}
		nextX += xStep
		nextY += yStep
	}
	return candidate{}
}

// vertical steps along vertical gridline crossings.
func (c *Caster) vertical(px, py, tan float64, up, left bool) candidate {
	t := c.tileSize

	xIntercept := math.Floor(px/t) * t
	if !left {
		xIntercept += t
	}
	yIntercept := py + (xIntercept-px)*tan

	xStep := t
	if left {
		xStep = -t
	}
	yStep := t * tan
	if (up && yStep > 0) || (!up && yStep < 0) {
		yStep = -yStep
	}

	nextX, nextY := xIntercept, yIntercept
	for c.inExtent(nextX, nextY) {
		checkX, checkY := nextX, nextY
		if left {
			checkX--
		}
		if !c.oracle.InBounds(checkX, checkY) {
			break
		}
		if c.oracle.HasWallAt(checkX, checkY) {
			return c.hitAt(px, py, nextX, nextY, checkX, checkY)
		}
		nextX += xStep
		nextY += yStep
	}
	return candidate{}
}

// inExtent reports whether a running crossing is still within the world extent.
func (c *Caster) inExtent(x, y float64) bool {
	return x >= 0 && x <= c.worldW && y >= 0 && y <= c.worldH
}

// hitAt records a wall found in the cell containing (checkX, checkY).
func (c *Caster) hitAt(px, py, x, y, checkX, checkY float64) candidate {
	return candidate{
		hit:      true,
		x:        x,
		y:        y,
		distance: mathutil.Distance(px, py, x, y),
		material: c.oracle.MaterialAt(checkX, checkY),
	}
}
