// Package player holds the viewer pose and its per-frame motion update.
//
// The player is a point for collision purposes: only the centre is tested
// against the wall oracle, so the view may come arbitrarily close to a wall face.
package player

import (
	"math"

	"raycaster/internal/mathutil"
)

// WallOracle reports whether a world point lies inside a wall.
type WallOracle interface {
	HasWallAt(x, y float64) bool
}

// Player is the continuous pose of the viewer.
type Player struct {
	X, Y      float64 // world units
	Angle     float64 // heading in radians, kept in [0, 2π)
	WalkSpeed float64 // units per second
	TurnSpeed float64 // radians per second
}

// New creates a player at (x, y) facing angle.
func New(x, y, angle, walkSpeed, turnSpeed float64) Player {
	return Player{
		X:         x,
		Y:         y,
		Angle:     mathutil.NormalizeAngle(angle),
		WalkSpeed: walkSpeed,
		TurnSpeed: turnSpeed,
	}
}

// Advance applies one frame of motion and returns the new pose.
// turn and walk are intents in {-1, 0, +1}; other values are clamped.
// Rotation always applies. The translation along the new heading is
// rejected when the candidate point is a wall.
func (p Player) Advance(oracle WallOracle, turn, walk int, dt float64) Player {
	turn = mathutil.Clamp(turn, -1, 1)
	walk = mathutil.Clamp(walk, -1, 1)

	p.Angle = mathutil.NormalizeAngle(p.Angle + float64(turn)*p.TurnSpeed*dt)

	step := float64(walk) * p.WalkSpeed * dt
	if step == 0 {
		return p
	}
	newX := p.X + math.Cos(p.Angle)*step
	newY := p.Y + math.Sin(p.Angle)*step
	if !oracle.HasWallAt(newX, newY) {
		p.X = newX
		p.Y = newY
	}
	return p
}

// Forward returns the unit heading vector.
func (p Player) Forward() (dx, dy float64) {
	return math.Cos(p.Angle), math.Sin(p.Angle)
}
