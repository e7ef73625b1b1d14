package raycast

import "math"

// Ray is the result of casting one screen column.
type Ray struct {
	Angle          float64 // normalized cast angle in [0, 2π)
	HitX, HitY     float64 // wall intersection; the player position when Hit is false
	Distance       float64 // raw Euclidean distance to the hit, 0 when Hit is false
	Hit            bool
	WasHitVertical bool // hit came from the vertical-gridline family
	Material       int  // cell value at the hit, 0 when Hit is false

	FacingUp    bool
	FacingDown  bool
	FacingLeft  bool
	FacingRight bool
}

// facing derives the direction flags from a normalized angle.
func facing(angle float64) (up, down, left, right bool) {
	down = angle > 0 && angle < math.Pi
	right = angle < math.Pi/2 || angle > 3*math.Pi/2
	return !down, down, !right, right
}

// candidate is one gridline family's best hit.
type candidate struct {
	hit      bool
	x, y     float64
	distance float64
	material int
}

// pickNearer chooses between the horizontal and vertical candidates.
// Equal distances resolve to the vertical family.
func pickNearer(horz, vert candidate) (candidate, bool) {
	switch {
	case vert.hit && (!horz.hit || vert.distance <= horz.distance):
		return vert, true
	case horz.hit:
		return horz, false
	default:
		return candidate{}, false
	}
}
