package mathutil

import "math"

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle maps any angle into [0, 2π).
// Angles already in range are returned unchanged.
func NormalizeAngle(angle float64) float64 {
	angle = math.Remainder(angle, TwoPi)
	if angle < 0 {
		angle += TwoPi
	}
	// a tiny negative remainder rounds up to exactly 2π
	if angle >= TwoPi {
		angle -= TwoPi
	}
	return angle
}

// DegreesToRadians converts n degrees to radians.
func DegreesToRadians[T Number](n T) float64 {
	return float64(n) * (math.Pi / 180)
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(r float64) float64 {
	return r * (180 / math.Pi)
}

// Distance calculates the Euclidean distance between two 2D points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two 2D points.
// Use this when comparing distances to avoid the sqrt overhead.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}
