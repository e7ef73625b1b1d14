package mathutil

import "golang.org/x/exp/constraints"

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Min returns the smaller of two values (search: math-helpers).
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two values (search: math-helpers).
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to the closed range [lo, hi] (search: math-helpers).
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs returns the absolute value of x (search: math-helpers).
func Abs[T Number](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0, or 1 based on sign (search: math-helpers).
func Sign[T Number](x T) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
