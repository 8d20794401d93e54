package financial

import "math"

// safeRatio divides a by b, returning 0 when b is zero or the result is
// not a finite number.
func safeRatio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	r := a / b
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
