package systems

import "math"

// clampAxis clamps v to [-bound, bound].
func clampAxis(v, bound float64) float64 {
	if v < -bound {
		return -bound
	}
	if v > bound {
		return bound
	}
	return v
}

// sanitizeLoudness maps any reading into [0, 1]. NaN reads as silence.
func sanitizeLoudness(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
