package bridge

import "math"

// NormalizeLegacyPiston maps a piston value stored on the three-segment
// curve used before bridge version 8 to the current representation.
func NormalizeLegacyPiston(raw float32) float32 {
	switch {
	case raw < 0.25:
		return lerp(1, 0.5, clamp01(raw/0.25))
	case raw > 0.75:
		return lerp(0.5, 1, clamp01((raw-0.75)/0.25))
	default:
		return lerp(0, 0.5, clamp01(abs32(raw-0.5)/0.25))
	}
}

// lerp rounds the product before the add; the conversion keeps the
// compiler from fusing the two into one FMA.
func lerp(a, b, t float32) float32 {
	return a + float32((b-a)*t)
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
