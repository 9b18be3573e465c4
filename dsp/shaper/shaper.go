package shaper

import (
	"math"

	"github.com/cwbudde/algo-bass/dsp/core"
)

// Sign returns -1, 0 or +1. Sign(0) and Sign(-0) are 0; NaN maps to 0.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// SoftSaturate maps x through x/(1+|x|), clamped to [-1, 1]. Infinite input
// saturates to the matching rail.
func SoftSaturate(x float64) float64 {
	if math.IsInf(x, 0) {
		return Sign(x)
	}

	return core.Clamp(x/(1+math.Abs(x)), -1, 1)
}

// SignGate returns Sign(x) when |x| exceeds threshold and 0 otherwise.
func SignGate(x, threshold float64) float64 {
	if math.Abs(x) > threshold {
		return Sign(x)
	}

	return 0
}

// PowerCompress returns Sign(x) * min(|x|, 1)^2.
func PowerCompress(x float64) float64 {
	m := math.Min(math.Abs(x), 1)

	return Sign(x) * m * m
}
