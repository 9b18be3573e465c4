//go:build fastmath

package core

import "github.com/meko-christian/algo-approx"

// ln10Over20 converts a dB value into the natural-log exponent of its gain.
const ln10Over20 = 0.115129254649702284200899572734218210380

// dbToGain computes 10^(db/20) as e^(db*ln(10)/20) using fast approximation.
// Block-rate callers tolerate the approximation error; nothing on the
// per-sample path converts decibels.
func dbToGain(db float64) float64 {
	return approx.FastExp(db * ln10Over20)
}
