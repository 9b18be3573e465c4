//go:build !fastmath

package core

import "math"

// dbToGain computes 10^(db/20) using standard library math.
func dbToGain(db float64) float64 {
	return math.Pow(10, db/20)
}
