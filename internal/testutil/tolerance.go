package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireSliceNearlyEqual stops the test when got and want differ in length
// or any pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	require.Len(t, got, len(want), "length mismatch")

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			require.FailNowf(t, "slice mismatch",
				"index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite stops the test at the first NaN or Inf in data.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			require.FailNowf(t, "non-finite sample", "index %d: %v", i, v)
		}
	}
}

// AssertWithin reports every sample outside [lo, hi] and returns false when
// any was found.
func AssertWithin(t testing.TB, data []float64, lo, hi float64) bool {
	t.Helper()

	ok := true

	for i, v := range data {
		if !(v >= lo && v <= hi) {
			ok = assert.Failf(t, "sample out of range",
				"index %d: %v not in [%v, %v]", i, v, lo, hi)
		}
	}

	return ok
}

// MaxAbsDiff returns the largest absolute difference between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0

	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}

	return maxDiff, nil
}
