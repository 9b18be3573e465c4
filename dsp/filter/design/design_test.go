package design

import (
	"math"
	"testing"
)

func TestOnePoleLowpassFormula(t *testing.T) {
	const (
		freq = 80.0
		sr   = 48000.0
	)

	c, ok := OnePoleLowpass(freq, sr)
	if !ok {
		t.Fatal("OnePoleLowpass() ok = false, want true")
	}

	warp := math.Tan(math.Pi * freq / sr)
	if want := warp / (1 + warp); c.In != want {
		t.Fatalf("In = %v, want %v", c.In, want)
	}

	if want := (1 - warp) / (1 + warp); c.Feedback != want {
		t.Fatalf("Feedback = %v, want %v", c.Feedback, want)
	}

	// In and Feedback always sum to one: the filter has unity DC gain.
	if dc := 2 * c.In / (1 - c.Feedback); math.Abs(dc-1) > 1e-12 {
		t.Fatalf("DC gain = %v, want 1", dc)
	}
}

func TestOnePoleLowpassIdempotent(t *testing.T) {
	rates := []float64{22050, 44100, 48000, 96000, 192000}
	freqs := []float64{1, 40, 80, 98.4, 400, 1000, 5000}

	for _, sr := range rates {
		for _, f := range freqs {
			a, okA := OnePoleLowpass(f, sr)
			b, okB := OnePoleLowpass(f, sr)

			if okA != okB || a != b {
				t.Fatalf("OnePoleLowpass(%v, %v) not idempotent: %#v vs %#v", f, sr, a, b)
			}

			if math.Abs(a.Feedback) >= 1 {
				t.Fatalf("OnePoleLowpass(%v, %v) feedback %v outside unit circle", f, sr, a.Feedback)
			}
		}
	}
}

func TestDesignersGuardSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -48000, math.NaN(), math.Inf(1)} {
		if _, ok := OnePoleLowpass(80, sr); ok {
			t.Fatalf("OnePoleLowpass(80, %v) ok = true, want false", sr)
		}

		if _, ok := AllpassBandwidth(80, 7, sr); ok {
			t.Fatalf("AllpassBandwidth(80, 7, %v) ok = true, want false", sr)
		}
	}

	if _, ok := AllpassBandwidth(80, 0, 48000); ok {
		t.Fatal("AllpassBandwidth with q=0 ok = true, want false")
	}
}

func TestAllpassBandwidthSymmetry(t *testing.T) {
	c, ok := AllpassBandwidth(80, 7, 48000)
	if !ok {
		t.Fatal("AllpassBandwidth() ok = false, want true")
	}

	if c.B0 != c.A2 || c.B1 != c.A1 || c.B2 != 1 {
		t.Fatalf("coefficients not all-pass symmetric: %#v", c)
	}

	again, _ := AllpassBandwidth(80, 7, 48000)
	if again != c {
		t.Fatalf("AllpassBandwidth not idempotent: %#v vs %#v", again, c)
	}
}

func TestAllpassBandwidthUnitMagnitude(t *testing.T) {
	const sr = 48000.0

	c, ok := AllpassBandwidth(120, 2, sr)
	if !ok {
		t.Fatal("AllpassBandwidth() ok = false, want true")
	}

	for _, f := range []float64{10, 60, 120, 240, 1000, 10000, 20000} {
		if mag := c.Magnitude(f, sr); math.Abs(mag-1) > 1e-9 {
			t.Fatalf("|H(%v)| = %v, want 1", f, mag)
		}
	}

	if phase := c.Phase(120, sr); math.Abs(math.Abs(phase)-math.Pi) > 1e-9 {
		t.Fatalf("phase at centre = %v, want +-pi", phase)
	}
}
