package design

import (
	"math"

	"github.com/cwbudde/algo-bass/dsp/filter/biquad"
)

// OnePole holds the coefficient pair of a bilinear one-pole low-pass:
//
//	y[n] = In*(x[n] + x[n-1]) + Feedback*y[n-1]
type OnePole struct {
	In       float64
	Feedback float64
}

// OnePoleLowpass derives one-pole low-pass coefficients for the cutoff freq
// (Hz) using the prewarped bilinear transform warp = tan(pi*freq/sampleRate).
//
// ok is false when sampleRate is not positive and finite; the returned
// coefficients are then zero and must not be applied.
func OnePoleLowpass(freq, sampleRate float64) (c OnePole, ok bool) {
	if !validSampleRate(sampleRate) {
		return OnePole{}, false
	}

	warp := math.Tan(math.Pi * freq / sampleRate)

	return OnePole{
		In:       warp / (1 + warp),
		Feedback: (1 - warp) / (1 + warp),
	}, true
}

// AllpassBandwidth derives a second-order all-pass centred on freq (Hz) whose
// transition bandwidth is freq/q.
//
// The section has unit magnitude everywhere and a phase of -pi at freq, so
// 0.5*(x - allpass(x)) is a band-pass with unity gain at the centre.
//
// ok is false when sampleRate is not positive and finite or q is not
// positive.
func AllpassBandwidth(freq, q, sampleRate float64) (c biquad.Coefficients, ok bool) {
	if !validSampleRate(sampleRate) || !(q > 0) {
		return biquad.Coefficients{}, false
	}

	bandwidth := freq / q
	t := math.Tan(math.Pi * bandwidth / sampleRate)
	cc := (t - 1) / (t + 1)
	d := -math.Cos(2 * math.Pi * freq / sampleRate)

	a1 := d * (1 - cc)
	a2 := -cc

	return biquad.Coefficients{
		B0: a2,
		B1: a1,
		B2: 1,
		A1: a1,
		A2: a2,
	}, true
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsInf(sampleRate, 0)
}
