package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*freqHz*n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) from a
// fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// Stereo returns a two-channel block holding copies of left and right, in
// the [][]float64 layout the engine processes.
func Stereo(left, right []float64) [][]float64 {
	return [][]float64{Clone(left), Clone(right)}
}

// Clone returns a copy of src.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)

	return out
}

// RMS returns the root-mean-square level of buf, or 0 when buf is empty.
func RMS(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	var sum float64
	for _, v := range buf {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(buf)))
}

// Peak returns the largest absolute sample in buf.
func Peak(buf []float64) float64 {
	var peak float64
	for _, v := range buf {
		peak = math.Max(peak, math.Abs(v))
	}

	return peak
}
