package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-bass/dsp/core"
)

// Errors returned by Measure.
var (
	ErrInvalidSize       = errors.New("response: size must be a power of two >= 2")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive and finite")
	ErrInvalidAmplitude  = errors.New("response: amplitude must be positive and finite")
)

// Processor filters a buffer in place.
type Processor interface {
	ProcessInPlace(buf []float64)
}

// Response is a measured magnitude response.
type Response struct {
	SampleRate float64
	// Impulse is the captured impulse response, normalized by the amplitude.
	Impulse []float64
	// Magnitude holds linear magnitudes for bins 0 to Size/2.
	Magnitude []float64
}

// Measure renders an impulse of the given amplitude through p and returns its
// magnitude response. size is the capture length and FFT size.
func Measure(p Processor, sampleRate float64, size int, amplitude float64) (*Response, error) {
	if size < 2 || bits.OnesCount(uint(size)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if !(amplitude > 0) || math.IsInf(amplitude, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmplitude, amplitude)
	}

	impulse := make([]float64, size)
	impulse[0] = amplitude
	p.ProcessInPlace(impulse)

	floats.Scale(1/amplitude, impulse)

	mag, err := magnitudeSpectrum(impulse)
	if err != nil {
		return nil, err
	}

	return &Response{
		SampleRate: sampleRate,
		Impulse:    impulse,
		Magnitude:  mag,
	}, nil
}

func magnitudeSpectrum(ir []float64) ([]float64, error) {
	n := len(ir)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// Size returns the FFT size.
func (r *Response) Size() int { return len(r.Impulse) }

// Bins returns the number of magnitude bins.
func (r *Response) Bins() int { return len(r.Magnitude) }

// BinWidth returns the frequency spacing of the bins in Hz.
func (r *Response) BinWidth() float64 { return r.SampleRate / float64(r.Size()) }

// FrequencyAt returns the center frequency of bin in Hz.
func (r *Response) FrequencyAt(bin int) float64 {
	return float64(bin) * r.BinWidth()
}

// MagnitudeAt returns the linearly interpolated magnitude at freq. Frequencies
// outside [0, Nyquist] are clamped to the edge bins.
func (r *Response) MagnitudeAt(freq float64) float64 {
	pos := freq / r.BinWidth()
	last := float64(r.Bins() - 1)

	switch {
	case !(pos > 0):
		return r.Magnitude[0]
	case pos >= last:
		return r.Magnitude[r.Bins()-1]
	}

	lo := int(pos)
	frac := pos - float64(lo)

	return r.Magnitude[lo]*(1-frac) + r.Magnitude[lo+1]*frac
}

// MagnitudeDBAt returns MagnitudeAt(freq) in decibels.
func (r *Response) MagnitudeDBAt(freq float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(freq))
}

// Peak returns the frequency and level in dB of the loudest bin.
func (r *Response) Peak() (freq, db float64) {
	idx := floats.MaxIdx(r.Magnitude)
	return r.FrequencyAt(idx), core.LinearToDB(r.Magnitude[idx])
}
