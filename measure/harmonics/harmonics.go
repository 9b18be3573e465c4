package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-bass/dsp/core"
)

const (
	defaultMaxHarmonics = 9
	defaultMeasureSize  = 8192
	// captureBins covers the Hann main lobe on either side of a peak.
	captureBins = 2
)

// Errors returned by the analysis functions.
var (
	ErrEmptySignal       = errors.New("harmonics: signal is empty")
	ErrInvalidSampleRate = errors.New("harmonics: sample rate must be positive and finite")
	ErrInvalidFrequency  = errors.New("harmonics: fundamental must lie between DC and Nyquist")
)

// Config holds the analysis parameters.
type Config struct {
	SampleRate    float64
	FundamentalHz float64
	// MaxHarmonics limits the harmonics evaluated above the fundamental.
	// Zero selects 9.
	MaxHarmonics int
	// FFTSize is rounded up to a power of two. Zero uses the signal length.
	FFTSize int
}

// Result holds the measured levels. Harmonics[0] is the second harmonic.
type Result struct {
	FundamentalHz    float64
	FundamentalLevel float64
	THD              float64
	THDdB            float64
	OddHD            float64
	EvenHD           float64
	Harmonics        []float64
}

// Processor filters a buffer in place.
type Processor interface {
	ProcessInPlace(buf []float64)
}

// Measure renders settle+FFTSize samples of a sine of amplitude at
// cfg.FundamentalHz through p and analyzes the last FFTSize of them. A zero
// FFTSize selects 8192.
func Measure(p Processor, cfg Config, amplitude float64, settle int) (Result, error) {
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultMeasureSize
	}

	cfg, err := normalize(cfg, cfg.FFTSize)
	if err != nil {
		return Result{}, err
	}

	settle = max(settle, 0)
	n := settle + cfg.FFTSize
	buf := make([]float64, n)
	step := 2 * math.Pi * cfg.FundamentalHz / cfg.SampleRate

	for i := range buf {
		buf[i] = amplitude * math.Sin(step*float64(i))
	}

	p.ProcessInPlace(buf)

	return Analyze(buf[settle:], cfg)
}

// Analyze measures the harmonic levels of signal.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	cfg, err := normalize(cfg, len(signal))
	if err != nil {
		return Result{}, err
	}

	mag, err := windowedMagnitude(signal, cfg.FFTSize)
	if err != nil {
		return Result{}, err
	}

	binHz := cfg.SampleRate / float64(cfg.FFTSize)
	fundBin := int(math.Round(cfg.FundamentalHz / binHz))
	maxBin := len(mag) - 1

	if fundBin < 1 || fundBin > maxBin {
		return Result{}, fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, cfg.FundamentalHz)
	}

	res := Result{FundamentalHz: float64(fundBin) * binHz}

	res.FundamentalLevel = bandLevel(mag, fundBin)
	if res.FundamentalLevel <= 0 {
		res.THDdB = math.Inf(-1)
		return res, nil
	}

	var sum, odd, even float64

	for k := 2; k <= cfg.MaxHarmonics+1; k++ {
		bin := k * fundBin
		if bin+captureBins > maxBin {
			break
		}

		rel := bandLevel(mag, bin) / res.FundamentalLevel
		res.Harmonics = append(res.Harmonics, rel)

		sum += rel * rel
		if k%2 == 0 {
			even += rel * rel
		} else {
			odd += rel * rel
		}
	}

	res.THD = math.Sqrt(sum)
	res.OddHD = math.Sqrt(odd)
	res.EvenHD = math.Sqrt(even)
	res.THDdB = core.LinearToDB(res.THD)

	return res, nil
}

func normalize(cfg Config, length int) (Config, error) {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}

	if !(cfg.FundamentalHz > 0) || cfg.FundamentalHz >= cfg.SampleRate/2 {
		return cfg, fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, cfg.FundamentalHz)
	}

	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	if cfg.FFTSize <= 0 {
		cfg.FFTSize = length
	}

	cfg.FFTSize = nextPowerOf2(max(cfg.FFTSize, 2))

	return cfg, nil
}

// windowedMagnitude returns |X[k]| for k in [0, fftSize/2] of the
// Hann-windowed, zero-padded signal. Only the first fftSize samples are used.
func windowedMagnitude(signal []float64, fftSize int) ([]float64, error) {
	n := min(len(signal), fftSize)

	frame := periodicHann(signal[:n])

	in := make([]complex128, fftSize)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("harmonics: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("harmonics: fft: %w", err)
	}

	bins := fftSize/2 + 1
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

// periodicHann returns a Hann-windowed copy of x. The periodic window of
// length n is the symmetric window of length n+1 without its last point.
func periodicHann(x []float64) []float64 {
	frame := make([]float64, len(x)+1)
	copy(frame, x)

	return window.Hann(frame)[:len(x)]
}

// bandLevel sums the magnitudes within captureBins of bin.
func bandLevel(mag []float64, bin int) float64 {
	lo := max(bin-captureBins, 0)
	hi := min(bin+captureBins, len(mag)-1)

	return floats.Sum(mag[lo : hi+1])
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
