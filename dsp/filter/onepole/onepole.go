package onepole

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-bass/dsp/filter/design"
)

// Coefficients is the bilinear one-pole coefficient pair.
type Coefficients = design.OnePole

// defaultCoefficients is what a stage holds before a cutoff has been derived.
var defaultCoefficients = Coefficients{In: 1, Feedback: 0}

// State is the history of one one-pole recurrence.
type State struct {
	LastInput  float64
	LastOutput float64
}

// Section is a single-pole IIR low-pass:
//
//	y[n] = In*(x[n] + x[n-1]) + Feedback*y[n-1]
//
// It is stable whenever |Feedback| < 1, which holds for every cutoff in
// (0, sampleRate/2).
type Section struct {
	sampleRate float64
	coeffs     Coefficients
	state      State
}

// New returns a one-pole stage for sampleRate. A non-positive sample rate
// is an error.
func New(sampleRate float64) (*Section, error) {
	s := &Section{coeffs: defaultCoefficients}
	if err := s.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return s, nil
}

// SampleRate returns the sample rate in Hz, or 0 if none has been set.
func (s *Section) SampleRate() float64 { return s.sampleRate }

// Coefficients returns the current coefficients.
func (s *Section) Coefficients() Coefficients { return s.coeffs }

// SetSampleRate stores the sample rate used by later SetCutoff calls.
// Coefficients and history are left untouched.
func (s *Section) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	s.sampleRate = sampleRate

	return nil
}

// SetCutoff derives coefficients for freq (Hz). Without a sample rate the
// call is a no-op and the previous coefficients stay in place.
func (s *Section) SetCutoff(freq float64) {
	if c, ok := design.OnePoleLowpass(freq, s.sampleRate); ok {
		s.coeffs = c
	}
}

// SetCoefficients installs precomputed coefficients.
func (s *Section) SetCoefficients(c Coefficients) {
	s.coeffs = c
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.coeffs.In*(x+s.state.LastInput) + s.coeffs.Feedback*s.state.LastOutput
	s.state.LastInput = x
	s.state.LastOutput = y

	return y
}

// ProcessInPlace filters buf in place.
func (s *Section) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears the history.
func (s *Section) Reset() {
	s.state = State{}
}

// State returns a copy of the history.
func (s *Section) State() State {
	return s.state
}

// SetState restores a saved history.
func (s *Section) SetState(state State) {
	s.state = state
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("onepole: sample rate must be positive and finite: %v", sampleRate)
	}

	return nil
}
