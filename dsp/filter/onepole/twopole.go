package onepole

import "github.com/cwbudde/algo-bass/dsp/filter/design"

// TwoPole is a 12 dB/octave low-pass built from two one-pole recurrences in
// series. Both share one coefficient pair and keep independent histories.
type TwoPole struct {
	sampleRate float64
	coeffs     Coefficients
	state      [2]State
}

// NewTwoPole returns a two-pole stage for sampleRate.
func NewTwoPole(sampleRate float64) (*TwoPole, error) {
	s := &TwoPole{coeffs: defaultCoefficients}
	if err := s.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return s, nil
}

// SampleRate returns the sample rate in Hz, or 0 if none has been set.
func (s *TwoPole) SampleRate() float64 { return s.sampleRate }

// Coefficients returns the coefficients shared by both poles.
func (s *TwoPole) Coefficients() Coefficients { return s.coeffs }

// SetSampleRate stores the sample rate used by later SetCutoff calls.
func (s *TwoPole) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	s.sampleRate = sampleRate

	return nil
}

// SetCutoff derives coefficients for freq (Hz); a no-op without sample rate.
func (s *TwoPole) SetCutoff(freq float64) {
	if c, ok := design.OnePoleLowpass(freq, s.sampleRate); ok {
		s.coeffs = c
	}
}

// SetCoefficients installs precomputed coefficients.
func (s *TwoPole) SetCoefficients(c Coefficients) {
	s.coeffs = c
}

// ProcessSample filters one sample through both poles.
func (s *TwoPole) ProcessSample(x float64) float64 {
	in, fb := s.coeffs.In, s.coeffs.Feedback

	first := &s.state[0]
	y1 := in*(x+first.LastInput) + fb*first.LastOutput
	first.LastInput = x
	first.LastOutput = y1

	second := &s.state[1]
	y2 := in*(y1+second.LastInput) + fb*second.LastOutput
	second.LastInput = y1
	second.LastOutput = y2

	return y2
}

// ProcessInPlace filters buf in place.
func (s *TwoPole) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears both histories.
func (s *TwoPole) Reset() {
	s.state = [2]State{}
}

// State returns a copy of both histories, first pole first.
func (s *TwoPole) State() [2]State {
	return s.state
}

// SetState restores saved histories.
func (s *TwoPole) SetState(state [2]State) {
	s.state = state
}
