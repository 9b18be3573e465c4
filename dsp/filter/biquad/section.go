package biquad

// Coefficients holds the transfer function coefficients of a second-order
// section. a0 is normalized to 1 and not stored:
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// State is the Direct Form I history of a Section.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// Section is a single biquad filter with coefficients and internal state.
//
// The zero value has all-zero coefficients and outputs silence. Sections are
// not safe for concurrent use.
type Section struct {
	Coefficients

	state State
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients replaces the coefficients without touching the history,
// so a block-rate coefficient update continues seamlessly from the previous
// block.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	st := &s.state
	y := s.B0*x + s.B1*st.X1 + s.B2*st.X2 - s.A1*st.Y1 - s.A2*st.Y2

	st.X2 = st.X1
	st.X1 = x
	st.Y2 = st.Y1
	st.Y1 = y

	return y
}

// ProcessInPlace filters buf in place. Zero-alloc.
func (s *Section) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears the history to zero.
func (s *Section) Reset() {
	s.state = State{}
}

// State returns the current history.
func (s *Section) State() State {
	return s.state
}

// SetState restores a previously saved history.
func (s *Section) SetState(state State) {
	s.state = state
}

// ImpulseResponse computes n samples of the impulse response h[n] by feeding
// an impulse through the section. The history is saved and restored so the
// call does not disturb a running filter.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	s.Reset()

	ir := make([]float64, n)

	ir[0] = s.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = s.ProcessSample(0)
	}

	s.SetState(saved)

	return ir
}
