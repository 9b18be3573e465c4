package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// passthrough returns coefficients for a unity gain passthrough (B0=1, all else 0).
func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}

	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}

	if st := s.State(); st != (State{}) {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(passthrough())

	input := []float64{1, 0, -1, 0.5, 0.25}
	for i, x := range input {
		y := s.ProcessSample(x)
		if !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DirectFormI(t *testing.T) {
	// Hand-traced with B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04, x=[1,0,0,0]:
	//
	// n=0: y = 0.25
	// n=1: y = 0.5 + 0.2*0.25 = 0.55
	// n=2: y = 0.25 + 0.2*0.55 - 0.04*0.25 = 0.35
	// n=3: y = 0.2*0.35 - 0.04*0.55 = 0.048
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	s := NewSection(c)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}

		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("n=%d: got %v, want %v", i, y, w)
		}
	}
}

func TestHistoryShift(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})

	s.ProcessSample(3)
	s.ProcessSample(4)

	want := State{X1: 4, X2: 3, Y1: 4, Y2: 3}
	if got := s.State(); got != want {
		t.Fatalf("State() = %+v, want %+v", got, want)
	}
}

func TestSetCoefficientsKeepsHistory(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.5, B1: 0.5})
	s.ProcessSample(1)

	before := s.State()
	s.SetCoefficients(Coefficients{B0: 0.1, A1: -0.5})

	if s.State() != before {
		t.Fatal("SetCoefficients modified history")
	}
}

func TestProcessInPlaceMatchesSample(t *testing.T) {
	c := Coefficients{B0: -0.3, B1: 0.2, B2: 1, A1: 0.2, A2: -0.3}
	a := NewSection(c)
	b := NewSection(c)

	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = math.Sin(2 * math.Pi * float64(i) / 13)
	}

	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = a.ProcessSample(x)
	}

	b.ProcessInPlace(buf)

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("sample %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestResetClearsState(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.5, A1: -0.5})
	s.ProcessSample(1)
	s.Reset()

	if s.State() != (State{}) {
		t.Fatalf("state after Reset = %+v, want zero", s.State())
	}
}

func TestAllpassDecaysToZero(t *testing.T) {
	// Stable all-pass: zero input after excitation must die out.
	c := Coefficients{B0: 0.9, B1: -1.8, B2: 1, A1: -1.8, A2: 0.9}
	if !c.Stable() {
		t.Fatal("test coefficients unexpectedly unstable")
	}

	s := NewSection(c)
	for i := range 32 {
		s.ProcessSample(math.Sin(float64(i)))
	}

	var last float64
	for range 20000 {
		last = s.ProcessSample(0)
	}

	if math.Abs(last) > 1e-9 {
		t.Fatalf("tail = %v, want decay toward 0", last)
	}
}
