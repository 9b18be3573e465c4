package ladder

import (
	"fmt"

	"github.com/cwbudde/algo-bass/dsp/core"
	"github.com/cwbudde/algo-bass/dsp/filter/onepole"
)

// Stages is the number of cascaded one-pole stages.
const Stages = 4

// State contains the ladder's full history for save/restore workflows.
type State struct {
	Stage      [Stages]onepole.State
	LastOutput float64
}

// Filter is a four-pole ladder low-pass with output-to-input resonance
// feedback. Each stage keeps its own history. Not safe for concurrent use.
type Filter struct {
	sampleRate float64
	cutoffHz   float64
	resonance  float64

	stages     [Stages]onepole.Section
	lastOutput float64
}

// New constructs a ladder for sampleRate with zero resonance.
func New(sampleRate float64) (*Filter, error) {
	f := &Filter{}
	for i := range f.stages {
		f.stages[i].SetCoefficients(onepole.Coefficients{In: 1})
	}

	if err := f.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CutoffHz returns the last cutoff applied with SetCutoff.
func (f *Filter) CutoffHz() float64 { return f.cutoffHz }

// Resonance returns the feedback gain used by ProcessSample.
func (f *Filter) Resonance() float64 { return f.resonance }

// SetSampleRate updates the sample rate of all stages. Coefficients are
// re-derived on the next SetCutoff.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("ladder: sample rate must be positive and finite: %v", sampleRate)
	}

	for i := range f.stages {
		if err := f.stages[i].SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	f.sampleRate = sampleRate

	return nil
}

// SetCutoff sets the cutoff of all four stages. Without a sample rate this
// is a no-op.
func (f *Filter) SetCutoff(freq float64) {
	if f.sampleRate <= 0 {
		return
	}

	f.cutoffHz = freq
	for i := range f.stages {
		f.stages[i].SetCutoff(freq)
	}
}

// SetResonance sets the feedback gain used by ProcessSample.
func (f *Filter) SetResonance(resonance float64) {
	f.resonance = resonance
}

// ProcessSample filters one sample with the stored resonance.
func (f *Filter) ProcessSample(x float64) float64 {
	return f.ProcessResonant(x, f.resonance)
}

// ProcessResonant filters one sample with feedback gain k for this sample
// only; the stored resonance is not changed. Callers use it to bias the
// feedback per processing mode.
func (f *Filter) ProcessResonant(x, k float64) float64 {
	y := x - k*f.lastOutput
	for i := range f.stages {
		y = f.stages[i].ProcessSample(y)
	}

	f.lastOutput = y

	return y
}

// ProcessInPlace filters buf in place with the stored resonance.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessResonant(x, f.resonance)
	}
}

// Reset clears all stage histories and the feedback memory.
func (f *Filter) Reset() {
	for i := range f.stages {
		f.stages[i].Reset()
	}

	f.lastOutput = 0
}

// State returns a copy of the current history.
func (f *Filter) State() State {
	var s State
	for i := range f.stages {
		s.Stage[i] = f.stages[i].State()
	}

	s.LastOutput = f.lastOutput

	return s
}

// SetState restores a saved history.
func (f *Filter) SetState(s State) error {
	if !stateIsFinite(s) {
		return fmt.Errorf("ladder: state contains NaN or Inf")
	}

	for i := range f.stages {
		f.stages[i].SetState(s.Stage[i])
	}

	f.lastOutput = s.LastOutput

	return nil
}

func stateIsFinite(s State) bool {
	for _, st := range s.Stage {
		if !core.IsFinite(st.LastInput) || !core.IsFinite(st.LastOutput) {
			return false
		}
	}

	return core.IsFinite(s.LastOutput)
}
