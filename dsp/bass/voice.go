package bass

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-bass/dsp/core"
	"github.com/cwbudde/algo-bass/dsp/filter/biquad"
	"github.com/cwbudde/algo-bass/dsp/filter/design"
	"github.com/cwbudde/algo-bass/dsp/filter/ladder"
	"github.com/cwbudde/algo-bass/dsp/filter/onepole"
	"github.com/cwbudde/algo-bass/dsp/shaper"
)

const (
	// LadderCutoffRatio places the ladder's resonance peak near the center
	// frequency.
	LadderCutoffRatio = 1.23
	// LadderFeedback is the ladder resonance used in every mode.
	LadderFeedback = 2.0
	// BandQ is the quality factor of the band-pass all-pass.
	BandQ = 7.0
	// GateThreshold is the sign-gate threshold of mode C.
	GateThreshold = 0.1
	// MaxDriveDB is the drive gain at Drive == 1.
	MaxDriveDB = 18.0

	modeAPreGainDB  = 1.6
	modeAPostGainDB = 12.0
	modeBPostGainDB = 18.0
	modeDPostGainDB = 6.0
)

// Slope selects the post low-pass used by modes A and B.
type Slope int

const (
	// Slope6dB is a single bilinear one-pole.
	Slope6dB Slope = iota
	// Slope12dB runs two identical bilinear one-poles in series. DC gain
	// stays at unity, so it only steepens the rolloff above the cutoff.
	Slope12dB
)

// String returns "6dB" or "12dB".
func (s Slope) String() string {
	switch s {
	case Slope6dB:
		return "6dB"
	case Slope12dB:
		return "12dB"
	default:
		return fmt.Sprintf("Slope(%d)", int(s))
	}
}

type lowpass interface {
	SetSampleRate(sampleRate float64) error
	SetCutoff(freq float64)
	ProcessSample(x float64) float64
	Reset()
}

// gains holds the block-rate values derived by Configure.
type gains struct {
	drive    float64
	pre      float64
	post     float64
	mix      float64
	dry      float64
	volume   float64
	mode     Mode
	centerHz float64
}

// Voice renders one channel. All filter histories persist across Configure
// calls and mode switches; only Reset clears them.
type Voice struct {
	sampleRate float64
	slope      Slope

	ladder  *ladder.Filter
	allpass *biquad.Section
	post    lowpass

	g gains
}

// NewVoice returns a voice for sampleRate configured with DefaultParams.
func NewVoice(sampleRate float64, slope Slope) (*Voice, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	lad, err := ladder.New(sampleRate)
	if err != nil {
		return nil, err
	}

	var post lowpass

	switch slope {
	case Slope6dB:
		post, err = onepole.New(sampleRate)
	case Slope12dB:
		post, err = onepole.NewTwoPole(sampleRate)
	default:
		return nil, fmt.Errorf("bass: invalid post filter slope: %d", int(slope))
	}

	if err != nil {
		return nil, err
	}

	v := &Voice{
		sampleRate: sampleRate,
		slope:      slope,
		ladder:     lad,
		allpass:    biquad.NewSection(biquad.Coefficients{B0: 1}),
		post:       post,
	}
	v.Configure(DefaultParams())

	return v, nil
}

// SampleRate returns the sample rate in Hz.
func (v *Voice) SampleRate() float64 { return v.sampleRate }

// Slope returns the post low-pass slope.
func (v *Voice) Slope() Slope { return v.slope }

// Mode returns the mode set by the last Configure.
func (v *Voice) Mode() Mode { return v.g.mode }

// SetSampleRate changes the sample rate and re-derives coefficients for the
// current center frequency. Histories are kept.
func (v *Voice) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if err := v.ladder.SetSampleRate(sampleRate); err != nil {
		return err
	}

	if err := v.post.SetSampleRate(sampleRate); err != nil {
		return err
	}

	v.sampleRate = sampleRate
	v.setCenter(v.g.centerHz)

	return nil
}

// Configure applies a parameter snapshot. It is called once per block and
// never touches filter histories. An invalid mode keeps the previous mode.
func (v *Voice) Configure(p Params) {
	if p.FrequencyHz != v.g.centerHz {
		v.setCenter(p.FrequencyHz)
	}

	mode := v.g.mode
	if p.Mode.Valid() {
		mode = p.Mode
	}

	v.g.mode = mode
	v.g.drive = core.DBToLinear(p.Drive * MaxDriveDB)
	v.g.pre = 1
	v.g.post = 1

	switch mode {
	case ModeA:
		v.g.pre = core.DBToLinear(modeAPreGainDB)
		v.g.post = core.DBToLinear(modeAPostGainDB)
	case ModeB:
		v.g.post = core.DBToLinear(modeBPostGainDB)
	case ModeC:
	case ModeD:
		v.g.post = core.DBToLinear(modeDPostGainDB)
	}

	v.g.mix = p.Mix
	v.g.dry = 1 - p.Mix
	v.g.volume = core.DBToLinear(p.VolumeDB)
}

// setCenter derives every coefficient set from the center frequency. Invalid
// inputs keep the previous coefficients.
func (v *Voice) setCenter(freq float64) {
	v.g.centerHz = freq

	v.post.SetCutoff(freq)
	v.ladder.SetCutoff(freq * LadderCutoffRatio)

	if c, ok := design.AllpassBandwidth(freq, BandQ, v.sampleRate); ok {
		v.allpass.SetCoefficients(c)
	}
}

// ProcessSample renders one sample.
func (v *Voice) ProcessSample(in float64) float64 {
	var wet float64

	switch v.g.mode {
	case ModeA:
		x := v.ladder.ProcessResonant(in, LadderFeedback) * v.g.drive * v.g.pre
		wet = v.post.ProcessSample(shaper.SoftSaturate(x))
	case ModeB:
		x := v.bandpass(in) * v.g.drive
		wet = v.post.ProcessSample(shaper.SoftSaturate(x))
	case ModeC:
		x := v.bandpass(in) * v.g.drive
		wet = v.ladder.ProcessResonant(shaper.SignGate(x, GateThreshold), LadderFeedback)
	case ModeD:
		x := v.bandpass(in) * v.g.drive
		wet = v.ladder.ProcessResonant(shaper.PowerCompress(x), LadderFeedback)
	}

	return v.g.volume * (v.g.mix*(wet*v.g.post) + v.g.dry*in)
}

// ProcessInPlace renders buf in place.
func (v *Voice) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = v.ProcessSample(x)
	}
}

// Reset clears every filter history.
func (v *Voice) Reset() {
	v.ladder.Reset()
	v.allpass.Reset()
	v.post.Reset()
}

// BandGain returns the small-signal gain of the band isolation stage of
// modes B to D at freq. It is 1 at the configured center frequency and 0
// before the first Configure.
func (v *Voice) BandGain(freq float64) float64 {
	return cmplx.Abs(v.allpass.Coefficients.ComplementResponse(freq, v.sampleRate))
}

// bandpass isolates the band around the center frequency as half the
// difference between the input and its all-passed copy.
func (v *Voice) bandpass(in float64) float64 {
	return 0.5 * (in - v.allpass.ProcessSample(in))
}
