package bass

import (
	"fmt"

	"github.com/cwbudde/algo-bass/dsp/core"
)

// Channels is the number of voices an engine owns.
const Channels = 2

type config struct {
	slope Slope
}

// Option configures an Engine.
type Option func(*config) error

// WithPostFilterSlope selects the post low-pass slope of modes A and B.
func WithPostFilterSlope(slope Slope) Option {
	return func(c *config) error {
		if slope != Slope6dB && slope != Slope12dB {
			return fmt.Errorf("bass: invalid post filter slope: %d", int(slope))
		}

		c.slope = slope

		return nil
	}
}

// Engine renders up to two channels through independent voices. Until
// Prepare succeeds, ProcessBlock leaves audio untouched.
type Engine struct {
	cfg      config
	voices   [Channels]*Voice
	prepared bool
	maxBlock int
}

// New allocates an engine and both voices.
func New(opts ...Option) (*Engine, error) {
	cfg := config{slope: Slope6dB}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	e := &Engine{cfg: cfg}

	for ch := range e.voices {
		v, err := NewVoice(core.DefaultProcessorConfig().SampleRate, cfg.slope)
		if err != nil {
			return nil, err
		}

		e.voices[ch] = v
	}

	return e, nil
}

// Prepare sets the sample rate of both voices and clears their histories.
// maxBlockSamples is a sizing hint only. An invalid sample rate returns an
// error and leaves the engine unchanged.
func (e *Engine) Prepare(sampleRate float64, maxBlockSamples int) error {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithMaxBlockSize(maxBlockSamples),
	)
	if cfg.SampleRate != sampleRate || cfg.Validate() != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	for _, v := range e.voices {
		if err := v.SetSampleRate(sampleRate); err != nil {
			return err
		}

		v.Reset()
	}

	e.maxBlock = cfg.MaxBlockSize
	e.prepared = true

	return nil
}

// Prepared reports whether Prepare has succeeded.
func (e *Engine) Prepared() bool { return e.prepared }

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (e *Engine) SampleRate() float64 {
	if !e.prepared {
		return 0
	}

	return e.voices[0].SampleRate()
}

// MaxBlockSamples returns the block size hint given to Prepare.
func (e *Engine) MaxBlockSamples() int { return e.maxBlock }

// PostFilterSlope returns the configured post low-pass slope.
func (e *Engine) PostFilterSlope() Slope { return e.cfg.slope }

// Voice returns the voice for channel ch, or nil when ch is out of range.
func (e *Engine) Voice(ch int) *Voice {
	if ch < 0 || ch >= Channels {
		return nil
	}

	return e.voices[ch]
}

// ProcessBlock renders the first two channels of buf in place with the
// parameters p. Further channels are left untouched.
func (e *Engine) ProcessBlock(buf [][]float64, p Params) {
	if !e.prepared {
		return
	}

	n := min(len(buf), Channels)
	for ch := range n {
		v := e.voices[ch]
		v.Configure(p)
		v.ProcessInPlace(buf[ch])
	}
}

// Reset clears the histories of both voices.
func (e *Engine) Reset() {
	for _, v := range e.voices {
		v.Reset()
	}
}
