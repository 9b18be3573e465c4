package bass

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bass/dsp/filter/biquad"
	"github.com/cwbudde/algo-bass/dsp/filter/onepole"
	"github.com/cwbudde/algo-bass/internal/testutil"
)

// referenceModeA is a direct transcription of the mode A signal chain with a
// one-pole post filter, independent of the filter packages.
func referenceModeA(in []float64, sampleRate float64, p Params) []float64 {
	coeffs := func(freq float64) (float64, float64) {
		w := math.Tan(math.Pi * freq / sampleRate)
		return w / (1 + w), (1 - w) / (1 + w)
	}
	dB := func(db float64) float64 { return math.Pow(10, db/20) }

	la, lb := coeffs(p.FrequencyHz * 1.23)
	pa, pb := coeffs(p.FrequencyHz)

	var (
		lx, ly [4]float64
		last   float64
		px, py float64
	)

	drive := dB(p.Drive * 18)
	pre := dB(1.6)
	post := dB(12)
	volume := dB(p.VolumeDB)

	out := make([]float64, len(in))

	for n, x := range in {
		u := x - 2.0*last
		for i := range 4 {
			y := la*(u+lx[i]) + lb*ly[i]
			lx[i], ly[i] = u, y
			u = y
		}

		last = u

		d := u * drive * pre
		s := math.Max(-1, math.Min(1, d/(1+math.Abs(d))))

		y := pa*(s+px) + pb*py
		px, py = s, y

		out[n] = volume * (p.Mix*(y*post) + (1-p.Mix)*x)
	}

	return out
}

func newTestVoice(t *testing.T, slope Slope) *Voice {
	t.Helper()

	v, err := NewVoice(48000, slope)
	require.NoError(t, err)

	return v
}

func TestNewVoiceRejectsInvalidInput(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewVoice(sr, Slope6dB)
		assert.ErrorIs(t, err, ErrInvalidSampleRate, "sample rate %v", sr)
	}

	_, err := NewVoice(48000, Slope(7))
	assert.Error(t, err)
}

func TestModeAImpulseMatchesReference(t *testing.T) {
	p := Params{FrequencyHz: 80, Drive: 0.5, Mix: 1, VolumeDB: 0, Mode: ModeA}

	v := newTestVoice(t, Slope6dB)
	v.Configure(p)

	in := testutil.Impulse(4800, 0)
	want := referenceModeA(in, 48000, p)

	got := testutil.Clone(in)
	v.ProcessInPlace(got)

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
	assert.Greater(t, testutil.Peak(got), 1e-4, "impulse must excite the chain")
}

func TestModeAReferenceWithDryMix(t *testing.T) {
	p := Params{FrequencyHz: 150, Drive: 1, Mix: 0.3, VolumeDB: -6, Mode: ModeA}

	v := newTestVoice(t, Slope6dB)
	v.Configure(p)

	in := testutil.DeterministicNoise(3, 0.8, 2048)
	want := referenceModeA(in, 48000, p)

	got := testutil.Clone(in)
	v.ProcessInPlace(got)

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestMixEndpoints(t *testing.T) {
	in := testutil.DeterministicNoise(5, 0.5, 1024)
	volume := math.Pow(10, 6.0/20)

	for _, mode := range Modes {
		t.Run(mode.String(), func(t *testing.T) {
			dry := newTestVoice(t, Slope6dB)
			dry.Configure(Params{FrequencyHz: 100, Drive: 0.7, Mix: 0, VolumeDB: 6, Mode: mode})

			out := testutil.Clone(in)
			dry.ProcessInPlace(out)

			for i := range in {
				require.InDelta(t, in[i]*volume, out[i], 1e-15, "index %d", i)
			}

			full := newTestVoice(t, Slope6dB)
			full.Configure(Params{FrequencyHz: 100, Drive: 0.7, Mix: 1, VolumeDB: 6, Mode: mode})

			wet := testutil.Clone(in)
			full.ProcessInPlace(wet)

			half := newTestVoice(t, Slope6dB)
			half.Configure(Params{FrequencyHz: 100, Drive: 0.7, Mix: 0.5, VolumeDB: 6, Mode: mode})

			mixed := testutil.Clone(in)
			half.ProcessInPlace(mixed)

			for i := range in {
				want := 0.5*wet[i] + 0.5*in[i]*volume
				require.InDelta(t, want, mixed[i], 1e-12, "index %d", i)
			}
		})
	}
}

func TestBandpassUnityAtCenter(t *testing.T) {
	const (
		sr     = 48000.0
		warmup = 48000
		span   = 24000
	)

	v := newTestVoice(t, Slope6dB)
	v.Configure(Params{FrequencyHz: 80, Mode: ModeB})

	in := testutil.DeterministicSine(80, sr, 1, warmup+span)
	out := make([]float64, len(in))

	for i, x := range in {
		out[i] = v.bandpass(x)
	}

	assert.InDelta(t, testutil.RMS(in[warmup:]), testutil.RMS(out[warmup:]), 0.01)

	v.Reset()

	far := testutil.DeterministicSine(2000, sr, 1, warmup+span)
	for i, x := range far {
		far[i] = v.bandpass(x)
	}

	assert.Less(t, testutil.RMS(far[warmup:]), 0.05)
}

func TestBandpassSweep(t *testing.T) {
	const (
		sr     = 48000.0
		center = 80.0
		warmup = 48000
		span   = 48000
	)

	gainAt := func(freq float64) float64 {
		v := newTestVoice(t, Slope6dB)
		v.Configure(Params{FrequencyHz: center, Mode: ModeB})

		in := testutil.DeterministicSine(freq, sr, 1, warmup+span)
		out := make([]float64, len(in))

		for i, x := range in {
			out[i] = v.bandpass(x)
		}

		measured := testutil.RMS(out[warmup:]) / testutil.RMS(in[warmup:])
		assert.InDelta(t, v.BandGain(freq), measured, 1e-3, "freq %v", freq)

		return measured
	}

	// Each side runs outward from the center.
	sides := map[string][]float64{
		"below": {center, 70, 60, 50, 40, 30, 20},
		"above": {center, 90, 100, 120, 160, 320, 640, 1280},
	}

	for name, freqs := range sides {
		t.Run(name, func(t *testing.T) {
			prev := gainAt(freqs[0])
			assert.InDelta(t, 1, prev, 1e-3, "center")

			for _, f := range freqs[1:] {
				g := gainAt(f)
				assert.Less(t, g, prev, "gain at %v Hz must fall with distance from the center", f)

				prev = g
			}
		})
	}
}

func TestBandGainBeforeConfigure(t *testing.T) {
	v := &Voice{sampleRate: 48000, allpass: biquad.NewSection(biquad.Coefficients{B0: 1})}
	assert.Zero(t, v.BandGain(80))
}

func TestSlope12dBIsUnityGainCascade(t *testing.T) {
	v := newTestVoice(t, Slope12dB)
	v.Configure(Params{FrequencyHz: 80, Mode: ModeB})

	a, err := onepole.New(48000)
	require.NoError(t, err)
	a.SetCutoff(80)

	b, err := onepole.New(48000)
	require.NoError(t, err)
	b.SetCutoff(80)

	in := testutil.DeterministicNoise(5, 1, 512)
	for i, x := range in {
		want := b.ProcessSample(a.ProcessSample(x))
		require.InDelta(t, want, v.post.ProcessSample(x), 1e-15, "sample %d", i)
	}

	v.post.Reset()

	var dc float64
	for range 48000 {
		dc = v.post.ProcessSample(1)
	}

	assert.InDelta(t, 1, dc, 1e-9, "DC gain")
}

func TestAllpassKeepsMagnitude(t *testing.T) {
	const (
		sr     = 48000.0
		warmup = 48000
		span   = 24000
	)

	for _, freq := range []float64{50, 80, 100, 200, 1000, 4000} {
		v := newTestVoice(t, Slope6dB)
		v.Configure(Params{FrequencyHz: 80, Mode: ModeB})

		in := testutil.DeterministicSine(freq, sr, 0.5, warmup+span)
		out := testutil.Clone(in)
		v.allpass.ProcessInPlace(out)

		assert.InDelta(t, testutil.RMS(in[warmup:]), testutil.RMS(out[warmup:]), 1e-3, "freq %v", freq)
	}
}

func TestModeCKeepsPolarity(t *testing.T) {
	v := newTestVoice(t, Slope6dB)
	v.Configure(Params{FrequencyHz: 80, Drive: 0.5, Mix: 1, Mode: ModeC})

	buf := testutil.DeterministicSine(80, 48000, 0.5, 48000)
	v.ProcessInPlace(buf)

	tail := buf[24000:]
	lo, hi := tail[0], tail[0]

	for _, x := range tail {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	assert.Less(t, lo, -0.05)
	assert.Greater(t, hi, 0.05)
}

func TestZeroInputDecaysInEveryMode(t *testing.T) {
	for _, slope := range []Slope{Slope6dB, Slope12dB} {
		for _, mode := range Modes {
			t.Run(slope.String()+"/"+mode.String(), func(t *testing.T) {
				v := newTestVoice(t, slope)
				v.Configure(Params{FrequencyHz: 80, Drive: 1, Mix: 1, Mode: mode})

				buf := testutil.Impulse(4*48000, 0)
				v.ProcessInPlace(buf)

				testutil.RequireFinite(t, buf)
				assert.Less(t, testutil.Peak(buf[len(buf)-256:]), 1e-9)
			})
		}
	}
}

func TestHotInputStaysFinite(t *testing.T) {
	for _, mode := range Modes {
		v := newTestVoice(t, Slope12dB)
		v.Configure(Params{FrequencyHz: 400, Drive: 1, Mix: 1, VolumeDB: 24, Mode: mode})

		buf := testutil.DeterministicNoise(9, 100, 8192)
		v.ProcessInPlace(buf)

		testutil.RequireFinite(t, buf)
	}
}

func TestConfigureInvalidModeKeepsPrevious(t *testing.T) {
	v := newTestVoice(t, Slope6dB)
	v.Configure(Params{FrequencyHz: 80, Mode: ModeD})
	v.Configure(Params{FrequencyHz: 80, Mode: Mode(42)})

	assert.Equal(t, ModeD, v.Mode())
}

func TestConfigureKeepsHistory(t *testing.T) {
	v := newTestVoice(t, Slope6dB)
	v.Configure(Params{FrequencyHz: 80, Drive: 0.5, Mix: 1, Mode: ModeA})
	v.ProcessInPlace(testutil.DeterministicNoise(1, 0.5, 512))

	before := v.ladder.State()

	v.Configure(Params{FrequencyHz: 120, Drive: 0.9, Mix: 0.2, Mode: ModeB})
	assert.Equal(t, before, v.ladder.State())
}

func TestSetSampleRateRederivesCoefficients(t *testing.T) {
	v := newTestVoice(t, Slope6dB)
	v.Configure(Params{FrequencyHz: 200, Mode: ModeB})

	c48 := v.allpass.Coefficients

	require.NoError(t, v.SetSampleRate(96000))
	assert.NotEqual(t, c48, v.allpass.Coefficients)
	assert.InDelta(t, 200*LadderCutoffRatio, v.ladder.CutoffHz(), 1e-12)
	assert.Equal(t, 96000.0, v.SampleRate())

	assert.ErrorIs(t, v.SetSampleRate(0), ErrInvalidSampleRate)
	assert.Equal(t, 96000.0, v.SampleRate())
}

func TestSlopeString(t *testing.T) {
	assert.Equal(t, "6dB", Slope6dB.String())
	assert.Equal(t, "12dB", Slope12dB.String())
	assert.Equal(t, "Slope(5)", Slope(5).String())
}

func BenchmarkVoiceProcessInPlace(b *testing.B) {
	for _, mode := range Modes {
		b.Run(mode.String(), func(b *testing.B) {
			v, err := NewVoice(48000, Slope6dB)
			if err != nil {
				b.Fatal(err)
			}

			v.Configure(Params{FrequencyHz: 80, Drive: 0.5, Mix: 1, Mode: mode})

			buf := testutil.DeterministicNoise(1, 0.5, 512)

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				v.ProcessInPlace(buf)
			}
		})
	}
}
