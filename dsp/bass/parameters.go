package bass

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-bass/dsp/core"
)

// Parameter ranges and defaults.
const (
	MinFrequencyHz     = 40.0
	MaxFrequencyHz     = 400.0
	defaultFrequencyHz = 80.0

	MinDrive     = 0.0
	MaxDrive     = 1.0
	defaultDrive = 0.5

	MinMix     = 0.0
	MaxMix     = 1.0
	defaultMix = 1.0

	MinVolumeDB     = -24.0
	MaxVolumeDB     = 24.0
	defaultVolumeDB = 0.0
)

// Range describes the accepted interval and default of one parameter.
type Range struct {
	Min, Max, Default float64
}

// Clamp limits v to the range. NaN resolves to the default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}

	return core.Clamp(v, r.Min, r.Max)
}

// Ranges of the stored parameters.
var (
	FrequencyRange = Range{Min: MinFrequencyHz, Max: MaxFrequencyHz, Default: defaultFrequencyHz}
	DriveRange     = Range{Min: MinDrive, Max: MaxDrive, Default: defaultDrive}
	MixRange       = Range{Min: MinMix, Max: MaxMix, Default: defaultMix}
	VolumeRange    = Range{Min: MinVolumeDB, Max: MaxVolumeDB, Default: defaultVolumeDB}
)

// atomicFloat stores a float64 as its bit pattern.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Parameters is a lock-free parameter store shared between a control thread
// and the render thread. Every setter clamps into the parameter's range.
// Snapshot performs only atomic loads; fields may tear relative to each other
// but never block.
type Parameters struct {
	frequency atomicFloat
	drive     atomicFloat
	mix       atomicFloat
	volume    atomicFloat
	mode      atomic.Uint32
}

// NewParameters returns a store holding the defaults.
func NewParameters() *Parameters {
	p := &Parameters{}
	p.Reset()

	return p
}

// Reset restores every parameter to its default.
func (p *Parameters) Reset() {
	p.Set(DefaultParams())
}

// Set stores all fields of v, clamped. An invalid mode leaves the stored
// mode unchanged.
func (p *Parameters) Set(v Params) {
	p.SetFrequency(v.FrequencyHz)
	p.SetDrive(v.Drive)
	p.SetMix(v.Mix)
	p.SetVolumeDB(v.VolumeDB)
	_ = p.SetMode(v.Mode)
}

// SetFrequency stores the center frequency in Hz.
func (p *Parameters) SetFrequency(hz float64) { p.frequency.Store(FrequencyRange.Clamp(hz)) }

// SetDrive stores the normalized drive.
func (p *Parameters) SetDrive(drive float64) { p.drive.Store(DriveRange.Clamp(drive)) }

// SetMix stores the wet proportion.
func (p *Parameters) SetMix(mix float64) { p.mix.Store(MixRange.Clamp(mix)) }

// SetVolumeDB stores the output trim in decibels.
func (p *Parameters) SetVolumeDB(db float64) { p.volume.Store(VolumeRange.Clamp(db)) }

// SetMode stores the processing mode. Invalid modes are rejected.
func (p *Parameters) SetMode(m Mode) error {
	if !m.Valid() {
		return ErrInvalidMode
	}

	p.mode.Store(uint32(m))

	return nil
}

// Frequency returns the stored center frequency in Hz.
func (p *Parameters) Frequency() float64 { return p.frequency.Load() }

// Drive returns the stored normalized drive.
func (p *Parameters) Drive() float64 { return p.drive.Load() }

// Mix returns the stored wet proportion.
func (p *Parameters) Mix() float64 { return p.mix.Load() }

// VolumeDB returns the stored output trim.
func (p *Parameters) VolumeDB() float64 { return p.volume.Load() }

// Mode returns the stored mode.
func (p *Parameters) Mode() Mode { return Mode(p.mode.Load()) }

// Snapshot returns the current values for one block.
func (p *Parameters) Snapshot() Params {
	return Params{
		FrequencyHz: p.frequency.Load(),
		Drive:       p.drive.Load(),
		Mix:         p.mix.Load(),
		VolumeDB:    p.volume.Load(),
		Mode:        Mode(p.mode.Load()),
	}
}
