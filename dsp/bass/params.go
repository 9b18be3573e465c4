package bass

// Params is the parameter snapshot a voice consumes once per block. Values are
// used as given; range enforcement belongs to the caller (see [Parameters]).
type Params struct {
	// FrequencyHz is the center frequency of the enhanced band.
	FrequencyHz float64
	// Drive is the normalized drive amount; 1 maps to +18 dB.
	Drive float64
	// Mix is the wet proportion, 0 for dry only and 1 for wet only.
	Mix float64
	// VolumeDB is the output trim in decibels.
	VolumeDB float64
	// Mode selects the processing topology.
	Mode Mode
}

// DefaultParams returns the factory defaults: 80 Hz, half drive, fully wet,
// unity volume, mode A.
func DefaultParams() Params {
	return Params{
		FrequencyHz: defaultFrequencyHz,
		Drive:       defaultDrive,
		Mix:         defaultMix,
		VolumeDB:    defaultVolumeDB,
		Mode:        ModeA,
	}
}
