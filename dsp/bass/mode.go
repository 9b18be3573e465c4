package bass

import (
	"fmt"
	"strings"
)

// Mode selects the filter and shaper topology of a voice.
type Mode uint8

const (
	// ModeA runs the resonant ladder as pre-filter, soft-saturates and
	// smooths with the post low-pass.
	ModeA Mode = iota
	// ModeB band-passes around the center frequency, soft-saturates and
	// smooths with the post low-pass.
	ModeB
	// ModeC band-passes, gates to a square wave and filters with the
	// resonant ladder.
	ModeC
	// ModeD band-passes, squares the magnitude and filters with the resonant
	// ladder.
	ModeD

	numModes
)

// Modes lists every valid mode in order.
var Modes = [...]Mode{ModeA, ModeB, ModeC, ModeD}

// Valid reports whether m is one of ModeA to ModeD.
func (m Mode) Valid() bool {
	return m < numModes
}

// String returns "A" to "D", or a diagnostic form for invalid values.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}

	return string(rune('A' + m))
}

// ParseMode parses a mode letter, case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ModeA, nil
	case "B":
		return ModeB, nil
	case "C":
		return ModeC, nil
	case "D":
		return ModeD, nil
	default:
		return ModeA, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so modes can be decoded
// from flags and config files.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(m))
	}

	return []byte(m.String()), nil
}
