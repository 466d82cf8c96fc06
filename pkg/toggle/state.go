package toggle

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/go-aretha/aretha/pkg/errors"
)

// Default values used when no configuration overrides them.
const (
	DefaultToggle     = true
	DefaultClipRadius = 10.0
)

// encodedStateLen is the size of a State in its binary layout: an int32
// toggle flag followed by a float64 clip radius.
const encodedStateLen = 4 + 8

// State is the persistent part of a toggle: the committed on/off value and
// the clip radius used when drawing. It survives gestures and is what the
// host saves and restores.
type State struct {
	IsOn       bool    `yaml:"toggle"`
	ClipRadius float64 `yaml:"radius"`
}

// DefaultState returns the state of a toggle built without attributes.
func DefaultState() State {
	return State{IsOn: DefaultToggle, ClipRadius: DefaultClipRadius}
}

// ClampRadius returns r limited to the non-negative range.
func ClampRadius(r float64) float64 {
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	return r
}

// MarshalBinary encodes the state as a little-endian int32 flag (0 or 1)
// followed by the float64 radius.
func (s State) MarshalBinary() ([]byte, error) {
	buf := make([]byte, encodedStateLen)
	var flag uint32
	if s.IsOn {
		flag = 1
	}
	binary.LittleEndian.PutUint32(buf[0:4], flag)
	binary.LittleEndian.PutUint64(buf[4:12], math.Float64bits(s.ClipRadius))
	return buf, nil
}

// UnmarshalBinary decodes a state written by MarshalBinary. Any non-zero
// flag reads as on.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) != encodedStateLen {
		return errors.New("toggle.State.UnmarshalBinary", errors.KindState, &errors.DecodeError{
			DataType: "toggle.State",
			Reason:   "want 12 bytes, got " + strconv.Itoa(len(data)),
		})
	}
	s.IsOn = int32(binary.LittleEndian.Uint32(data[0:4])) != 0
	s.ClipRadius = math.Float64frombits(binary.LittleEndian.Uint64(data[4:12]))
	return nil
}
