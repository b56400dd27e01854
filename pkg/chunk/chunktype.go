package chunk

import (
	"fmt"

	"github.com/beam-cloud/stego/pkg/common"
)

// Type is the 4-byte chunk type code. Each byte must be an ASCII
// letter; the case of each byte carries the chunk's classification
// bits (criticality, visibility, reserved, copy safety).
type Type struct {
	data [4]byte
}

func isValidTypeByte(b byte) bool {
	return (b >= 65 && b <= 90) || (b >= 97 && b <= 122)
}

// TypeFromBytes validates b and returns the corresponding Type.
func TypeFromBytes(b []byte) (Type, error) {
	if len(b) != 4 {
		return Type{}, fmt.Errorf("%w: got %d", common.ErrTypeLength, len(b))
	}

	for i, c := range b {
		if !isValidTypeByte(c) {
			return Type{}, fmt.Errorf("%w: byte %d is 0x%02x", common.ErrTypeByte, i, c)
		}
	}

	var t Type
	copy(t.data[:], b)
	return t, nil
}

// TypeFromString validates a 4-character ASCII string such as "RuSt".
func TypeFromString(s string) (Type, error) {
	return TypeFromBytes([]byte(s))
}

// Bytes returns a copy of the underlying 4 bytes.
func (t Type) Bytes() [4]byte {
	return t.data
}

// IsCritical reports whether the chunk is required for decoding
// (first byte uppercase).
func (t Type) IsCritical() bool {
	return t.data[0] >= 'A' && t.data[0] <= 'Z'
}

// IsPublic reports whether the type is publicly registered
// (second byte uppercase).
func (t Type) IsPublic() bool {
	return t.data[1] >= 'A' && t.data[1] <= 'Z'
}

// IsReservedBitValid reports whether the reserved bit conforms to the
// current format version (third byte uppercase).
func (t Type) IsReservedBitValid() bool {
	return t.data[2] >= 'A' && t.data[2] <= 'Z'
}

// IsValid is an alias for IsReservedBitValid.
func (t Type) IsValid() bool {
	return t.IsReservedBitValid()
}

// IsSafeToCopy reports whether editors may copy the chunk without
// understanding it (fourth byte lowercase).
func (t Type) IsSafeToCopy() bool {
	return t.data[3] >= 'a' && t.data[3] <= 'z'
}

func (t Type) String() string {
	return string(t.data[:])
}
