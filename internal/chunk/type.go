package chunk

import (
	"fmt"
	"unicode/utf8"
)

// TypeSize is the size of a chunk type.
const TypeSize = 4

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// Type is a chunk type.
// The four bytes are always ASCII letters; the case of each letter
// carries a property of the chunk.
// refs: http://www.libpng.org/pub/png/spec/1.2/PNG-Structure.html
type Type struct {
	b [TypeSize]byte
}

// NewType allocates a Type from raw bytes.
func NewType(b [TypeSize]byte) (Type, error) {
	for _, c := range b {
		if !isAlpha(c) {
			return Type{}, ErrInvalidTypeBytes{Bytes: b}
		}
	}
	return Type{b: b}, nil
}

// ParseType allocates a Type from a string.
func ParseType(s string) (Type, error) {
	if len(s) != TypeSize {
		return Type{}, ErrWrongLength{Length: len(s)}
	}
	return NewType([TypeSize]byte{s[0], s[1], s[2], s[3]})
}

// Bytes returns the raw bytes of the type.
func (t Type) Bytes() [TypeSize]byte {
	return t.b
}

// IsCritical returns whether the chunk is critical (first letter uppercase).
func (t Type) IsCritical() bool {
	return isUpper(t.b[0])
}

// IsPublic returns whether the chunk is public (second letter uppercase).
func (t Type) IsPublic() bool {
	return isUpper(t.b[1])
}

// IsReservedBitValid returns whether the reserved bit is valid (third letter uppercase).
func (t Type) IsReservedBitValid() bool {
	return isUpper(t.b[2])
}

// IsSafeToCopy returns whether the chunk is safe to copy (fourth letter lowercase).
func (t Type) IsSafeToCopy() bool {
	return isLower(t.b[3])
}

func (t Type) isAlphabetic() bool {
	for _, c := range t.b {
		if !isAlpha(c) {
			return false
		}
	}
	return true
}

// IsValid returns whether all bytes are letters and the reserved bit is valid.
func (t Type) IsValid() bool {
	return t.isAlphabetic() && t.IsReservedBitValid()
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !utf8.Valid(t.b[:]) {
		return nil, ErrTypeNotText
	}
	return append([]byte(nil), t.b[:]...), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	tmp, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = tmp
	return nil
}

// String implements fmt.Stringer.
func (t Type) String() string {
	buf, err := t.MarshalText()
	if err != nil {
		return fmt.Sprintf("%q", t.b[:])
	}
	return string(buf)
}
