package chunk

import (
	"errors"
	"fmt"
)

// ErrDataNotText is returned when the chunk data is not valid UTF-8.
var ErrDataNotText = errors.New("chunk data is not valid UTF-8")

// ErrTypeNotText is returned when a chunk type cannot be rendered as text.
var ErrTypeNotText = errors.New("chunk type is not valid UTF-8")

// ErrBufferTooSmall is returned by MarshalTo when the destination buffer is too small.
var ErrBufferTooSmall = errors.New("buffer is too small")

// ErrWrongLength is returned when a chunk type string is not 4 bytes long.
type ErrWrongLength struct {
	Length int
}

// Error implements the error interface.
func (e ErrWrongLength) Error() string {
	return fmt.Sprintf("chunk type must be %d bytes long, got %d", TypeSize, e.Length)
}

// ErrInvalidTypeBytes is returned when a chunk type contains non-alphabetic bytes.
type ErrInvalidTypeBytes struct {
	Bytes [TypeSize]byte
}

// Error implements the error interface.
func (e ErrInvalidTypeBytes) Error() string {
	return fmt.Sprintf("chunk type contains non-alphabetic bytes: %v", e.Bytes)
}

// ErrTooShort is returned when a buffer is too short to contain a chunk.
type ErrTooShort struct {
	Length int
}

// Error implements the error interface.
func (e ErrTooShort) Error() string {
	return fmt.Sprintf("buffer is too short to contain a chunk (%d bytes)", e.Length)
}

// ErrDataExceedsMaximum is returned when chunk data is longer than MaxDataLength.
type ErrDataExceedsMaximum struct {
	Length int
}

// Error implements the error interface.
func (e ErrDataExceedsMaximum) Error() string {
	return fmt.Sprintf("chunk data length (%d) exceeds maximum (%d)", e.Length, MaxDataLength)
}

// ErrLengthMismatch is returned when the length field disagrees with the data.
type ErrLengthMismatch struct {
	Declared uint32
	Actual   int
}

// Error implements the error interface.
func (e ErrLengthMismatch) Error() string {
	return fmt.Sprintf("chunk length field (%d) does not match data length (%d)", e.Declared, e.Actual)
}

// ErrChecksumMismatch is returned when the CRC of a chunk is wrong.
type ErrChecksumMismatch struct {
	Computed uint32
	Supplied uint32
}

// Error implements the error interface.
func (e ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("CRC mismatch: computed %08x, got %08x", e.Computed, e.Supplied)
}
