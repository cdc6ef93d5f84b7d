// Package chunk contains a PNG chunk encoder and decoder.
package chunk

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	lengthSize = 4
	crcSize    = 4

	// MinSize is the size of a chunk without data.
	MinSize = lengthSize + TypeSize + crcSize

	// MaxDataLength is the maximum length of chunk data.
	MaxDataLength = math.MaxInt32
)

// Chunk is a PNG chunk.
type Chunk struct {
	typ  Type
	data []byte
}

func checkDataLength(le int) error {
	if le > MaxDataLength {
		return ErrDataExceedsMaximum{Length: le}
	}
	return nil
}

// New allocates a Chunk.
// Data is copied.
// It panics when typ is the zero Type, or when data is longer than
// MaxDataLength, since the result could not be decoded.
func New(typ Type, data []byte) *Chunk {
	if !typ.isAlphabetic() {
		panic("chunk type is not initialized")
	}

	if err := checkDataLength(len(data)); err != nil {
		panic(err.Error())
	}

	return &Chunk{
		typ:  typ,
		data: append([]byte{}, data...),
	}
}

// Length returns the length of the chunk data.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type.
func (c *Chunk) Type() Type {
	return c.typ
}

// Data returns the chunk data.
// The returned slice belongs to the chunk and must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC computes the CRC-32 of the chunk type and data.
func (c *Chunk) CRC() uint32 {
	typ := c.typ.Bytes()
	crc := crc32.Update(0, crc32.IEEETable, typ[:])
	return crc32.Update(crc, crc32.IEEETable, c.data)
}

// DataAsString returns the chunk data as a string.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrDataNotText
	}
	return string(c.data), nil
}

// Unmarshal decodes a chunk.
func (c *Chunk) Unmarshal(buf []byte) error {
	le := len(buf)
	if le < MinSize {
		return ErrTooShort{Length: le}
	}

	declared := binary.BigEndian.Uint32(buf[0:4])
	rawType := [TypeSize]byte{buf[4], buf[5], buf[6], buf[7]}
	data := buf[8 : le-crcSize]
	supplied := binary.BigEndian.Uint32(buf[le-crcSize:])

	err := checkDataLength(len(data))
	if err != nil {
		return err
	}

	if uint64(len(data)) != uint64(declared) {
		return ErrLengthMismatch{Declared: declared, Actual: len(data)}
	}

	typ, err := NewType(rawType)
	if err != nil {
		return err
	}

	tmp := Chunk{
		typ:  typ,
		data: data,
	}

	computed := tmp.CRC()
	if computed != supplied {
		return ErrChecksumMismatch{Computed: computed, Supplied: supplied}
	}

	c.typ = typ
	c.data = make([]byte, len(data))
	copy(c.data, data)
	return nil
}

// MarshalSize returns the size of the encoded chunk.
func (c *Chunk) MarshalSize() int {
	return MinSize + len(c.data)
}

// MarshalTo encodes the chunk into buf.
func (c *Chunk) MarshalTo(buf []byte) (int, error) {
	n := c.MarshalSize()
	if len(buf) < n {
		return 0, ErrBufferTooSmall
	}

	binary.BigEndian.PutUint32(buf[0:4], c.Length())
	typ := c.typ.Bytes()
	copy(buf[4:8], typ[:])
	copy(buf[8:], c.data)
	binary.BigEndian.PutUint32(buf[n-crcSize:n], c.CRC())

	return n, nil
}

// Marshal encodes the chunk.
func (c *Chunk) Marshal() []byte {
	buf := make([]byte, c.MarshalSize())
	c.MarshalTo(buf) //nolint:errcheck
	return buf
}

// String implements fmt.Stringer.
func (c *Chunk) String() string {
	var b strings.Builder
	b.WriteString("Chunk {\n")
	fmt.Fprintf(&b, "  Length: %d\n", c.Length())
	fmt.Fprintf(&b, "  Type: %s\n", c.typ)
	fmt.Fprintf(&b, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&b, "  Crc: %d\n", c.CRC())
	b.WriteString("}")
	return b.String()
}
