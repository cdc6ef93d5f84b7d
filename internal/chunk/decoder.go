package chunk

import (
	"encoding/binary"
	"io"
	"iter"
)

type decoderState int

const (
	decoderStateScanning decoderState = iota
	decoderStateCorrupted
)

// Decoder decodes a sequence of chunks from a buffer.
// After the first error, it stops decoding and returns io.EOF.
// The buffer is not copied.
type Decoder struct {
	buf    []byte
	offset int
	state  decoderState
}

// NewDecoder allocates a Decoder.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{
		buf: buf,
	}
}

// Next returns the next chunk.
// It returns io.EOF when the buffer is exhausted or after an error.
func (d *Decoder) Next() (*Chunk, error) {
	if d.state == decoderStateCorrupted {
		return nil, io.EOF
	}

	rem := d.buf[d.offset:]
	if len(rem) == 0 {
		return nil, io.EOF
	}

	if len(rem) < lengthSize {
		d.state = decoderStateCorrupted
		return nil, ErrTooShort{Length: len(rem)}
	}

	end := uint64(MinSize) + uint64(binary.BigEndian.Uint32(rem[0:4]))
	if uint64(len(rem)) < end {
		d.state = decoderStateCorrupted
		return nil, ErrTooShort{Length: len(rem)}
	}

	d.offset += int(end)

	var c Chunk
	err := c.Unmarshal(rem[:end])
	if err != nil {
		d.state = decoderStateCorrupted
		return nil, err
	}

	return &c, nil
}

// All returns an iterator over the remaining chunks.
// When decoding fails, the error is yielded last.
func (d *Decoder) All() iter.Seq2[*Chunk, error] {
	return func(yield func(*Chunk, error) bool) {
		for {
			c, err := d.Next()
			if err == io.EOF {
				return
			}

			if !yield(c, err) || err != nil {
				return
			}
		}
	}
}

// Offset returns the number of consumed bytes.
func (d *Decoder) Offset() int {
	return d.offset
}

// Corrupted returns whether decoding stopped because of an error.
func (d *Decoder) Corrupted() bool {
	return d.state == decoderStateCorrupted
}
