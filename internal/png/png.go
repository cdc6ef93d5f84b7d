// Package png contains a PNG file, seen as a sequence of chunks.
package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pngme/pngme/internal/chunk"
)

// Signature is the PNG file signature.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// ErrInvalidSignature is returned when a file doesn't start with the PNG signature.
var ErrInvalidSignature = errors.New("invalid signature")

// ErrChunkNotFound is returned when there's no chunk with the requested type.
type ErrChunkNotFound struct {
	Type chunk.Type
}

// Error implements the error interface.
func (e ErrChunkNotFound) Error() string {
	return fmt.Sprintf("chunk '%s' not found", e.Type)
}

// PNG is a PNG file.
type PNG struct {
	Chunks []*chunk.Chunk
}

// Unmarshal decodes a PNG file.
func (p *PNG) Unmarshal(buf []byte) error {
	if len(buf) < len(Signature) || !bytes.Equal(buf[:len(Signature)], Signature[:]) {
		return ErrInvalidSignature
	}

	var chunks []*chunk.Chunk
	d := chunk.NewDecoder(buf[len(Signature):])

	for {
		c, err := d.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("chunk %d: %w", len(chunks), err)
		}

		chunks = append(chunks, c)
	}

	p.Chunks = chunks
	return nil
}

// AppendChunk appends a chunk.
func (p *PNG) AppendChunk(c *chunk.Chunk) {
	p.Chunks = append(p.Chunks, c)
}

// ChunkByType returns the first chunk with the given type, or nil.
func (p *PNG) ChunkByType(typ chunk.Type) *chunk.Chunk {
	for _, c := range p.Chunks {
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

// RemoveChunk removes the first chunk with the given type.
func (p *PNG) RemoveChunk(typ chunk.Type) (*chunk.Chunk, error) {
	for i, c := range p.Chunks {
		if c.Type() == typ {
			p.Chunks = append(p.Chunks[:i], p.Chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, ErrChunkNotFound{Type: typ}
}

// MarshalSize returns the size of the encoded file.
func (p *PNG) MarshalSize() int {
	n := len(Signature)
	for _, c := range p.Chunks {
		n += c.MarshalSize()
	}
	return n
}

// Marshal encodes the file.
func (p *PNG) Marshal() []byte {
	buf := make([]byte, p.MarshalSize())
	n := copy(buf, Signature[:])

	for _, c := range p.Chunks {
		m, _ := c.MarshalTo(buf[n:])
		n += m
	}

	return buf
}
