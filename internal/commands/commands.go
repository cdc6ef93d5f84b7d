// Package commands contains the operations that can be performed on PNG files.
package commands

import (
	"fmt"
	"io"
	"os"

	"code.cloudfoundry.org/bytefmt"

	"github.com/pngme/pngme/internal/chunk"
	"github.com/pngme/pngme/internal/logger"
	"github.com/pngme/pngme/internal/png"
)

// ErrFileTooLarge is returned when a file exceeds the maximum allowed size.
type ErrFileTooLarge struct {
	Size uint64
	Max  uint64
}

// Error implements the error interface.
func (e ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file size (%s) exceeds maximum (%s)",
		bytefmt.ByteSize(e.Size), bytefmt.ByteSize(e.Max))
}

// Commands performs operations on PNG files.
type Commands struct {
	MaxFileSize uint64
	Stdout      io.Writer
	Parent      logger.Writer
}

// Log implements logger.Writer.
func (c *Commands) Log(level logger.Level, format string, args ...any) {
	c.Parent.Log(level, format, args...)
}

func (c *Commands) readPNG(fpath string) (*png.PNG, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if c.MaxFileSize != 0 && uint64(fi.Size()) > c.MaxFileSize {
		return nil, ErrFileTooLarge{Size: uint64(fi.Size()), Max: c.MaxFileSize}
	}

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	c.Log(logger.Debug, "read %s (%s)", fpath, bytefmt.ByteSize(uint64(len(buf))))

	var p png.PNG
	err = p.Unmarshal(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fpath, err)
	}

	return &p, nil
}

func (c *Commands) savePNG(fpath string, p *png.PNG) error {
	buf := p.Marshal()

	err := os.WriteFile(fpath, buf, 0o644)
	if err != nil {
		return err
	}

	c.Log(logger.Debug, "wrote %s (%s)", fpath, bytefmt.ByteSize(uint64(len(buf))))
	return nil
}

// Encode hides a message into a chunk of a PNG file.
// The result is written to output, or to the input file when output is empty.
func (c *Commands) Encode(fpath string, typ chunk.Type, message string, output string) error {
	p, err := c.readPNG(fpath)
	if err != nil {
		return err
	}

	p.AppendChunk(chunk.New(typ, []byte(message)))

	if output == "" {
		output = fpath
	}

	err = c.savePNG(output, p)
	if err != nil {
		return err
	}

	c.Log(logger.Info, "message encoded into chunk '%s' of %s", typ, output)
	return nil
}

// Decode prints the message stored in the first chunk with the given type.
func (c *Commands) Decode(fpath string, typ chunk.Type) error {
	p, err := c.readPNG(fpath)
	if err != nil {
		return err
	}

	ch := p.ChunkByType(typ)
	if ch == nil {
		fmt.Fprintln(c.Stdout, "No message found")
		return nil
	}

	msg, err := ch.DataAsString()
	if err != nil {
		return fmt.Errorf("chunk '%s': %w", typ, err)
	}

	fmt.Fprintf(c.Stdout, "Message found: %s\n", msg)
	return nil
}

// Remove removes the first chunk with the given type and saves the file.
func (c *Commands) Remove(fpath string, typ chunk.Type) error {
	p, err := c.readPNG(fpath)
	if err != nil {
		return err
	}

	ch, err := p.RemoveChunk(typ)
	if err != nil {
		return err
	}

	err = c.savePNG(fpath, p)
	if err != nil {
		return err
	}

	c.Log(logger.Info, "chunk '%s' removed from %s", typ, fpath)
	fmt.Fprintf(c.Stdout, "Removed chunk: %s\n", ch)
	return nil
}

func flag(v bool, set byte, unset byte) byte {
	if v {
		return set
	}
	return unset
}

// Print prints all the chunks of a PNG file.
func (c *Commands) Print(fpath string) error {
	p, err := c.readPNG(fpath)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout, "%s: %d chunks\n", fpath, len(p.Chunks))

	for i, ch := range p.Chunks {
		typ := ch.Type()
		fmt.Fprintf(c.Stdout, "%4d  %s  %c%c%c  %10d  %6s  %08x\n",
			i,
			typ,
			flag(typ.IsCritical(), 'C', 'a'),
			flag(typ.IsPublic(), 'P', 'p'),
			flag(typ.IsSafeToCopy(), 's', 'U'),
			ch.Length(),
			bytefmt.ByteSize(uint64(ch.Length())),
			ch.CRC())
	}

	return nil
}
