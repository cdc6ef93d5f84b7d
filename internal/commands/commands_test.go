package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pngme/pngme/internal/chunk"
	"github.com/pngme/pngme/internal/logger"
	"github.com/pngme/pngme/internal/png"
)

type nilLogger struct{}

func (nilLogger) Log(logger.Level, string, ...any) {}

func mustParseType(s string) chunk.Type {
	typ, err := chunk.ParseType(s)
	if err != nil {
		panic(err)
	}
	return typ
}

func writeTestPNG(t *testing.T) string {
	p := &png.PNG{
		Chunks: []*chunk.Chunk{
			chunk.New(mustParseType("IHDR"), []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}),
			chunk.New(mustParseType("IDAT"), []byte{0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00, 0x05, 0x00, 0x01}),
			chunk.New(mustParseType("IEND"), nil),
		},
	}

	fpath := filepath.Join(t.TempDir(), "test.png")
	err := os.WriteFile(fpath, p.Marshal(), 0o644)
	require.NoError(t, err)
	return fpath
}

func newCommands(stdout *bytes.Buffer) *Commands {
	return &Commands{
		MaxFileSize: 1024 * 1024,
		Stdout:      stdout,
		Parent:      nilLogger{},
	}
}

func readTestPNG(t *testing.T, fpath string) *png.PNG {
	buf, err := os.ReadFile(fpath)
	require.NoError(t, err)

	var p png.PNG
	err = p.Unmarshal(buf)
	require.NoError(t, err)
	return &p
}

func TestEncodeDecode(t *testing.T) {
	fpath := writeTestPNG(t)

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err := c.Encode(fpath, mustParseType("RuSt"), "This is a secret message!", "")
	require.NoError(t, err)

	p := readTestPNG(t, fpath)
	require.Len(t, p.Chunks, 4)
	require.Equal(t, "RuSt", p.Chunks[3].Type().String())

	err = c.Decode(fpath, mustParseType("RuSt"))
	require.NoError(t, err)
	require.Equal(t, "Message found: This is a secret message!\n", stdout.String())
}

func TestEncodeToOutput(t *testing.T) {
	fpath := writeTestPNG(t)
	output := filepath.Join(t.TempDir(), "out.png")

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err := c.Encode(fpath, mustParseType("RuSt"), "hidden", output)
	require.NoError(t, err)

	require.Len(t, readTestPNG(t, fpath).Chunks, 3)
	require.Len(t, readTestPNG(t, output).Chunks, 4)
}

func TestDecodeNotFound(t *testing.T) {
	fpath := writeTestPNG(t)

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err := c.Decode(fpath, mustParseType("RuSt"))
	require.NoError(t, err)
	require.Equal(t, "No message found\n", stdout.String())
}

func TestDecodeNotText(t *testing.T) {
	fpath := writeTestPNG(t)

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err := c.Decode(fpath, mustParseType("IDAT"))
	require.ErrorIs(t, err, chunk.ErrDataNotText)
}

func TestRemove(t *testing.T) {
	fpath := writeTestPNG(t)

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err := c.Encode(fpath, mustParseType("RuSt"), "hidden", "")
	require.NoError(t, err)

	err = c.Remove(fpath, mustParseType("RuSt"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout.String(), "Removed chunk: Chunk {\n"))
	require.Contains(t, stdout.String(), "  Type: RuSt\n")

	require.Len(t, readTestPNG(t, fpath).Chunks, 3)

	err = c.Remove(fpath, mustParseType("RuSt"))
	require.Equal(t, png.ErrChunkNotFound{Type: mustParseType("RuSt")}, err)
}

func TestPrint(t *testing.T) {
	fpath := writeTestPNG(t)

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err := c.Print(fpath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, fpath+": 3 chunks", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "   0  IHDR  CPU          13     13B  "))
	require.True(t, strings.HasPrefix(lines[2], "   1  IDAT  CPU          10     10B  "))
	require.Equal(t, "   2  IEND  CPU           0      0B  ae426082", lines[3])
}

func TestInvalidFiles(t *testing.T) {
	dir := t.TempDir()

	notPNG := filepath.Join(dir, "not.png")
	err := os.WriteFile(notPNG, []byte("GIF89a"), 0o644)
	require.NoError(t, err)

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err = c.Print(notPNG)
	require.ErrorIs(t, err, png.ErrInvalidSignature)

	err = c.Print(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	c.MaxFileSize = 10
	err = c.Print(writeTestPNG(t))
	var terr ErrFileTooLarge
	require.ErrorAs(t, err, &terr)
	require.Equal(t, uint64(10), terr.Max)
}

func TestCorruptedFile(t *testing.T) {
	fpath := writeTestPNG(t)

	buf, err := os.ReadFile(fpath)
	require.NoError(t, err)
	buf[len(buf)-1] ^= 0xff
	err = os.WriteFile(fpath, buf, 0o644)
	require.NoError(t, err)

	var stdout bytes.Buffer
	c := newCommands(&stdout)

	err = c.Print(fpath)
	var cerr chunk.ErrChecksumMismatch
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, uint32(0xae426082), cerr.Computed)
}
