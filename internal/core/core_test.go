package core

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pngme/pngme/internal/chunk"
	"github.com/pngme/pngme/internal/png"
)

func writeTestPNG(t *testing.T, dir string) string {
	typ, err := chunk.ParseType("IEND")
	require.NoError(t, err)

	p := &png.PNG{
		Chunks: []*chunk.Chunk{
			chunk.New(typ, nil),
		},
	}

	fpath := filepath.Join(dir, "test.png")
	err = os.WriteFile(fpath, p.Marshal(), 0o644)
	require.NoError(t, err)
	return fpath
}

func writeTestConf(t *testing.T, dir string, content string) string {
	fpath := filepath.Join(dir, "pngme.yml")
	err := os.WriteFile(fpath, []byte(content), 0o644)
	require.NoError(t, err)
	return fpath
}

type testCore struct {
	*Core
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	exitCode int
}

func newTestCore() *testCore {
	tc := &testCore{exitCode: -1}
	tc.Core = &Core{
		stdout: &tc.stdout,
		stderr: &tc.stderr,
		exit:   tc.exit,
	}
	return tc
}

func (tc *testCore) exit(code int) {
	if tc.exitCode == -1 {
		tc.exitCode = code
	}
}

func TestCoreEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	fpath := writeTestPNG(t, dir)
	confPath := writeTestConf(t, dir, "logDestinations: [file]\n"+
		"logFile: "+filepath.Join(dir, "pngme.log")+"\n"+
		"logLevel: info\n")

	tc := newTestCore()
	ok := tc.run([]string{"--conf", confPath, "encode", fpath, "-c", "RuSt", "-m", "hello world"})
	require.True(t, ok)

	tc = newTestCore()
	ok = tc.run([]string{"--conf", confPath, "decode", fpath, "--chunk-type", "RuSt"})
	require.True(t, ok)
	require.Equal(t, "Message found: hello world\n", tc.stdout.String())

	logs, err := os.ReadFile(filepath.Join(dir, "pngme.log"))
	require.NoError(t, err)
	require.Contains(t, string(logs), "INF message encoded into chunk 'RuSt' of "+fpath)
}

func TestCorePrint(t *testing.T) {
	dir := t.TempDir()
	fpath := writeTestPNG(t, dir)

	tc := newTestCore()
	ok := tc.run([]string{"print", fpath})
	require.True(t, ok)
	require.Equal(t, fpath+": 1 chunks\n"+
		"   0  IEND  CPU           0      0B  ae426082\n", tc.stdout.String())
}

func TestCoreRemoveNotFound(t *testing.T) {
	dir := t.TempDir()
	fpath := writeTestPNG(t, dir)
	confPath := writeTestConf(t, dir, "logDestinations: [file]\n"+
		"logFile: "+filepath.Join(dir, "pngme.log")+"\n")

	tc := newTestCore()
	ok := tc.run([]string{"--conf", confPath, "remove", fpath, "-c", "RuSt"})
	require.False(t, ok)

	logs, err := os.ReadFile(filepath.Join(dir, "pngme.log"))
	require.NoError(t, err)
	require.Contains(t, string(logs), "ERR chunk 'RuSt' not found")
}

func TestCoreInvalidChunkType(t *testing.T) {
	dir := t.TempDir()
	fpath := writeTestPNG(t, dir)

	tc := newTestCore()
	ok := tc.run([]string{"decode", fpath, "-c", "Ru1t"})
	require.False(t, ok)
	require.NotEqual(t, -1, tc.exitCode)
	require.Contains(t, tc.stderr.String(), "chunk type contains non-alphabetic bytes")
}

func TestCoreInvalidConf(t *testing.T) {
	dir := t.TempDir()
	fpath := writeTestPNG(t, dir)
	confPath := writeTestConf(t, dir, "logLevel: verbose\n")

	tc := newTestCore()
	ok := tc.run([]string{"--conf", confPath, "print", fpath})
	require.False(t, ok)
	require.Equal(t, "ERR: invalid log level: 'verbose'\n", tc.stderr.String())
}

func TestCoreVersion(t *testing.T) {
	tc := newTestCore()
	tc.run([]string{"--version"})
	require.Equal(t, 0, tc.exitCode)
	require.True(t, strings.HasPrefix(tc.stdout.String(), version+"\n"))
}
