package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/beam-cloud/stego/pkg/chunk"
	"github.com/beam-cloud/stego/pkg/png"
)

func writeTestPng(t *testing.T, dir, name string, chunks ...*chunk.Chunk) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, png.FromChunks(chunks).Bytes(), 0644))
	return path
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	path := writeTestPng(t, t.TempDir(), "test.png")

	EncodeCmd.SetArgs([]string{"--input", path, "--type", "RuSt", "--message", "a secret message"})
	require.NoError(t, EncodeCmd.Execute())

	out := new(bytes.Buffer)
	DecodeCmd.SetOut(out)
	DecodeCmd.SetArgs([]string{"--input", path, "--type", "RuSt"})
	require.NoError(t, DecodeCmd.Execute())

	require.Equal(t, "a secret message", strings.TrimSpace(out.String()))
}

func TestEncodeRejectsBadType(t *testing.T) {
	path := writeTestPng(t, t.TempDir(), "test.png")

	EncodeCmd.SetArgs([]string{"--input", path, "--type", "Ru1t", "--message", "nope"})
	require.Error(t, EncodeCmd.Execute())
}

func TestRemoveChunk(t *testing.T) {
	dir := t.TempDir()

	typ, err := chunk.TypeFromString("RuSt")
	require.NoError(t, err)
	path := writeTestPng(t, dir, "test.png", chunk.New(typ, []byte("gone soon")))

	RemoveCmd.SetArgs([]string{"--input", path, "--type", "RuSt"})
	require.NoError(t, RemoveCmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	p, err := png.Parse(data)
	require.NoError(t, err)

	_, ok := p.ChunkByType("RuSt")
	require.False(t, ok)
}

func TestRemoveMissingChunk(t *testing.T) {
	path := writeTestPng(t, t.TempDir(), "test.png")

	RemoveCmd.SetArgs([]string{"--input", path, "--type", "RuSt"})
	require.Error(t, RemoveCmd.Execute())
}

func TestPrintChunks(t *testing.T) {
	dir := t.TempDir()

	typ, err := chunk.TypeFromString("RuSt")
	require.NoError(t, err)
	path := writeTestPng(t, dir, "test.png", chunk.New(typ, []byte("hello")))

	out := new(bytes.Buffer)
	PrintCmd.SetOut(out)
	PrintCmd.SetArgs([]string{"--input", path})
	require.NoError(t, PrintCmd.Execute())

	require.Contains(t, out.String(), "RuSt")
	require.Contains(t, out.String(), "length=5")
	require.Contains(t, out.String(), "critical=true")
}

func TestScanFindsCarriers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	typ, err := chunk.TypeFromString("RuSt")
	require.NoError(t, err)

	carrier := writeTestPng(t, filepath.Join(dir, "nested"), "carrier.png", chunk.New(typ, []byte("hidden")))
	writeTestPng(t, dir, "plain.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not-a-png.png"), []byte("junk"), 0644))

	out := new(bytes.Buffer)
	ScanCmd.SetOut(out)
	ScanCmd.SetArgs([]string{"--dir", dir, "--type", "RuSt"})
	require.NoError(t, ScanCmd.Execute())

	require.Contains(t, out.String(), carrier)
	require.NotContains(t, out.String(), "plain.png")
	require.NotContains(t, out.String(), "not-a-png.png")
}
