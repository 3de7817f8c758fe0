package icns

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEncode_Layout pins down the exact byte layout of the container.
func TestEncode_Layout(t *testing.T) {
	t.Parallel()

	payload := []byte("not really a png, but the writer must not care")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Type1024, payload))

	file := buf.Bytes()
	require.Len(t, file, 16+len(payload))

	require.Equal(t, "icns", string(file[0:4]))
	require.Equal(t, uint32(len(file)), binary.BigEndian.Uint32(file[4:8]))
	require.Equal(t, Type1024, string(file[8:12]))
	require.Equal(t, uint32(8+len(payload)), binary.BigEndian.Uint32(file[12:16]))
	require.Equal(t, payload, file[16:])
}

// TestEncode_EmptyPayload keeps the length fields consistent for zero bytes.
func TestEncode_EmptyPayload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Type1024, nil))

	file := buf.Bytes()
	require.Len(t, file, 16)
	require.Equal(t, uint32(16), binary.BigEndian.Uint32(file[4:8]))
	require.Equal(t, uint32(8), binary.BigEndian.Uint32(file[12:16]))
}

// TestEncode_BadChunkType rejects tags that are not exactly four bytes.
func TestEncode_BadChunkType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.Error(t, Encode(&buf, "png", []byte("payload")))
	require.Zero(t, buf.Len())
}

// TestWrite_Reproducible ensures two writes of the same payload are byte-identical.
func TestWrite_Reproducible(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	payload := bytes.Repeat([]byte{0xAB}, 1024)

	first := filepath.Join(dir, "a.icns")
	second := filepath.Join(dir, "b.icns")
	require.NoError(t, Write(first, Type1024, payload))
	require.NoError(t, Write(second, Type1024, payload))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
