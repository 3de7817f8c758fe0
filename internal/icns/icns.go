package icns

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// magic is the container's file type tag.
	magic = "icns"

	// Type1024 tags a chunk holding a 1024x1024 PNG bitmap ("ic10").
	Type1024 = "ic10"

	// headerSize is the size of a tag plus its length field. Both the file
	// header and each chunk header have this shape.
	headerSize = 8

	// fileMode used for written containers.
	fileMode os.FileMode = 0o644
)

// Encode writes a single-chunk icon container: the magic tag, the total file
// length, then one chunk of the given type wrapping the payload unmodified.
// All lengths are big-endian uint32 and count the tag and length field of the
// element they belong to, so consumers of the richer multi-chunk format read
// this file as a valid instance with exactly one entry.
func Encode(w io.Writer, chunkType string, payload []byte) error {
	if len(chunkType) != 4 {
		return fmt.Errorf("chunk type %q: must be exactly 4 bytes", chunkType)
	}

	var (
		chunkLength = uint32(headerSize + len(payload))
		totalLength = uint32(headerSize) + chunkLength
	)

	var buf bytes.Buffer

	buf.WriteString(magic)
	_ = binary.Write(&buf, binary.BigEndian, totalLength)
	buf.WriteString(chunkType)
	_ = binary.Write(&buf, binary.BigEndian, chunkLength)
	buf.Write(payload)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write icon container: %w", err)
	}

	return nil
}

// Write encodes the payload into a container file at path.
func Write(path, chunkType string, payload []byte) error {
	f, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("create icon container %s: %w", path, err)
	}

	if err = Encode(f, chunkType, payload); err != nil {
		_ = f.Close()

		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("close icon container %s: %w", path, err)
	}

	return nil
}
