package mapfile

import (
	"encoding/binary"
	"fmt"
	"os"
)

// CursorSize is the fixed length of an encoded map cursor.
const CursorSize = 8

// EncodeCursor encodes v as a little-endian signed 64-bit integer.
func EncodeCursor(v int64) []byte {
	b := make([]byte, CursorSize)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}

// DecodeCursor decodes an 8-byte little-endian signed 64-bit integer.
func DecodeCursor(b []byte) (int64, error) {
	if len(b) != CursorSize {
		return 0, fmt.Errorf("cursor: want %d bytes, got %d", CursorSize, len(b))
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// WriteCursorFile writes the encoded cursor to path.
func WriteCursorFile(path string, v int64) error {
	return WriteFileAtomic(path, EncodeCursor(v), 0o644)
}

// ReadCursorFile reads and decodes the cursor stored at path.
func ReadCursorFile(path string) (int64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return DecodeCursor(b)
}
