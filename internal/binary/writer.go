package binary

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrNameTooLong is returned when a name field exceeds NameLen bytes.
var ErrNameTooLong = errors.New("name exceeds 16 bytes")

// ErrNotASCII is returned when a name or string field contains non-ASCII bytes.
var ErrNotASCII = errors.New("string is not ASCII")

// Writer provides sequential encoding of GDF binary data to an io.Writer.
type Writer struct {
	w   io.Writer
	pos int64
}

// NewWriter creates a writer over w starting at position 0.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteBytes writes the given bytes.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.Write(data)
	w.pos += int64(n)
	return err
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	buf := make([]byte, 4)
	ByteOrder.PutUint32(buf, uint32(v))
	return w.WriteBytes(buf)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	buf := make([]byte, 4)
	ByteOrder.PutUint32(buf, v)
	return w.WriteBytes(buf)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) error {
	buf := make([]byte, 8)
	ByteOrder.PutUint64(buf, v)
	return w.WriteBytes(buf)
}

// WriteFloat32 writes an IEEE 754 single-precision value.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes an IEEE 754 double-precision value.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteName writes s as a NameLen-byte NUL-padded field. The name must be
// ASCII and at most NameLen bytes.
func (w *Writer) WriteName(s string) error {
	if err := CheckASCII(s); err != nil {
		return fmt.Errorf("name %q: %w", s, err)
	}
	if len(s) > NameLen {
		return fmt.Errorf("name %q (%d bytes): %w", s, len(s), ErrNameTooLong)
	}
	buf := make([]byte, NameLen)
	copy(buf, s)
	return w.WriteBytes(buf)
}

// CheckASCII reports ErrNotASCII if s contains any byte outside 0x00-0x7F.
func CheckASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return ErrNotASCII
		}
	}
	return nil
}
