// Package binary provides low-level binary I/O operations for GDF file parsing
// and writing.
//
// GDF is a linear record stream with no internal offsets, so unlike
// offset-addressed container formats the reader consumes its source
// sequentially. All multi-byte values are little-endian on the wire; see
// ByteOrder.
package binary

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// ByteOrder is the wire byte order of the GDF format. The reference writers
// perform no byte swapping and in practice run exclusively on little-endian
// hosts, so the format is fixed to little-endian here to stay byte-compatible
// with existing files while remaining portable.
var ByteOrder = binary.LittleEndian

// NameLen is the fixed on-disk size of name fields (block names and the
// creator/destination header fields), NUL-padded.
const NameLen = 16

// Reader provides sequential decoding of GDF binary data from an io.Reader.
type Reader struct {
	r   io.Reader
	pos int64
}

// NewReader creates a reader over r starting at position 0.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int64 {
	return r.pos
}

// ReadBytes reads exactly n bytes. If the stream ends before the first byte
// the error is io.EOF; if it ends mid-read the error is io.ErrUnexpectedEOF.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.pos += int64(read)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(ByteOrder.Uint32(buf)), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint64(buf), nil
}

// ReadFloat32 reads an IEEE 754 single-precision value.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads an IEEE 754 double-precision value.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadName reads a NameLen-byte NUL-padded name field and returns it truncated
// at the first NUL.
func (r *Reader) ReadName() (string, error) {
	buf, err := r.ReadBytes(NameLen)
	if err != nil {
		return "", err
	}
	return TrimName(buf), nil
}

// Skip discards n bytes from the stream.
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	discarded, err := io.CopyN(io.Discard, r.r, int64(n))
	r.pos += discarded
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// TrimName truncates a NUL-padded name buffer at the first NUL byte.
func TrimName(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
