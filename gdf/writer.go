package gdf

import (
	"fmt"

	"github.com/robert-malhotra/go-gdf/internal/binary"
)

// Largest integer magnitudes GDF can carry: scalars and narrowed arrays are
// at most 32 bits wide.
const (
	maxInt32Abs  = 0x7FFFFFFF
	maxUint32Val = 0xFFFFFFFF
)

// writeBlocks encodes one flat sequence of blocks at the given nesting level,
// recursing into children and closing every non-root level with a synthetic
// group end marker. The depth limit is checked before anything is written at
// the level.
func writeBlocks(w *binary.Writer, blocks []Block, level, maxRecurse int) error {
	if level >= maxRecurse {
		return fmt.Errorf("group nesting deeper than %d: %w", maxRecurse, ErrRecursionLimit)
	}

	for i := range blocks {
		b := &blocks[i]
		if err := checkName("block name", b.Name); err != nil {
			return err
		}

		flags := int32(0)
		if len(b.Children) > 0 {
			flags |= flagGroupBegin
		}

		if err := writeValue(w, b.Name, flags, b.Value); err != nil {
			return err
		}

		if len(b.Children) > 0 {
			if err := writeBlocks(w, b.Children, level+1, maxRecurse); err != nil {
				return err
			}
		}
	}

	if level > 0 {
		return writeGroupEnd(w)
	}
	return nil
}

// writeGroupEnd emits the anonymous marker block closing a group: empty name,
// null type with the group end flag, no payload.
func writeGroupEnd(w *binary.Writer) error {
	return writeBlockHeader(w, "", TypeNull|flagGroupEnd, 0)
}

// writeBlockHeader emits the fixed 24-byte block header.
func writeBlockHeader(w *binary.Writer, name string, flags int32, size int32) error {
	if err := w.WriteName(name); err != nil {
		return fmt.Errorf("writing block name: %w", ErrTruncated)
	}
	if err := w.WriteInt32(flags); err != nil {
		return fmt.Errorf("writing block flags: %w", ErrTruncated)
	}
	if err := w.WriteInt32(size); err != nil {
		return fmt.Errorf("writing block size: %w", ErrTruncated)
	}
	return nil
}

// writeValue encodes one block header and payload. The group flags are passed
// in; the value-derived type and shape bits are added here.
func writeValue(w *binary.Writer, name string, flags int32, v Value) error {
	switch v.Kind() {
	case KindArray:
		return writeArray(w, name, flags, v.arr)

	case KindText:
		if err := binary.CheckASCII(v.s); err != nil {
			return fmt.Errorf("block %q: string value is not ASCII: %w", name, ErrRange)
		}
		if err := writeBlockHeader(w, name, flags|flagSingle|TypeASCII, int32(len(v.s))); err != nil {
			return err
		}
		if err := w.WriteBytes([]byte(v.s)); err != nil {
			return fmt.Errorf("block %q: writing string payload: %w", name, ErrTruncated)
		}
		return nil

	case KindInt:
		return writeIntScalar(w, name, flags, v.i)

	case KindFloat:
		if err := writeBlockHeader(w, name, flags|flagSingle|TypeDouble, 8); err != nil {
			return err
		}
		if err := w.WriteFloat64(v.f); err != nil {
			return fmt.Errorf("block %q: writing double payload: %w", name, ErrTruncated)
		}
		return nil

	case KindBytes:
		if err := writeBlockHeader(w, name, flags|flagSingle|TypeUndefined, int32(len(v.b))); err != nil {
			return err
		}
		if err := w.WriteBytes(v.b); err != nil {
			return fmt.Errorf("block %q: writing raw payload: %w", name, ErrTruncated)
		}
		return nil

	case KindNil:
		return writeBlockHeader(w, name, flags|flagSingle|TypeNull, 0)

	default:
		return fmt.Errorf("block %q: cannot encode value kind %s: %w", name, v.Kind(), ErrUnsupportedType)
	}
}

// writeIntScalar encodes an integer scalar: positive values as uint32,
// zero and negative values as int32. GDF has no wider scalar integers, so
// anything outside those ranges fails.
func writeIntScalar(w *binary.Writer, name string, flags int32, v int64) error {
	if v > 0 {
		if v > maxUint32Val {
			return fmt.Errorf("block %q: value %d exceeds the 32-bit unsigned range (max 4,294,967,295): %w",
				name, v, ErrRange)
		}
		if err := writeBlockHeader(w, name, flags|flagSingle|TypeUint32, 4); err != nil {
			return err
		}
		if err := w.WriteUint32(uint32(v)); err != nil {
			return fmt.Errorf("block %q: writing uint32 payload: %w", name, ErrTruncated)
		}
		return nil
	}
	if v < -maxInt32Abs {
		return fmt.Errorf("block %q: value %d exceeds the 32-bit signed range (max magnitude 2,147,483,647): %w",
			name, v, ErrRange)
	}
	if err := writeBlockHeader(w, name, flags|flagSingle|TypeInt32, 4); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(v)); err != nil {
		return fmt.Errorf("block %q: writing int32 payload: %w", name, ErrTruncated)
	}
	return nil
}

// writeArray encodes a numeric array block. 64-bit integer arrays narrow to
// their 32-bit representation when every element fits; otherwise the first
// out-of-range element (lowest index among those of maximal magnitude) is
// reported.
func writeArray(w *binary.Writer, name string, flags int32, arr any) error {
	narrowed, err := narrowArray(name, arr)
	if err != nil {
		return err
	}

	tag, width, err := tagForArray(narrowed)
	if err != nil {
		return fmt.Errorf("block %q: %w", name, err)
	}

	count := arrayLen(narrowed)
	size := int32(count * width)
	if err := writeBlockHeader(w, name, flags|flagArray|tag, size); err != nil {
		return err
	}
	if err := writeArrayData(w, narrowed); err != nil {
		return fmt.Errorf("block %q: writing array payload: %w", name, ErrTruncated)
	}
	return nil
}

// narrowArray converts 64-bit and platform-width integer slices to their
// 32-bit representation when possible. Other slice kinds pass through
// unchanged.
func narrowArray(name string, arr any) (any, error) {
	switch a := arr.(type) {
	case []int64:
		return narrowInt64s(name, a)
	case []uint64:
		return narrowUint64s(name, a)
	case []int:
		if intTag == TypeInt32 {
			out := make([]int32, len(a))
			for i, v := range a {
				out[i] = int32(v)
			}
			return out, nil
		}
		wide := make([]int64, len(a))
		for i, v := range a {
			wide[i] = int64(v)
		}
		return narrowInt64s(name, wide)
	case []uint:
		if uintTag == TypeUint32 {
			out := make([]uint32, len(a))
			for i, v := range a {
				out[i] = uint32(v)
			}
			return out, nil
		}
		wide := make([]uint64, len(a))
		for i, v := range a {
			wide[i] = uint64(v)
		}
		return narrowUint64s(name, wide)
	default:
		return arr, nil
	}
}

func narrowInt64s(name string, a []int64) (any, error) {
	maxIdx := -1
	var maxMag uint64
	for i, v := range a {
		mag := magnitude(v)
		if maxIdx < 0 || mag > maxMag {
			maxIdx, maxMag = i, mag
		}
	}
	if maxMag > maxInt32Abs {
		return nil, fmt.Errorf("block %q: array element at index %d has value %d, beyond the int32 range "+
			"(max magnitude 2,147,483,647): %w", name, maxIdx, a[maxIdx], ErrRange)
	}
	out := make([]int32, len(a))
	for i, v := range a {
		out[i] = int32(v)
	}
	return out, nil
}

func narrowUint64s(name string, a []uint64) (any, error) {
	maxIdx := -1
	var maxVal uint64
	for i, v := range a {
		if maxIdx < 0 || v > maxVal {
			maxIdx, maxVal = i, v
		}
	}
	if maxVal > maxUint32Val {
		return nil, fmt.Errorf("block %q: array element at index %d has value %d, beyond the uint32 range "+
			"(max 4,294,967,295): %w", name, maxIdx, a[maxIdx], ErrRange)
	}
	out := make([]uint32, len(a))
	for i, v := range a {
		out[i] = uint32(v)
	}
	return out, nil
}

// magnitude returns |v| without overflowing on MinInt64.
func magnitude(v int64) uint64 {
	if v >= 0 {
		return uint64(v)
	}
	return uint64(-(v + 1)) + 1
}

func arrayLen(arr any) int {
	switch a := arr.(type) {
	case []float64:
		return len(a)
	case []float32:
		return len(a)
	case []int8:
		return len(a)
	case []int16:
		return len(a)
	case []int32:
		return len(a)
	case []uint8:
		return len(a)
	case []uint16:
		return len(a)
	case []uint32:
		return len(a)
	default:
		panic("gdf: arrayLen called with unnarrowed slice")
	}
}

// writeArrayData emits the raw little-endian element bytes. By the time this
// runs the slice has been narrowed, so 64-bit integer kinds cannot appear.
func writeArrayData(w *binary.Writer, arr any) error {
	switch a := arr.(type) {
	case []float64:
		for _, v := range a {
			if err := w.WriteFloat64(v); err != nil {
				return err
			}
		}
	case []float32:
		for _, v := range a {
			if err := w.WriteFloat32(v); err != nil {
				return err
			}
		}
	case []int8:
		buf := make([]byte, len(a))
		for i, v := range a {
			buf[i] = byte(v)
		}
		return w.WriteBytes(buf)
	case []int16:
		buf := make([]byte, 2*len(a))
		for i, v := range a {
			binary.ByteOrder.PutUint16(buf[i*2:], uint16(v))
		}
		return w.WriteBytes(buf)
	case []int32:
		buf := make([]byte, 4*len(a))
		for i, v := range a {
			binary.ByteOrder.PutUint32(buf[i*4:], uint32(v))
		}
		return w.WriteBytes(buf)
	case []uint8:
		return w.WriteBytes(a)
	case []uint16:
		buf := make([]byte, 2*len(a))
		for i, v := range a {
			binary.ByteOrder.PutUint16(buf[i*2:], v)
		}
		return w.WriteBytes(buf)
	case []uint32:
		buf := make([]byte, 4*len(a))
		for i, v := range a {
			binary.ByteOrder.PutUint32(buf[i*4:], v)
		}
		return w.WriteBytes(buf)
	default:
		panic("gdf: writeArrayData called with unnarrowed slice")
	}
	return nil
}
