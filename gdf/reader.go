package gdf

import (
	"fmt"
	"io"
	"math"

	"github.com/robert-malhotra/go-gdf/internal/binary"
)

// limits bounds the work done per nesting level on decode and encode. Both
// exist to stop unbounded recursion or loops on corrupt or adversarial input
// and are checked before any I/O at a level.
type limits struct {
	maxRecurse int
	maxBlocks  int
}

// readBlocks decodes one flat sequence of blocks at the given nesting level,
// recursing into groups. The root level (0) ends at a clean end of stream;
// deeper levels end at an explicit group end marker, and end of stream there
// means the file was cut off inside a group.
func readBlocks(r *binary.Reader, level int, lim limits) ([]Block, error) {
	if level >= lim.maxRecurse {
		return nil, fmt.Errorf("group nesting deeper than %d: %w", lim.maxRecurse, ErrRecursionLimit)
	}

	var blocks []Block
	for n := 0; n < lim.maxBlocks; n++ {
		name, err := r.ReadName()
		if err == io.EOF {
			if level == 0 {
				return blocks, nil
			}
			return nil, fmt.Errorf("stream ended inside a group: %w", ErrTruncated)
		}
		if err != nil {
			return nil, fmt.Errorf("reading block name: %w", ErrTruncated)
		}

		flags, err := r.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("reading block type flags: %w", ErrTruncated)
		}
		size, err := r.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("reading block size: %w", ErrTruncated)
		}
		if size < 0 {
			return nil, fmt.Errorf("block %q has negative size %d: %w", name, size, ErrFormat)
		}

		groupBegin := flags&flagGroupBegin != 0
		groupEnd := flags&flagGroupEnd != 0
		if groupBegin && groupEnd {
			return nil, fmt.Errorf("block %q has both group begin and group end flags: %w", name, ErrFormat)
		}
		if groupEnd {
			if level == 0 {
				return nil, fmt.Errorf("group end marker outside of any group: %w", ErrFormat)
			}
			return blocks, nil
		}

		value, err := readValue(r, name, flags, int(size))
		if err != nil {
			return nil, err
		}

		block := Block{Name: name, Value: value}
		if groupBegin {
			block.Children, err = readBlocks(r, level+1, lim)
			if err != nil {
				return nil, err
			}
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// readValue decodes one block payload of exactly size bytes according to the
// type tag and the single/array shape flags.
func readValue(r *binary.Reader, name string, flags int32, size int) (Value, error) {
	tag := flags & dtypeMask
	single := flags&flagSingle != 0
	array := flags&flagArray != 0
	if single == array {
		return Value{}, fmt.Errorf("block %q has invalid shape flags (single=%t, array=%t): %w",
			name, single, array, ErrFormat)
	}

	if single {
		return readSingle(r, name, tag, size)
	}
	return readArray(r, name, tag, size)
}

func readSingle(r *binary.Reader, name string, tag int32, size int) (Value, error) {
	if width, ok := numericWidth(tag); ok {
		if size != width {
			return Value{}, fmt.Errorf("block %q: %s scalar needs %d bytes, block declares %d: %w",
				name, typeName(tag), width, size, ErrRange)
		}
		return readScalar(r, name, tag)
	}

	switch tag {
	case TypeASCII:
		buf, err := r.ReadBytes(size)
		if err != nil {
			return Value{}, fmt.Errorf("block %q: reading string payload: %w", name, ErrTruncated)
		}
		s := binary.TrimName(buf)
		if err := binary.CheckASCII(s); err != nil {
			return Value{}, fmt.Errorf("block %q: string payload is not ASCII: %w", name, ErrRange)
		}
		return TextValue(s), nil

	case TypeNull:
		if err := r.Skip(size); err != nil {
			return Value{}, fmt.Errorf("block %q: skipping null payload: %w", name, ErrTruncated)
		}
		return NilValue(), nil

	case TypeUndefined:
		buf, err := r.ReadBytes(size)
		if err != nil {
			return Value{}, fmt.Errorf("block %q: reading raw payload: %w", name, ErrTruncated)
		}
		return BytesValue(buf), nil

	default:
		return Value{}, fmt.Errorf("block %q: unrecognized single data type %s: %w",
			name, typeName(tag), ErrUnsupportedType)
	}
}

// readScalar decodes one fixed-width numeric scalar. Integer kinds widen to
// int64; float32 widens to float64, matching the in-memory model (the write
// path always re-encodes floats as doubles).
func readScalar(r *binary.Reader, name string, tag int32) (Value, error) {
	truncated := func(err error) (Value, error) {
		return Value{}, fmt.Errorf("block %q: reading %s scalar (%v): %w", name, typeName(tag), err, ErrTruncated)
	}

	switch tag {
	case TypeDouble:
		v, err := r.ReadFloat64()
		if err != nil {
			return truncated(err)
		}
		return FloatValue(v), nil
	case TypeFloat32:
		v, err := r.ReadFloat32()
		if err != nil {
			return truncated(err)
		}
		return FloatValue(float64(v)), nil
	case TypeUint64:
		v, err := r.ReadUint64()
		if err != nil {
			return truncated(err)
		}
		if v > math.MaxInt64 {
			return Value{}, fmt.Errorf("block %q: uint64 scalar %d exceeds the representable integer range: %w",
				name, v, ErrRange)
		}
		return IntValue(int64(v)), nil
	default:
		width, _ := numericWidth(tag)
		buf, err := r.ReadBytes(width)
		if err != nil {
			return truncated(err)
		}
		return IntValue(decodeInt(tag, buf)), nil
	}
}

// decodeInt sign- or zero-extends one little-endian integer of the given tag.
func decodeInt(tag int32, buf []byte) int64 {
	switch tag {
	case TypeInt8:
		return int64(int8(buf[0]))
	case TypeInt16:
		return int64(int16(binary.ByteOrder.Uint16(buf)))
	case TypeInt32:
		return int64(int32(binary.ByteOrder.Uint32(buf)))
	case TypeInt64:
		return int64(binary.ByteOrder.Uint64(buf))
	case TypeUint8:
		return int64(buf[0])
	case TypeUint16:
		return int64(binary.ByteOrder.Uint16(buf))
	case TypeUint32:
		return int64(binary.ByteOrder.Uint32(buf))
	default:
		panic("gdf: decodeInt called with non-integer tag")
	}
}

func readArray(r *binary.Reader, name string, tag int32, size int) (Value, error) {
	if width, ok := numericWidth(tag); ok {
		if size%width != 0 {
			return Value{}, fmt.Errorf("block %q: %s array size %d is not a multiple of %d: %w",
				name, typeName(tag), size, width, ErrRange)
		}
		raw, err := r.ReadBytes(size)
		if err != nil {
			return Value{}, fmt.Errorf("block %q: reading array payload: %w", name, ErrTruncated)
		}
		return ArrayValue(decodeArray(tag, raw, size/width)), nil
	}

	switch tag {
	case TypeUndefined:
		buf, err := r.ReadBytes(size)
		if err != nil {
			return Value{}, fmt.Errorf("block %q: reading raw payload: %w", name, ErrTruncated)
		}
		return BytesValue(buf), nil

	case TypeNull:
		return Value{}, fmt.Errorf("block %q: cannot interpret a null-typed array: %w",
			name, ErrUnsupportedType)

	default:
		return Value{}, fmt.Errorf("block %q: unrecognized array data type %s: %w",
			name, typeName(tag), ErrUnsupportedType)
	}
}

// decodeArray reinterprets a raw little-endian payload as a typed slice of
// count elements.
func decodeArray(tag int32, raw []byte, count int) any {
	order := binary.ByteOrder
	switch tag {
	case TypeDouble:
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
		return out
	case TypeFloat32:
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(raw[i*4:]))
		}
		return out
	case TypeInt8:
		out := make([]int8, count)
		for i := range out {
			out[i] = int8(raw[i])
		}
		return out
	case TypeInt16:
		out := make([]int16, count)
		for i := range out {
			out[i] = int16(order.Uint16(raw[i*2:]))
		}
		return out
	case TypeInt32:
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(order.Uint32(raw[i*4:]))
		}
		return out
	case TypeInt64:
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(order.Uint64(raw[i*8:]))
		}
		return out
	case TypeUint8:
		out := make([]uint8, count)
		copy(out, raw)
		return out
	case TypeUint16:
		out := make([]uint16, count)
		for i := range out {
			out[i] = order.Uint16(raw[i*2:])
		}
		return out
	case TypeUint32:
		out := make([]uint32, count)
		for i := range out {
			out[i] = order.Uint32(raw[i*4:])
		}
		return out
	case TypeUint64:
		out := make([]uint64, count)
		for i := range out {
			out[i] = order.Uint64(raw[i*8:])
		}
		return out
	default:
		panic("gdf: decodeArray called with non-numeric tag")
	}
}
