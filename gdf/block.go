package gdf

import "fmt"

// ValueKind discriminates the payload of a Value.
type ValueKind int

const (
	// KindNil is the null/empty value.
	KindNil ValueKind = iota
	// KindInt is an integer scalar. Encoded as uint32 when positive and as
	// int32 otherwise; values outside those ranges fail with ErrRange.
	KindInt
	// KindFloat is a floating-point scalar, always encoded as an 8-byte
	// double.
	KindFloat
	// KindText is an ASCII string.
	KindText
	// KindBytes is an uninterpreted byte buffer, carried under the
	// "undefined" wire tag and round-tripped byte for byte.
	KindBytes
	// KindArray is a homogeneous numeric array.
	KindArray
)

// String returns the kind's name.
func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value is the payload of a Block: exactly one of an integer scalar, a float
// scalar, ASCII text, a raw byte buffer, a homogeneous numeric array, or
// nothing. The zero Value is the null value.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    []byte
	arr  any
}

// NilValue returns the null value.
func NilValue() Value {
	return Value{}
}

// IntValue returns an integer scalar value.
func IntValue(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// FloatValue returns a floating-point scalar value.
func FloatValue(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// TextValue returns an ASCII text value. Non-ASCII content is rejected at
// encode time.
func TextValue(s string) Value {
	return Value{kind: KindText, s: s}
}

// BytesValue returns a raw byte buffer value ("undefined" wire type).
func BytesValue(b []byte) Value {
	return Value{kind: KindBytes, b: b}
}

// ArrayValue returns a numeric array value. The argument must be a slice of
// float64, float32, int, int8 through int64, uint, or uint8 through uint64;
// other element kinds are rejected with ErrUnsupportedType at encode time.
func ArrayValue(v any) Value {
	return Value{kind: KindArray, arr: v}
}

// Kind returns the value's discriminator.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNil reports whether the value is null.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// Int returns the integer scalar and whether the value holds one.
func (v Value) Int() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float returns the float scalar and whether the value holds one.
func (v Value) Float() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// Text returns the string payload and whether the value holds one.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindText
}

// Bytes returns the raw byte buffer and whether the value holds one.
func (v Value) Bytes() ([]byte, bool) {
	return v.b, v.kind == KindBytes
}

// Array returns the typed numeric slice and whether the value holds one.
func (v Value) Array() (any, bool) {
	return v.arr, v.kind == KindArray
}

// Float64s returns the array payload as []float64, or false if the value is
// not a float64 array.
func (v Value) Float64s() ([]float64, bool) {
	a, ok := v.arr.([]float64)
	return a, ok && v.kind == KindArray
}

// Interface returns the payload as an untyped value: nil, int64, float64,
// string, []byte, or a numeric slice.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBytes:
		return v.b
	case KindArray:
		return v.arr
	default:
		return nil
	}
}

// Block is one named, typed entry in the GDF record stream. A block with a
// non-empty Children slice is a group: its serialization carries the group
// begin flag and its children are terminated on disk by a synthetic group end
// marker. Blocks exist only as the in-memory result of one Load or the input
// to one Save; each block exclusively owns its children.
type Block struct {
	Name     string
	Value    Value
	Children []Block
}

// NewBlock returns a block with the given name and value and no children.
func NewBlock(name string, value Value) Block {
	return Block{Name: name, Value: value}
}

// NewGroup returns a block with the given name, a null value, and the given
// children.
func NewGroup(name string, children ...Block) Block {
	return Block{Name: name, Children: children}
}
