package gdf

import (
	"fmt"
	"strconv"
)

// Wire type tags, the low 8 bits of a block's type flags.
const (
	TypeUndefined = 0x0000
	TypeASCII     = 0x0001
	TypeInt32     = 0x0002
	TypeDouble    = 0x0003
	TypeNull      = 0x0010
	TypeUint8     = 0x0020
	TypeInt8      = 0x0030
	TypeUint16    = 0x0040
	TypeInt16     = 0x0050
	TypeUint32    = 0x0060
	TypeUint64    = 0x0070
	TypeInt64     = 0x0080
	TypeFloat32   = 0x0090
)

// Type flag bits above the tag.
const (
	dtypeMask      = 255
	flagGroupBegin = 256
	flagGroupEnd   = 512
	flagSingle     = 1024
	flagArray      = 2048
)

// typeWidths maps the fixed-width numeric tags to their element size in
// bytes. Tags absent from this table (ASCII, null, undefined) have
// size-in-block-header-determined or zero payloads.
var typeWidths = map[int32]int{
	TypeDouble:  8,
	TypeFloat32: 4,
	TypeInt8:    1,
	TypeInt16:   2,
	TypeInt32:   4,
	TypeInt64:   8,
	TypeUint8:   1,
	TypeUint16:  2,
	TypeUint32:  4,
	TypeUint64:  8,
}

// numericWidth returns the element byte width for a fixed-width numeric tag.
// The second return is false for non-numeric tags.
func numericWidth(tag int32) (int, bool) {
	w, ok := typeWidths[tag]
	return w, ok
}

// Platform-width integer slices resolve to 32- or 64-bit wire tags based on
// the build target's int size.
var (
	intTag  = platformIntTag(strconv.IntSize)
	uintTag = platformUintTag(strconv.IntSize)
)

func platformIntTag(bits int) int32 {
	if bits == 32 {
		return TypeInt32
	}
	return TypeInt64
}

func platformUintTag(bits int) int32 {
	if bits == 32 {
		return TypeUint32
	}
	return TypeUint64
}

// tagForArray maps a native numeric slice to its wire tag and element width.
// Slices of kinds with no GDF mapping (for example complex numbers) return
// ErrUnsupportedType.
func tagForArray(v any) (tag int32, width int, err error) {
	switch v.(type) {
	case []float64:
		return TypeDouble, 8, nil
	case []float32:
		return TypeFloat32, 4, nil
	case []int8:
		return TypeInt8, 1, nil
	case []int16:
		return TypeInt16, 2, nil
	case []int32:
		return TypeInt32, 4, nil
	case []int64:
		return TypeInt64, 8, nil
	case []uint8:
		return TypeUint8, 1, nil
	case []uint16:
		return TypeUint16, 2, nil
	case []uint32:
		return TypeUint32, 4, nil
	case []uint64:
		return TypeUint64, 8, nil
	case []int:
		return intTag, strconv.IntSize / 8, nil
	case []uint:
		return uintTag, strconv.IntSize / 8, nil
	default:
		return 0, 0, fmt.Errorf("cannot write array of %T to GDF: %w", v, ErrUnsupportedType)
	}
}

// typeName returns a human-readable name for a wire tag, for diagnostics.
func typeName(tag int32) string {
	switch tag {
	case TypeUndefined:
		return "undefined"
	case TypeASCII:
		return "ascii"
	case TypeInt32:
		return "int32"
	case TypeDouble:
		return "double"
	case TypeNull:
		return "null"
	case TypeUint8:
		return "uint8"
	case TypeInt8:
		return "int8"
	case TypeUint16:
		return "uint16"
	case TypeInt16:
		return "int16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	default:
		return fmt.Sprintf("0x%04x", tag)
	}
}
