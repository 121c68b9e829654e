// Package gdf reads and writes GDF (General Datafile) files, the tagged
// hierarchical binary format used by GPT and related particle tracking codes
// to exchange simulation data.
package gdf

import "errors"

// Common errors. Every failure returned by this package wraps exactly one of
// these sentinels; match with errors.Is.
var (
	// ErrNotGDF indicates the input does not start with the GDF magic number
	// or cannot be probed at all.
	ErrNotGDF = errors.New("not a GDF file")

	// ErrFormat indicates structurally invalid GDF: conflicting group flags,
	// a group end marker at the root level, or an invalid single/array flag
	// combination.
	ErrFormat = errors.New("invalid GDF structure")

	// ErrRange indicates well-formed framing with an out-of-contract value:
	// a scalar block whose size does not match its type width, an array block
	// whose size is not a multiple of the element width, an integer that does
	// not fit 32 bits on encode, or a non-ASCII or over-long string.
	ErrRange = errors.New("value out of range")

	// ErrUnsupportedType indicates an unrecognized wire type tag on read, or
	// a value kind with no GDF representation on write.
	ErrUnsupportedType = errors.New("unsupported GDF type")

	// ErrRecursionLimit indicates group nesting beyond the configured
	// maximum recursion depth.
	ErrRecursionLimit = errors.New("maximum group nesting depth exceeded")

	// ErrTruncated indicates an I/O-level failure: the stream ended inside a
	// group, or could not be read or written in the required mode.
	ErrTruncated = errors.New("truncated or unreadable GDF stream")
)
