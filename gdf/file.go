package gdf

import (
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-gdf/internal/binary"
)

// File is the in-memory form of one GDF file: the header fields plus the
// root block list. A File returned by Load can be passed back to Save
// unchanged to re-emit an equivalent file.
type File struct {
	Header
	Blocks []Block
}

// NewFile returns an empty file with the default header (creator "go-gdf",
// format version 1.1, creation time filled in at save).
func NewFile(blocks ...Block) *File {
	return &File{Header: defaultHeader(), Blocks: blocks}
}

// Find returns the first root-level block with the given name, or nil.
func (f *File) Find(name string) *Block {
	return Find(f.Blocks, name)
}

// Load decodes a GDF file from r. The stream must start at the magic number;
// Load seeks to the beginning itself. When r was opened by the caller it
// stays open: closing is the caller's responsibility.
func Load(r io.ReadSeeker, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Probe one byte first so plain I/O failures surface as such rather
	// than as a format error from the sniffer.
	var probe [1]byte
	if _, err := r.Read(probe[:]); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading input: %v: %w", err, ErrTruncated)
	}

	if !IsGDF(r) {
		return nil, fmt.Errorf("input lacks the GDF magic number: %w", ErrNotGDF)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding input: %v: %w", err, ErrTruncated)
	}

	br := binary.NewReader(r)
	header, err := readHeader(br, o.log)
	if err != nil {
		return nil, err
	}

	blocks, err := readBlocks(br, 0, limits{maxRecurse: o.maxRecurse, maxBlocks: o.maxBlocks})
	if err != nil {
		return nil, err
	}

	return &File{Header: header, Blocks: blocks}, nil
}

// LoadFile opens the file at path read-only, decodes it with Load, and
// closes it.
func LoadFile(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v: %w", path, err, ErrTruncated)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Save encodes f to w: the 48-byte header followed by the recursive block
// stream. A nil file saves as an empty file with the default header. When w
// was opened by the caller it stays open.
func Save(w io.Writer, f *File, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if f == nil {
		f = NewFile()
	}

	bw := binary.NewWriter(w)
	if err := f.Header.write(bw); err != nil {
		return err
	}
	return writeBlocks(bw, f.Blocks, 0, o.maxRecurse)
}

// SaveFile creates (or truncates) the file at path and encodes f into it.
func SaveFile(path string, f *File, opts ...Option) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %v: %w", path, err, ErrTruncated)
	}
	if err := Save(out, f, opts...); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %v: %w", path, err, ErrTruncated)
	}
	return nil
}
