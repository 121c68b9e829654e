package gdf

import (
	"io"
	"os"

	"github.com/robert-malhotra/go-gdf/internal/binary"
)

// IsGDF reports whether r starts with the GDF magic number. It is a cheap
// format probe usable before committing to a full parse. Short or unreadable
// streams report false, never an error. On a positive result the stream is
// left positioned at byte 4.
func IsGDF(r io.ReadSeeker) bool {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false
	}
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return false
	}
	return int32(binary.ByteOrder.Uint32(buf)) == Magic
}

// IsGDFFile opens the file at path read-only and probes it with IsGDF.
func IsGDFFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return IsGDF(f), nil
}
