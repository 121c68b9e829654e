package gdf

import (
	"fmt"
	"time"

	"github.com/robert-malhotra/go-gdf/internal/binary"
	"github.com/robert-malhotra/go-gdf/internal/logger"
)

// Magic is the 32-bit constant identifying a GDF file at offset 0.
const Magic int32 = 94325877

// HeaderSize is the fixed size of the GDF file header in bytes.
const HeaderSize = 48

// Version is a (major, minor) version pair as stored in the file header.
type Version struct {
	Major uint8
	Minor uint8
}

// CurrentVersion is the GDF format version this package reads and writes.
var CurrentVersion = Version{1, 1}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Header is the fixed 48-byte GDF file header. It is built fresh on save and
// parsed once per load; fields are not re-validated after construction.
type Header struct {
	// CreationTime is stored on disk as whole Unix seconds, interpreted as
	// UTC. The zero time means "now" at encode.
	CreationTime time.Time

	// Creator and Destination are ASCII, at most 16 bytes, NUL-padded on
	// disk.
	Creator     string
	Destination string

	GDFVersion         Version
	CreatorVersion     Version
	DestinationVersion Version
	Dummy              Version
}

// defaultHeader returns the header written when the caller supplies none.
// CreatorVersion tracks this library's own version.
func defaultHeader() Header {
	return Header{
		Creator:        "go-gdf",
		GDFVersion:     CurrentVersion,
		CreatorVersion: Version{2, 0},
	}
}

// readHeader decodes the 48-byte file header. The magic number must already
// be known valid or not; a mismatch fails with ErrNotGDF. A GDF version other
// than 1.1 is reported through log as a warning but does not stop decoding.
func readHeader(r *binary.Reader, log logger.Logger) (Header, error) {
	magic, err := r.ReadInt32()
	if err != nil {
		return Header{}, fmt.Errorf("reading magic number: %w", ErrTruncated)
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("magic number 0x%08x: %w", uint32(magic), ErrNotGDF)
	}

	secs, err := r.ReadInt32()
	if err != nil {
		return Header{}, fmt.Errorf("reading creation time: %w", ErrTruncated)
	}

	creator, err := r.ReadName()
	if err != nil {
		return Header{}, fmt.Errorf("reading creator: %w", ErrTruncated)
	}
	destination, err := r.ReadName()
	if err != nil {
		return Header{}, fmt.Errorf("reading destination: %w", ErrTruncated)
	}

	vbuf, err := r.ReadBytes(8)
	if err != nil {
		return Header{}, fmt.Errorf("reading versions: %w", ErrTruncated)
	}

	h := Header{
		CreationTime:       time.Unix(int64(secs), 0).UTC(),
		Creator:            creator,
		Destination:        destination,
		GDFVersion:         Version{vbuf[0], vbuf[1]},
		CreatorVersion:     Version{vbuf[2], vbuf[3]},
		DestinationVersion: Version{vbuf[4], vbuf[5]},
		Dummy:              Version{vbuf[6], vbuf[7]},
	}

	if h.GDFVersion != CurrentVersion {
		log.Warn("GDF version differs from the tested 1.1; proceeding anyway",
			"version", h.GDFVersion.String())
	}

	return h, nil
}

// write encodes the header. Creator and destination must be ASCII and at most
// 16 bytes; a zero creation time encodes as the current time, truncated to
// whole seconds.
func (h Header) write(w *binary.Writer) error {
	if err := checkName("creator", h.Creator); err != nil {
		return err
	}
	if err := checkName("destination", h.Destination); err != nil {
		return err
	}

	created := h.CreationTime
	if created.IsZero() {
		created = time.Now()
	}

	if err := w.WriteInt32(Magic); err != nil {
		return fmt.Errorf("writing magic number: %w", ErrTruncated)
	}
	if err := w.WriteInt32(int32(created.Unix())); err != nil {
		return fmt.Errorf("writing creation time: %w", ErrTruncated)
	}
	if err := w.WriteName(h.Creator); err != nil {
		return fmt.Errorf("writing creator: %w", ErrTruncated)
	}
	if err := w.WriteName(h.Destination); err != nil {
		return fmt.Errorf("writing destination: %w", ErrTruncated)
	}
	versions := []byte{
		h.GDFVersion.Major, h.GDFVersion.Minor,
		h.CreatorVersion.Major, h.CreatorVersion.Minor,
		h.DestinationVersion.Major, h.DestinationVersion.Minor,
		h.Dummy.Major, h.Dummy.Minor,
	}
	if err := w.WriteBytes(versions); err != nil {
		return fmt.Errorf("writing versions: %w", ErrTruncated)
	}
	return nil
}

// checkName validates an ASCII name field of at most 16 bytes.
func checkName(field, s string) error {
	if err := binary.CheckASCII(s); err != nil {
		return fmt.Errorf("%s %q is not ASCII: %w", field, s, ErrRange)
	}
	if len(s) > binary.NameLen {
		return fmt.Errorf("%s %q exceeds %d bytes: %w", field, s, binary.NameLen, ErrRange)
	}
	return nil
}
