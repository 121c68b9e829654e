package gdf

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/robert-malhotra/go-gdf/internal/binary"
	"github.com/robert-malhotra/go-gdf/internal/logger"
)

func encodeHeader(t *testing.T, h Header) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := h.write(binary.NewWriter(&buf)); err != nil {
		t.Fatalf("writing header failed: %v", err)
	}
	return buf.Bytes()
}

func TestHeaderRoundTrip(t *testing.T) {
	in := Header{
		CreationTime:       time.Unix(1610000000, 0).UTC(),
		Creator:            "generator",
		Destination:        "tracker",
		GDFVersion:         Version{1, 1},
		CreatorVersion:     Version{3, 7},
		DestinationVersion: Version{0, 2},
		Dummy:              Version{9, 9},
	}

	raw := encodeHeader(t, in)
	if len(raw) != HeaderSize {
		t.Fatalf("expected %d header bytes, got %d", HeaderSize, len(raw))
	}

	out, err := readHeader(binary.NewReader(bytes.NewReader(raw)), logger.Discard())
	if err != nil {
		t.Fatalf("reading header failed: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", out, in)
	}
}

func TestHeaderCreationTimeTruncation(t *testing.T) {
	in := Header{
		CreationTime: time.Unix(1610000000, 987654321).UTC(),
		GDFVersion:   Version{1, 1},
	}
	raw := encodeHeader(t, in)
	out, err := readHeader(binary.NewReader(bytes.NewReader(raw)), logger.Discard())
	if err != nil {
		t.Fatalf("reading header failed: %v", err)
	}
	if !out.CreationTime.Equal(time.Unix(1610000000, 0)) {
		t.Errorf("expected creation time truncated to whole seconds, got %v", out.CreationTime)
	}
}

func TestHeaderDefaultCreationTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	raw := encodeHeader(t, defaultHeader())
	after := time.Now().Add(time.Second)

	out, err := readHeader(binary.NewReader(bytes.NewReader(raw)), logger.Discard())
	if err != nil {
		t.Fatalf("reading header failed: %v", err)
	}
	if out.CreationTime.Before(before) || out.CreationTime.After(after) {
		t.Errorf("expected creation time near now, got %v", out.CreationTime)
	}
	if out.Creator != "go-gdf" {
		t.Errorf("expected default creator go-gdf, got %q", out.Creator)
	}
}

func TestHeaderBadMagic(t *testing.T) {
	raw := encodeHeader(t, defaultHeader())
	raw[0] ^= 0xFF
	_, err := readHeader(binary.NewReader(bytes.NewReader(raw)), logger.Discard())
	if !errors.Is(err, ErrNotGDF) {
		t.Errorf("expected ErrNotGDF, got %v", err)
	}
}

func TestHeaderCreatorTooLong(t *testing.T) {
	h := defaultHeader()
	h.Creator = "name_longer_than_sixteen_bytes"
	var buf bytes.Buffer
	err := h.write(binary.NewWriter(&buf))
	if !errors.Is(err, ErrRange) {
		t.Errorf("expected ErrRange, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("header must not be partially written on validation failure, got %d bytes", buf.Len())
	}
}

func TestHeaderNonASCIIDestination(t *testing.T) {
	h := defaultHeader()
	h.Destination = "détecteur"
	err := h.write(binary.NewWriter(&bytes.Buffer{}))
	if !errors.Is(err, ErrRange) {
		t.Errorf("expected ErrRange, got %v", err)
	}
}

// A version other than 1.1 is only a warning; decoding proceeds.
func TestHeaderUnknownVersionStillReads(t *testing.T) {
	h := defaultHeader()
	h.GDFVersion = Version{2, 0}
	raw := encodeHeader(t, h)
	out, err := readHeader(binary.NewReader(bytes.NewReader(raw)), logger.Discard())
	if err != nil {
		t.Fatalf("expected version 2.0 header to read, got %v", err)
	}
	if out.GDFVersion != (Version{2, 0}) {
		t.Errorf("expected version 2.0, got %v", out.GDFVersion)
	}
}

func TestHeaderTruncated(t *testing.T) {
	raw := encodeHeader(t, defaultHeader())
	_, err := readHeader(binary.NewReader(bytes.NewReader(raw[:20])), logger.Discard())
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
