package gdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/robert-malhotra/go-gdf/internal/binary"
	"github.com/robert-malhotra/go-gdf/internal/logger"
)

func quiet() Option {
	return WithLogger(logger.Discard())
}

func saveToBytes(t *testing.T, f *File, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Save(&buf, f, append(opts, quiet())...); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return buf.Bytes()
}

func loadFromBytes(t *testing.T, raw []byte, opts ...Option) *File {
	t.Helper()
	f, err := Load(bytes.NewReader(raw), append(opts, quiet())...)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return f
}

// Two float64 arrays named X and Y survive a save/load cycle intact.
func TestSaveLoadArrays(t *testing.T) {
	in := NewFile(
		NewBlock("X", ArrayValue([]float64{0, 1, 2, 3, 4, 5})),
		NewBlock("Y", ArrayValue([]float64{5, 4, 3, 2, 1, 0})),
	)
	out := loadFromBytes(t, saveToBytes(t, in))

	if len(out.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(out.Blocks))
	}
	if out.Blocks[0].Name != "X" || out.Blocks[1].Name != "Y" {
		t.Errorf("expected names X and Y, got %q and %q", out.Blocks[0].Name, out.Blocks[1].Name)
	}
	x, ok := out.Blocks[0].Value.Float64s()
	if !ok || !reflect.DeepEqual(x, []float64{0, 1, 2, 3, 4, 5}) {
		t.Errorf("X array mismatch: %v", x)
	}
	y, ok := out.Blocks[1].Value.Float64s()
	if !ok || !reflect.DeepEqual(y, []float64{5, 4, 3, 2, 1, 0}) {
		t.Errorf("Y array mismatch: %v", y)
	}
	for _, b := range out.Blocks {
		if len(b.Children) != 0 {
			t.Errorf("block %q should have no children", b.Name)
		}
	}
}

// Nested groups A > B > C > D round-trip with names, values, and nesting
// intact.
func TestSaveLoadNestedGroups(t *testing.T) {
	in := NewFile(
		NewGroup("A",
			NewGroup("B",
				NewGroup("C",
					NewBlock("D", TextValue("leaf")),
				),
			),
		),
	)
	out := loadFromBytes(t, saveToBytes(t, in))

	b := out.Blocks
	for _, name := range []string{"A", "B", "C"} {
		if len(b) != 1 || b[0].Name != name {
			t.Fatalf("expected single group %q, got %+v", name, b)
		}
		b = b[0].Children
	}
	if len(b) != 1 || b[0].Name != "D" {
		t.Fatalf("expected leaf D, got %+v", b)
	}
	if s, ok := b[0].Value.Text(); !ok || s != "leaf" {
		t.Errorf("expected leaf text, got %q (ok=%t)", s, ok)
	}
	if len(b[0].Children) != 0 {
		t.Errorf("leaf should have no children")
	}
}

func TestSaveLoadAllValueKinds(t *testing.T) {
	in := NewFile(
		NewBlock("nil", NilValue()),
		NewBlock("int", IntValue(-42)),
		NewBlock("float", FloatValue(6.02e23)),
		NewBlock("text", TextValue("hello gdf")),
		NewBlock("bytes", BytesValue([]byte{1, 2, 3})),
		NewBlock("array", ArrayValue([]float32{1, 2, 4})),
	)
	out := loadFromBytes(t, saveToBytes(t, in))

	if len(out.Blocks) != len(in.Blocks) {
		t.Fatalf("expected %d blocks, got %d", len(in.Blocks), len(out.Blocks))
	}
	for i := range in.Blocks {
		if !reflect.DeepEqual(out.Blocks[i], in.Blocks[i]) {
			t.Errorf("block %q mismatch:\n got  %+v\n want %+v",
				in.Blocks[i].Name, out.Blocks[i], in.Blocks[i])
		}
	}
}

// Saving the exact structure returned by Load reproduces an equal structure
// (and identical bytes, since the loaded header pins the creation time).
func TestLoadSaveLoadIdempotent(t *testing.T) {
	original := NewFile(
		NewBlock("scalar", IntValue(123)),
		NewGroup("grp",
			NewBlock("inner", ArrayValue([]int32{7, 8, 9})),
		),
	)
	first := loadFromBytes(t, saveToBytes(t, original))
	rawAgain := saveToBytes(t, first)
	second := loadFromBytes(t, rawAgain)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("load-save-load changed the structure:\n got  %+v\n want %+v", second, first)
	}
	if !bytes.Equal(rawAgain, saveToBytes(t, second)) {
		t.Errorf("re-saving the reloaded structure changed bytes")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04}
	if IsGDF(bytes.NewReader(raw)) {
		t.Errorf("IsGDF accepted a wrong magic number")
	}
	_, err := Load(bytes.NewReader(raw), quiet())
	if !errors.Is(err, ErrNotGDF) {
		t.Errorf("expected ErrNotGDF, got %v", err)
	}
}

func TestLoadEmptyStream(t *testing.T) {
	_, err := Load(bytes.NewReader(nil), quiet())
	if !errors.Is(err, ErrNotGDF) {
		t.Errorf("expected ErrNotGDF for empty input, got %v", err)
	}
}

func TestSniffer(t *testing.T) {
	raw := saveToBytes(t, NewFile())
	r := bytes.NewReader(raw)
	if !IsGDF(r) {
		t.Fatalf("IsGDF rejected a valid file")
	}
	// The probe leaves the stream just past the magic number.
	if pos, _ := r.Seek(0, 1); pos != 4 {
		t.Errorf("expected position 4 after probe, got %d", pos)
	}

	if IsGDF(bytes.NewReader(raw[:3])) {
		t.Errorf("IsGDF accepted a 3-byte stream")
	}
}

func TestLoadRecursionLimit(t *testing.T) {
	// Craft a header followed by 17 nested group begins and no end markers.
	raw := saveToBytes(t, NewFile())
	for i := 0; i < 17; i++ {
		raw = appendBlockHeader(raw, "g", flagGroupBegin|flagSingle|TypeNull, 0)
	}
	_, err := Load(bytes.NewReader(raw), quiet())
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("expected ErrRecursionLimit, got %v", err)
	}
}

func TestSaveRecursionLimit(t *testing.T) {
	chain := NewBlock("leaf", NilValue())
	for i := 0; i < 16; i++ {
		chain = NewGroup("level", chain)
	}
	err := Save(&bytes.Buffer{}, NewFile(chain), quiet())
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("expected ErrRecursionLimit, got %v", err)
	}
}

func TestLoadUnterminatedGroup(t *testing.T) {
	raw := saveToBytes(t, NewFile())
	raw = appendBlockHeader(raw, "g", flagGroupBegin|flagSingle|TypeNull, 0)
	_, err := Load(bytes.NewReader(raw), quiet())
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestLoadStrayGroupEnd(t *testing.T) {
	raw := saveToBytes(t, NewFile())
	raw = appendBlockHeader(raw, "", flagGroupEnd|TypeNull, 0)
	_, err := Load(bytes.NewReader(raw), quiet())
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestCustomRecursionLimit(t *testing.T) {
	nested := NewGroup("outer", NewGroup("inner", NewBlock("leaf", NilValue())))
	raw := saveToBytes(t, NewFile(nested))

	// Three levels are in play (root, outer, inner), so limit 3 passes and
	// limit 2 trips while descending into inner.
	if _, err := Load(bytes.NewReader(raw), quiet(), WithMaxRecurse(3)); err != nil {
		t.Errorf("two-group nesting should load with limit 3: %v", err)
	}
	_, err := Load(bytes.NewReader(raw), quiet(), WithMaxRecurse(2))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("expected ErrRecursionLimit with limit 2, got %v", err)
	}
}

func TestSaveLoadFiles(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "gdf-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "out.gdf")
	in := NewFile(NewBlock("q", FloatValue(-1.0)))
	if err := SaveFile(path, in, quiet()); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	ok, err := IsGDFFile(path)
	if err != nil {
		t.Fatalf("IsGDFFile failed: %v", err)
	}
	if !ok {
		t.Errorf("IsGDFFile rejected a freshly saved file")
	}

	out, err := LoadFile(path, quiet())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if v, okv := out.Blocks[0].Value.Float(); !okv || v != -1.0 {
		t.Errorf("expected q = -1.0, got %v (ok=%t)", v, okv)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(os.TempDir(), "gdf-does-not-exist-482"), quiet())
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for missing file, got %v", err)
	}
}

func TestSaveNilFile(t *testing.T) {
	var buf bytes.Buffer
	if err := Save(&buf, nil, quiet()); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	if buf.Len() != HeaderSize {
		t.Errorf("expected a bare %d-byte header, got %d bytes", HeaderSize, buf.Len())
	}
	out := loadFromBytes(t, buf.Bytes())
	if len(out.Blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(out.Blocks))
	}
}

// The header written by Save survives a byte-level inspection: magic first,
// then the creation time.
func TestSavedHeaderLayout(t *testing.T) {
	raw := saveToBytes(t, NewFile())
	if len(raw) != HeaderSize {
		t.Fatalf("expected %d bytes, got %d", HeaderSize, len(raw))
	}
	if int32(binary.ByteOrder.Uint32(raw[:4])) != Magic {
		t.Errorf("expected magic %d at offset 0, got %d", Magic, binary.ByteOrder.Uint32(raw[:4]))
	}
	if got := binary.TrimName(raw[8:24]); got != "go-gdf" {
		t.Errorf("expected creator go-gdf at offset 8, got %q", got)
	}
	if raw[40] != 1 || raw[41] != 1 {
		t.Errorf("expected gdf version bytes 1,1 at offset 40, got %d,%d", raw[40], raw[41])
	}
}
