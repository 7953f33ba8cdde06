package object

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"

	binpkg "github.com/robert-malhotra/go-tdms/internal/binary"
	"github.com/robert-malhotra/go-tdms/internal/dtype"
)

// bytesReaderAt wraps a byte slice to implement io.ReaderAt.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func mustProperty(t *testing.T, name string, v any) Property {
	t.Helper()
	p, err := NewProperty(name, v)
	if err != nil {
		t.Fatalf("NewProperty(%q) failed: %v", name, err)
	}
	return p
}

func TestNewPropertyTypes(t *testing.T) {
	tests := []struct {
		v        any
		expected dtype.Type
		stored   any
	}{
		{"p", dtype.String, "p"},
		{1.5, dtype.Float64, 1.5},
		{float32(2), dtype.Float32, float32(2)},
		{7, dtype.Int64, int64(7)},
		{uint(7), dtype.Uint64, uint64(7)},
		{int32(-1), dtype.Int32, int32(-1)},
		{true, dtype.Boolean, true},
	}
	for _, tt := range tests {
		p := mustProperty(t, "x", tt.v)
		if p.Type != tt.expected {
			t.Errorf("NewProperty(%T) type = %v, want %v", tt.v, p.Type, tt.expected)
		}
		if p.Value != tt.stored {
			t.Errorf("NewProperty(%T) value = %#v, want %#v", tt.v, p.Value, tt.stored)
		}
	}
}

func TestNewPropertyUnsupported(t *testing.T) {
	for _, v := range []any{nil, []int{1}, map[string]any{}, struct{}{}} {
		if _, err := NewProperty("bad", v); !errors.Is(err, ErrUnsupportedProperty) {
			t.Errorf("NewProperty(%T) = %v, want ErrUnsupportedProperty", v, err)
		}
	}
}

func TestPropertyEncoding(t *testing.T) {
	buf := &binpkg.Buffer{}
	w := binpkg.NewWriter(buf, binpkg.DefaultConfig())
	if err := mustProperty(t, "role", "ADC_in").Write(w); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var expected bytes.Buffer
	binary.Write(&expected, binary.LittleEndian, uint32(4))
	expected.WriteString("role")
	binary.Write(&expected, binary.LittleEndian, uint32(dtype.String))
	binary.Write(&expected, binary.LittleEndian, uint32(6))
	expected.WriteString("ADC_in")

	if !bytes.Equal(buf.Bytes(), expected.Bytes()) {
		t.Errorf("encoding mismatch:\n got %v\nwant %v", buf.Bytes(), expected.Bytes())
	}
}

func TestTimestampEncoding(t *testing.T) {
	ts := time.Date(1904, 1, 1, 0, 0, 1, 500_000_000, time.UTC)

	buf := &binpkg.Buffer{}
	w := binpkg.NewWriter(buf, binpkg.DefaultConfig())
	if err := writeTimestamp(w, ts); err != nil {
		t.Fatalf("writeTimestamp failed: %v", err)
	}

	b := buf.Bytes()
	if frac := binary.LittleEndian.Uint64(b[0:8]); frac != 1<<63 {
		t.Errorf("expected half-second fraction 1<<63, got %d", frac)
	}
	if secs := int64(binary.LittleEndian.Uint64(b[8:16])); secs != 1 {
		t.Errorf("expected 1 second since 1904, got %d", secs)
	}
}

func TestPropertyRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 14, 15, 9, 26, 535_897_932, time.UTC)
	props := []Property{
		mustProperty(t, "s", "hello"),
		mustProperty(t, "f64", 4.9152e9),
		mustProperty(t, "f32", float32(-0.25)),
		mustProperty(t, "i8", int8(-8)),
		mustProperty(t, "i16", int16(-16)),
		mustProperty(t, "i32", int32(-32)),
		mustProperty(t, "i64", int64(-64)),
		mustProperty(t, "u8", uint8(8)),
		mustProperty(t, "u16", uint16(16)),
		mustProperty(t, "u32", uint32(32)),
		mustProperty(t, "u64", uint64(64)),
		mustProperty(t, "b", true),
		mustProperty(t, "t", created),
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			buf := &binpkg.Buffer{}
			w := binpkg.NewWriter(buf, binpkg.Config{ByteOrder: order})
			for _, p := range props {
				if err := p.Write(w); err != nil {
					t.Fatalf("Write(%q) failed: %v", p.Name, err)
				}
			}

			r := binpkg.NewReader(bytesReaderAt(buf.Bytes()), binpkg.Config{ByteOrder: order})
			for _, want := range props {
				got, err := ReadProperty(r)
				if err != nil {
					t.Fatalf("ReadProperty(%q) failed: %v", want.Name, err)
				}
				if got.Name != want.Name || got.Type != want.Type {
					t.Errorf("got %q/%v, want %q/%v", got.Name, got.Type, want.Name, want.Type)
				}
				if ts, ok := want.Value.(time.Time); ok {
					if !ts.Equal(got.Value.(time.Time)) {
						t.Errorf("timestamp: got %v, want %v", got.Value, ts)
					}
					continue
				}
				if got.Value != want.Value {
					t.Errorf("%q: got %#v, want %#v", want.Name, got.Value, want.Value)
				}
			}
		})
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	meta := &Metadata{Objects: []Object{
		{Path: "/", Properties: []Property{mustProperty(t, "writer", "capexport")}},
		{Path: "/'p'", Properties: []Property{mustProperty(t, "fs_in_hz", 2.0e9)}},
		{Path: "/'p'/'out'", Index: &Index{Type: dtype.Int16, Dimension: 1, Count: 4096},
			Properties: []Property{mustProperty(t, "role", "DAC_out")}},
		{Path: "/'p'/'in'", Index: &Index{Type: dtype.Int16, Dimension: 1, Count: 0}},
		{Path: "/'p'/'names'", Index: &Index{Type: dtype.String, Dimension: 1, Count: 2, TotalSize: 10}},
		{Path: "/'p'/'again'", Reuse: true, Index: &Index{Type: dtype.Float32}},
	}}

	buf := &binpkg.Buffer{}
	if err := meta.Write(binpkg.NewWriter(buf, binpkg.DefaultConfig())); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r := binpkg.NewReader(bytesReaderAt(buf.Bytes()), binpkg.DefaultConfig())
	got, err := ReadMetadata(r)
	if err != nil {
		t.Fatalf("ReadMetadata failed: %v", err)
	}
	if r.Pos() != int64(buf.Len()) {
		t.Errorf("consumed %d of %d bytes", r.Pos(), buf.Len())
	}
	if len(got.Objects) != len(meta.Objects) {
		t.Fatalf("expected %d objects, got %d", len(meta.Objects), len(got.Objects))
	}

	if got.Objects[0].HasData() || got.Objects[1].HasData() {
		t.Error("root and group must not carry data")
	}
	out := got.Objects[2]
	if out.Path != "/'p'/'out'" || out.Index == nil || out.Index.Count != 4096 || out.Index.Type != dtype.Int16 {
		t.Errorf("unexpected out channel %+v", out)
	}
	if out.Index.DataSize() != 8192 {
		t.Errorf("expected 8192 data bytes, got %d", out.Index.DataSize())
	}
	if len(out.Properties) != 1 || out.Properties[0].Value != "DAC_out" {
		t.Errorf("unexpected properties %+v", out.Properties)
	}
	if in := got.Objects[3]; in.Index == nil || in.Index.Count != 0 {
		t.Errorf("empty channel must keep its index, got %+v", in)
	}
	if s := got.Objects[4]; s.Index == nil || s.Index.DataSize() != 10 {
		t.Errorf("string index total size lost: %+v", s)
	}
	if again := got.Objects[5]; !again.Reuse || again.Index != nil {
		t.Errorf("expected reused index, got %+v", again)
	}
}

func TestReadMetadataUnsupportedIndex(t *testing.T) {
	tests := []struct {
		name  string
		index []uint32
	}{
		{"daqmx", []uint32{DAQmxFormatScale}},
		{"two dimensions", []uint32{indexLength, uint32(dtype.Int16), 2, 0, 0}},
		{"extended float", []uint32{indexLength, 0x0B, 1, 0, 0}},
		{"unknown type code", []uint32{indexLength, 0x99, 7, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &binpkg.Buffer{}
			w := binpkg.NewWriter(buf, binpkg.DefaultConfig())
			w.WriteUint32(1)
			w.WriteString("/'g'/'c'")
			for _, v := range tt.index {
				w.WriteUint32(v)
			}
			w.WriteUint32(0)

			_, err := ReadMetadata(binpkg.NewReader(bytesReaderAt(buf.Bytes()), binpkg.DefaultConfig()))
			if !errors.Is(err, ErrUnsupportedIndex) {
				t.Errorf("expected ErrUnsupportedIndex, got %v", err)
			}
		})
	}
}
