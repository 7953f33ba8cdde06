package dtype

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		expected Type
	}{
		{"int8", Int8},
		{"int16", Int16},
		{"INT16", Int16},
		{" int32 ", Int32},
		{"int64", Int64},
		{"uint8", Uint8},
		{"uint16", Uint16},
		{"uint32", Uint32},
		{"uint64", Uint64},
		{"float32", Float32},
		{"float64", Float64},
		{"i2", Int16},
		{"<i2", Int16},
		{"=u4", Uint32},
		{"|u1", Uint8},
		{"f4", Float32},
		{"single", Float32},
		{"double", Float64},
		{"float", Float64},
		{"short", Int16},
		{"byte", Int8},
		{"ubyte", Uint8},
		{"int", Int64},
		{"long", Int64},
		{"intp", Int64},
		{"uint", Uint64},
		{"ulong", Uint64},
		{"uintp", Uint64},
		{"string", String},
		{"bool", Boolean},
		{"timestamp", Timestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, name := range []string{"", "int12", "complex64", ">i2", "<"} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(name); !errors.Is(err, ErrUnknownType) {
				t.Errorf("expected ErrUnknownType for %q, got %v", name, err)
			}
		})
	}
}

func TestTypeProperties(t *testing.T) {
	tests := []struct {
		t       Type
		name    string
		size    int
		numeric bool
		signed  bool
		float   bool
	}{
		{Int8, "int8", 1, true, true, false},
		{Int16, "int16", 2, true, true, false},
		{Int32, "int32", 4, true, true, false},
		{Int64, "int64", 8, true, true, false},
		{Uint8, "uint8", 1, true, false, false},
		{Uint16, "uint16", 2, true, false, false},
		{Uint32, "uint32", 4, true, false, false},
		{Uint64, "uint64", 8, true, false, false},
		{Float32, "float32", 4, true, false, true},
		{Float64, "float64", 8, true, false, true},
		{String, "string", 0, false, false, false},
		{Boolean, "bool", 1, false, false, false},
		{Timestamp, "timestamp", 16, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.t.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.t.String(), tt.name)
			}
			if tt.t.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", tt.t.Size(), tt.size)
			}
			if tt.t.IsNumeric() != tt.numeric {
				t.Errorf("IsNumeric() = %v, want %v", tt.t.IsNumeric(), tt.numeric)
			}
			if tt.t.IsSigned() != tt.signed {
				t.Errorf("IsSigned() = %v, want %v", tt.t.IsSigned(), tt.signed)
			}
			if tt.t.IsFloat() != tt.float {
				t.Errorf("IsFloat() = %v, want %v", tt.t.IsFloat(), tt.float)
			}
			if !tt.t.Known() {
				t.Error("expected type to be known")
			}
		})
	}

	if Type(0x0B).Known() {
		t.Error("extended float should not be known")
	}
	if Type(0x0B).String() != "type(0x0b)" {
		t.Errorf("unexpected name for unknown type: %q", Type(0x0B).String())
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		v        any
		expected Type
	}{
		{int8(1), Int8},
		{int16(1), Int16},
		{int32(1), Int32},
		{int64(1), Int64},
		{1, Int64},
		{uint8(1), Uint8},
		{uint(1), Uint64},
		{float32(1), Float32},
		{1.5, Float64},
		{"x", String},
		{true, Boolean},
		{time.Now(), Timestamp},
	}
	for _, tt := range tests {
		got, ok := Of(tt.v)
		if !ok || got != tt.expected {
			t.Errorf("Of(%T) = %v, %v; want %v", tt.v, got, ok, tt.expected)
		}
	}

	if _, ok := Of([]int{1}); ok {
		t.Error("expected slices to be rejected")
	}
}

func TestFor(t *testing.T) {
	if For[int16]() != Int16 {
		t.Errorf("For[int16] = %v", For[int16]())
	}
	if For[float64]() != Float64 {
		t.Errorf("For[float64] = %v", For[float64]())
	}
	if For[uint8]() != Uint8 {
		t.Errorf("For[uint8] = %v", For[uint8]())
	}
}

func encode[T Number](vals ...T) []byte {
	b, err := binary.Append(nil, binary.LittleEndian, vals)
	if err != nil {
		panic(err)
	}
	return b
}

func TestCast(t *testing.T) {
	le := binary.LittleEndian
	tests := []struct {
		name     string
		src      []byte
		from, to Type
		expected []byte
	}{
		{"int16 to float32", encode[int16](-2, 0, 300), Int16, Float32, encode[float32](-2, 0, 300)},
		{"float32 to int16 truncates", encode[float32](1.9, -1.9, 2.5), Float32, Int16, encode[int16](1, -1, 2)},
		{"int16 to int8 wraps", encode[int16](127, 128, -129), Int16, Int8, encode[int8](127, -128, 127)},
		{"int16 to uint16 reinterprets sign", encode[int16](-1), Int16, Uint16, encode[uint16](0xFFFF)},
		{"uint8 to int16 widens", encode[uint8](0, 255), Uint8, Int16, encode[int16](0, 255)},
		{"uint64 to float64", encode[uint64](1 << 40), Uint64, Float64, encode[float64](1 << 40)},
		{"float64 to uint64 large", encode[float64](1 << 63), Float64, Uint64, encode[uint64](1 << 63)},
		{"int32 to int64 sign extends", encode[int32](-5), Int32, Int64, encode[int64](-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.src, tt.from, tt.to, le)
			if err != nil {
				t.Fatalf("Cast failed: %v", err)
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCastSameTypeReusesBuffer(t *testing.T) {
	src := encode[int16](1, 2, 3)
	got, err := Cast(src, Int16, Int16, binary.LittleEndian)
	if err != nil {
		t.Fatalf("Cast failed: %v", err)
	}
	if &got[0] != &src[0] {
		t.Error("expected same-type cast to return the source buffer")
	}
}

func TestCastDropsPartialElement(t *testing.T) {
	src := append(encode[int16](7), 0xAA)
	got, err := Cast(src, Int16, Int32, binary.LittleEndian)
	if err != nil {
		t.Fatalf("Cast failed: %v", err)
	}
	if !bytes.Equal(got, encode[int32](7)) {
		t.Errorf("expected single element, got %v", got)
	}
}

func TestCastRejectsNonNumeric(t *testing.T) {
	if _, err := Cast(nil, String, Int16, binary.LittleEndian); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
	if _, err := Cast(nil, Int16, Timestamp, binary.LittleEndian); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	var i16 []int16
	if err := Decode(Int16, encode[int16](-3, 4), binary.LittleEndian, &i16); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(i16) != 2 || i16[0] != -3 || i16[1] != 4 {
		t.Errorf("unexpected values %v", i16)
	}

	var f64 []float64
	if err := Decode(Float64, encode[float64](0.25), binary.LittleEndian, &f64); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(f64) != 1 || f64[0] != 0.25 {
		t.Errorf("unexpected values %v", f64)
	}

	be, _ := binary.Append(nil, binary.BigEndian, []uint32{0x01020304})
	var u32 []uint32
	if err := Decode(Uint32, be, binary.BigEndian, &u32); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if u32[0] != 0x01020304 {
		t.Errorf("expected 0x01020304, got 0x%08x", u32[0])
	}
}

func TestDecodeMismatch(t *testing.T) {
	var f32 []float32
	err := Decode(Int16, encode[int16](1), binary.LittleEndian, &f32)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}

	var s []string
	err = Decode(String, nil, binary.LittleEndian, &s)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}
