package tdms

import (
	"errors"
	"testing"
	"time"
)

func TestParseDataType(t *testing.T) {
	tests := []struct {
		name string
		want DataType
	}{
		{"int16", Int16},
		{"<i2", Int16},
		{"f4", Float32},
		{"double", Float64},
		{"ubyte", Uint8},
		{"int", Int64},
		{"uint", Uint64},
		{"long", Int64},
		{"ulong", Uint64},
		{"intp", Int64},
		{"uintp", Uint64},
	}
	for _, tt := range tests {
		got, err := ParseDataType(tt.name)
		if err != nil {
			t.Errorf("ParseDataType(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDataType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseDataType(">i2"); err == nil {
		t.Error("big-endian type strings should be rejected")
	}
}

func TestDataTypeFor(t *testing.T) {
	if DataTypeFor[int16]() != Int16 || DataTypeFor[float64]() != Float64 || DataTypeFor[uint32]() != Uint32 {
		t.Error("DataTypeFor returned the wrong type")
	}
}

func TestPropertyType(t *testing.T) {
	tests := []struct {
		value any
		want  DataType
	}{
		{"s", String},
		{true, Boolean},
		{1, Int64},
		{uint(1), Uint64},
		{int8(1), Int8},
		{float32(1), Float32},
		{2.5, Float64},
		{time.Now(), Timestamp},
	}
	for _, tt := range tests {
		got, err := PropertyType(tt.value)
		if err != nil {
			t.Errorf("PropertyType(%T) failed: %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PropertyType(%T) = %v, want %v", tt.value, got, tt.want)
		}
	}

	if _, err := PropertyType([]byte("x")); !errors.Is(err, ErrUnsupportedProperty) {
		t.Errorf("PropertyType([]byte) = %v, want ErrUnsupportedProperty", err)
	}
}
