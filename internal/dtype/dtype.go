package dtype

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownType is returned when a type name or code is not recognized.
var ErrUnknownType = errors.New("unknown data type")

// Type is a TDMS data type code as stored in the raw data index and in
// property definitions.
type Type uint32

// TDMS data type codes.
const (
	Void      Type = 0x00
	Int8      Type = 0x01
	Int16     Type = 0x02
	Int32     Type = 0x03
	Int64     Type = 0x04
	Uint8     Type = 0x05
	Uint16    Type = 0x06
	Uint32    Type = 0x07
	Uint64    Type = 0x08
	Float32   Type = 0x09
	Float64   Type = 0x0A
	String    Type = 0x20
	Boolean   Type = 0x21
	Timestamp Type = 0x44
)

var names = map[Type]string{
	Void:      "void",
	Int8:      "int8",
	Int16:     "int16",
	Int32:     "int32",
	Int64:     "int64",
	Uint8:     "uint8",
	Uint16:    "uint16",
	Uint32:    "uint32",
	Uint64:    "uint64",
	Float32:   "float32",
	Float64:   "float64",
	String:    "string",
	Boolean:   "bool",
	Timestamp: "timestamp",
}

// aliases maps NumPy-style spellings onto canonical numeric types.
var aliases = map[string]Type{
	"i1": Int8, "byte": Int8,
	"i2": Int16, "short": Int16,
	"i4": Int32, "intc": Int32,
	"i8": Int64, "longlong": Int64, "int": Int64, "long": Int64, "intp": Int64,
	"u1": Uint8, "ubyte": Uint8,
	"u2": Uint16, "ushort": Uint16,
	"u4": Uint32, "uintc": Uint32,
	"u8": Uint64, "ulonglong": Uint64, "uint": Uint64, "ulong": Uint64, "uintp": Uint64,
	"f4": Float32, "single": Float32,
	"f8": Float64, "double": Float64, "float": Float64,
}

// String returns the canonical name of the type.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("type(0x%02x)", uint32(t))
}

// Size returns the size in bytes of one element, or 0 for variable-size
// and unknown types.
func (t Type) Size() int {
	switch t {
	case Int8, Uint8, Boolean:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Timestamp:
		return 16
	default:
		return 0
	}
}

// Known reports whether t is a type this package can encode or decode.
func (t Type) Known() bool {
	_, ok := names[t]
	return ok
}

// IsNumeric reports whether t is a fixed-width integer or float type.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsInteger reports whether t is a fixed-width integer type.
func (t Type) IsInteger() bool {
	return t >= Int8 && t <= Uint64
}

// IsSigned reports whether t is a signed integer type.
func (t Type) IsSigned() bool {
	return t >= Int8 && t <= Int64
}

// IsFloat reports whether t is a floating-point type.
func (t Type) IsFloat() bool {
	return t == Float32 || t == Float64
}

// Parse converts a storage type specifier into a Type. Matching is
// case-insensitive and ignores a leading byte-order mark ('<', '=' or '|').
// Big-endian specifiers ('>') are rejected since raw data is written
// little-endian.
func Parse(name string) (Type, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(s, ">") {
		return Void, fmt.Errorf("%w: %q (big-endian storage types are not supported)", ErrUnknownType, name)
	}
	s = strings.TrimLeft(s, "<=|")
	if s == "" {
		return Void, fmt.Errorf("%w: empty type name", ErrUnknownType)
	}
	if t, ok := aliases[s]; ok {
		return t, nil
	}
	for t, n := range names {
		if n == s {
			return t, nil
		}
	}
	return Void, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Of returns the TDMS property type for a Go value. Plain int and uint map
// to their 64-bit TDMS counterparts.
func Of(v any) (Type, bool) {
	switch v.(type) {
	case int8:
		return Int8, true
	case int16:
		return Int16, true
	case int32:
		return Int32, true
	case int64, int:
		return Int64, true
	case uint8:
		return Uint8, true
	case uint16:
		return Uint16, true
	case uint32:
		return Uint32, true
	case uint64, uint:
		return Uint64, true
	case float32:
		return Float32, true
	case float64:
		return Float64, true
	case string:
		return String, true
	case bool:
		return Boolean, true
	case time.Time:
		return Timestamp, true
	default:
		return Void, false
	}
}

// Number is the set of Go element types that have a fixed-width TDMS
// representation.
type Number interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// For returns the TDMS type for the Go element type T.
func For[T Number]() Type {
	var zero T
	t, _ := Of(zero)
	return t
}
