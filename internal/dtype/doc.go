// Package dtype provides TDMS data type handling and Go type conversion.
//
// This package bridges the gap between the TDMS type codes stored in segment
// metadata and Go's type system, providing functionality to:
//
//   - Name TDMS data types and parse storage type specifiers
//   - Determine element sizes for raw data
//   - Cast raw element bytes from one numeric type to another
//   - Decode raw bytes into typed Go slices
//   - Map Go property values to TDMS property types
//
// # Type Mapping Strategy
//
// TDMS data types are mapped to Go types as follows:
//
//	TDMS type         | Code | Go Type
//	------------------|------|------------------
//	tdsTypeI8..I64    | 1-4  | int8/16/32/64
//	tdsTypeU8..U64    | 5-8  | uint8/16/32/64
//	tdsTypeSingleFloat| 9    | float32
//	tdsTypeDoubleFloat| 10   | float64
//	tdsTypeString     | 0x20 | string
//	tdsTypeBoolean    | 0x21 | bool
//	tdsTypeTimeStamp  | 0x44 | time.Time
//
// Extended floats, complex types and DAQmx raw data are not supported.
//
// # Storage Type Specifiers
//
// Use [Parse] to turn a user-supplied name into a [Type]. Canonical names
// (int16, float32, ...) and the common NumPy spellings (i2, <i2, f4, short,
// double, ...) are accepted:
//
//	t, err := dtype.Parse("int16")
//
// # Casting and Decoding
//
// Use [Cast] to convert raw little-endian element bytes between numeric
// types with Go conversion semantics, and [Decode] to read raw bytes into
// a typed slice:
//
//	var samples []int16
//	err := dtype.Decode(dtype.Int16, raw, binary.LittleEndian, &samples)
package dtype
