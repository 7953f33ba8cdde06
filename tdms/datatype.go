package tdms

import (
	"github.com/robert-malhotra/go-tdms/internal/dtype"
	"github.com/robert-malhotra/go-tdms/internal/object"
)

// DataType identifies the element type of channel data and properties.
type DataType = dtype.Type

// Data types supported for channel data. String, Boolean and Timestamp are
// property-only.
const (
	Invalid   DataType = dtype.Void
	Int8      DataType = dtype.Int8
	Int16     DataType = dtype.Int16
	Int32     DataType = dtype.Int32
	Int64     DataType = dtype.Int64
	Uint8     DataType = dtype.Uint8
	Uint16    DataType = dtype.Uint16
	Uint32    DataType = dtype.Uint32
	Uint64    DataType = dtype.Uint64
	Float32   DataType = dtype.Float32
	Float64   DataType = dtype.Float64
	String    DataType = dtype.String
	Boolean   DataType = dtype.Boolean
	Timestamp DataType = dtype.Timestamp
)

// Number is the set of Go types that can be stored as channel data.
type Number = dtype.Number

// ParseDataType converts a storage type name such as "int16", "f4" or
// "<i2" into a DataType.
func ParseDataType(name string) (DataType, error) {
	return dtype.Parse(name)
}

// DataTypeFor returns the DataType of the Go element type T.
func DataTypeFor[T Number]() DataType {
	return dtype.For[T]()
}

// PropertyType returns the DataType a property value is stored as, or
// ErrUnsupportedProperty if the value has no TDMS representation.
func PropertyType(v any) (DataType, error) {
	p, err := object.NewProperty("", v)
	if err != nil {
		return Invalid, err
	}
	return p.Type, nil
}
