package object

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"time"

	binpkg "github.com/robert-malhotra/go-tdms/internal/binary"
	"github.com/robert-malhotra/go-tdms/internal/dtype"
)

// ErrUnsupportedProperty is returned for property values without a TDMS type.
var ErrUnsupportedProperty = errors.New("unsupported property value")

// epochOffset is the number of seconds between 1904-01-01 and 1970-01-01 UTC.
const epochOffset = 2082844800

// Property is a named, typed value attached to an object.
type Property struct {
	Name  string
	Type  dtype.Type
	Value any
}

// NewProperty creates a property from a Go value, inferring its TDMS type.
// int and uint values are stored as int64 and uint64.
func NewProperty(name string, v any) (Property, error) {
	t, ok := dtype.Of(v)
	if !ok {
		return Property{}, fmt.Errorf("%w: %q has type %T", ErrUnsupportedProperty, name, v)
	}
	switch x := v.(type) {
	case int:
		v = int64(x)
	case uint:
		v = uint64(x)
	}
	return Property{Name: name, Type: t, Value: v}, nil
}

// Write serializes the property at the current writer position.
func (p Property) Write(w *binpkg.Writer) error {
	if err := w.WriteString(p.Name); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(p.Type)); err != nil {
		return err
	}
	return writeValue(w, p.Type, p.Value)
}

func writeValue(w *binpkg.Writer, t dtype.Type, v any) error {
	switch x := v.(type) {
	case int8:
		return w.WriteUint8(uint8(x))
	case int16:
		return w.WriteUint16(uint16(x))
	case int32:
		return w.WriteUint32(uint32(x))
	case int64:
		return w.WriteInt64(x)
	case uint8:
		return w.WriteUint8(x)
	case uint16:
		return w.WriteUint16(x)
	case uint32:
		return w.WriteUint32(x)
	case uint64:
		return w.WriteUint64(x)
	case float32:
		return w.WriteFloat32(x)
	case float64:
		return w.WriteFloat64(x)
	case string:
		return w.WriteString(x)
	case bool:
		if x {
			return w.WriteUint8(1)
		}
		return w.WriteUint8(0)
	case time.Time:
		return writeTimestamp(w, x)
	default:
		return fmt.Errorf("%w: %v value of type %T", ErrUnsupportedProperty, t, v)
	}
}

// ReadProperty parses one property at the current reader position.
func ReadProperty(r *binpkg.Reader) (Property, error) {
	name, err := r.ReadString()
	if err != nil {
		return Property{}, err
	}
	code, err := r.ReadUint32()
	if err != nil {
		return Property{}, err
	}
	t := dtype.Type(code)
	v, err := readValue(r, t)
	if err != nil {
		return Property{}, fmt.Errorf("property %q: %w", name, err)
	}
	return Property{Name: name, Type: t, Value: v}, nil
}

func readValue(r *binpkg.Reader, t dtype.Type) (any, error) {
	switch t {
	case dtype.Int8:
		v, err := r.ReadUint8()
		return int8(v), err
	case dtype.Int16:
		v, err := r.ReadUint16()
		return int16(v), err
	case dtype.Int32:
		v, err := r.ReadUint32()
		return int32(v), err
	case dtype.Int64:
		return r.ReadInt64()
	case dtype.Uint8:
		return r.ReadUint8()
	case dtype.Uint16:
		return r.ReadUint16()
	case dtype.Uint32:
		return r.ReadUint32()
	case dtype.Uint64:
		return r.ReadUint64()
	case dtype.Float32:
		return r.ReadFloat32()
	case dtype.Float64:
		return r.ReadFloat64()
	case dtype.String:
		return r.ReadString()
	case dtype.Boolean:
		v, err := r.ReadUint8()
		return v != 0, err
	case dtype.Timestamp:
		return readTimestamp(r)
	default:
		return nil, fmt.Errorf("%w: type %v", ErrUnsupportedProperty, t)
	}
}

// writeTimestamp stores t as fractions then seconds in little-endian
// segments, and seconds then fractions in big-endian ones.
func writeTimestamp(w *binpkg.Writer, t time.Time) error {
	secs := t.Unix() + epochOffset
	frac, _ := bits.Div64(uint64(t.Nanosecond()), 0, 1e9)
	if w.ByteOrder() == binary.BigEndian {
		if err := w.WriteInt64(secs); err != nil {
			return err
		}
		return w.WriteUint64(frac)
	}
	if err := w.WriteUint64(frac); err != nil {
		return err
	}
	return w.WriteInt64(secs)
}

func readTimestamp(r *binpkg.Reader) (time.Time, error) {
	var (
		secs int64
		frac uint64
		err  error
	)
	if r.ByteOrder() == binary.BigEndian {
		if secs, err = r.ReadInt64(); err != nil {
			return time.Time{}, err
		}
		frac, err = r.ReadUint64()
	} else {
		if frac, err = r.ReadUint64(); err != nil {
			return time.Time{}, err
		}
		secs, err = r.ReadInt64()
	}
	if err != nil {
		return time.Time{}, err
	}
	ns, lo := bits.Mul64(frac, 1e9)
	if lo >= 1<<63 {
		ns++
	}
	return time.Unix(secs-epochOffset, int64(ns)).UTC(), nil
}
