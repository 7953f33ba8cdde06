package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrTypeMismatch is returned when a destination does not match the data type.
var ErrTypeMismatch = errors.New("destination does not match data type")

// value holds one element widened to 64 bits along with its domain.
type value struct {
	t Type
	i int64
	u uint64
	f float64
}

func load(buf []byte, t Type, order binary.ByteOrder) value {
	v := value{t: t}
	switch t {
	case Int8:
		v.i = int64(int8(buf[0]))
	case Int16:
		v.i = int64(int16(order.Uint16(buf)))
	case Int32:
		v.i = int64(int32(order.Uint32(buf)))
	case Int64:
		v.i = int64(order.Uint64(buf))
	case Uint8:
		v.u = uint64(buf[0])
	case Uint16:
		v.u = uint64(order.Uint16(buf))
	case Uint32:
		v.u = uint64(order.Uint32(buf))
	case Uint64:
		v.u = order.Uint64(buf)
	case Float32:
		v.f = float64(math.Float32frombits(order.Uint32(buf)))
	case Float64:
		v.f = math.Float64frombits(order.Uint64(buf))
	}
	return v
}

func (v value) int64() int64 {
	switch {
	case v.t.IsSigned():
		return v.i
	case v.t.IsFloat():
		return int64(v.f)
	default:
		return int64(v.u)
	}
}

func (v value) uint64() uint64 {
	switch {
	case v.t.IsSigned():
		return uint64(v.i)
	case v.t.IsFloat():
		if v.f >= math.MaxInt64 {
			return uint64(v.f)
		}
		return uint64(int64(v.f))
	default:
		return v.u
	}
}

func (v value) float64() float64 {
	switch {
	case v.t.IsSigned():
		return float64(v.i)
	case v.t.IsFloat():
		return v.f
	default:
		return float64(v.u)
	}
}

func store(buf []byte, t Type, v value, order binary.ByteOrder) {
	switch t {
	case Int8:
		buf[0] = byte(int8(v.int64()))
	case Int16:
		order.PutUint16(buf, uint16(v.int64()))
	case Int32:
		order.PutUint32(buf, uint32(v.int64()))
	case Int64:
		order.PutUint64(buf, uint64(v.int64()))
	case Uint8:
		buf[0] = byte(v.uint64())
	case Uint16:
		order.PutUint16(buf, uint16(v.uint64()))
	case Uint32:
		order.PutUint32(buf, uint32(v.uint64()))
	case Uint64:
		order.PutUint64(buf, v.uint64())
	case Float32:
		order.PutUint32(buf, math.Float32bits(float32(v.float64())))
	case Float64:
		order.PutUint64(buf, math.Float64bits(v.float64()))
	}
}

// Cast converts raw elements of type from into elements of type to.
// Integers wrap and floats truncate toward zero, as Go conversions do;
// values are never rescaled. When from == to, src is returned unchanged.
// Trailing bytes that do not form a whole element are ignored.
func Cast(src []byte, from, to Type, order binary.ByteOrder) ([]byte, error) {
	if !from.IsNumeric() {
		return nil, fmt.Errorf("%w: cannot cast from %v", ErrUnknownType, from)
	}
	if !to.IsNumeric() {
		return nil, fmt.Errorf("%w: cannot cast to %v", ErrUnknownType, to)
	}
	if from == to {
		return src, nil
	}

	inSize, outSize := from.Size(), to.Size()
	n := len(src) / inSize
	dst := make([]byte, n*outSize)
	for i := 0; i < n; i++ {
		v := load(src[i*inSize:], from, order)
		store(dst[i*outSize:], to, v, order)
	}
	return dst, nil
}

// Decode converts raw bytes of type t into the slice pointed to by dst.
// dst must be a pointer to a slice whose element type matches t exactly.
func Decode(t Type, raw []byte, order binary.ByteOrder, dst any) error {
	switch d := dst.(type) {
	case *[]int8:
		return decodeInto(t, Int8, raw, d, func(b []byte) int8 { return int8(b[0]) })
	case *[]int16:
		return decodeInto(t, Int16, raw, d, func(b []byte) int16 { return int16(order.Uint16(b)) })
	case *[]int32:
		return decodeInto(t, Int32, raw, d, func(b []byte) int32 { return int32(order.Uint32(b)) })
	case *[]int64:
		return decodeInto(t, Int64, raw, d, func(b []byte) int64 { return int64(order.Uint64(b)) })
	case *[]uint8:
		return decodeInto(t, Uint8, raw, d, func(b []byte) uint8 { return b[0] })
	case *[]uint16:
		return decodeInto(t, Uint16, raw, d, order.Uint16)
	case *[]uint32:
		return decodeInto(t, Uint32, raw, d, order.Uint32)
	case *[]uint64:
		return decodeInto(t, Uint64, raw, d, order.Uint64)
	case *[]float32:
		return decodeInto(t, Float32, raw, d, func(b []byte) float32 { return math.Float32frombits(order.Uint32(b)) })
	case *[]float64:
		return decodeInto(t, Float64, raw, d, func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) })
	default:
		return fmt.Errorf("%w: unsupported destination %T", ErrTypeMismatch, dst)
	}
}

func decodeInto[T any](t, want Type, raw []byte, dst *[]T, get func([]byte) T) error {
	if t != want {
		return fmt.Errorf("%w: data is %v, destination is %v", ErrTypeMismatch, t, want)
	}
	size := t.Size()
	n := len(raw) / size
	out := make([]T, n)
	for i := range out {
		out[i] = get(raw[i*size:])
	}
	*dst = out
	return nil
}
