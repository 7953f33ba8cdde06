package capture

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"

	"github.com/robert-malhotra/go-tdms/tdms"
)

// Source is a 1-D sequence of samples to be exported.
type Source interface {
	// DataType returns the element type, or tdms.Invalid for untyped bytes.
	DataType() tdms.DataType
	// Len returns the number of elements; for untyped sources, bytes.
	Len() int
	// Bytes returns the elements as little-endian bytes.
	Bytes() []byte
}

// Samples adapts a typed slice.
type Samples[T tdms.Number] []T

// DataType implements Source.
func (s Samples[T]) DataType() tdms.DataType { return tdms.DataTypeFor[T]() }

// Len implements Source.
func (s Samples[T]) Len() int { return len(s) }

// hostLittleEndian reports whether in-memory samples already have the
// on-disk byte order.
var hostLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// Bytes implements Source. On little-endian hosts the result aliases s.
func (s Samples[T]) Bytes() []byte {
	if hostLittleEndian {
		return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData([]T(s)))), len(s)*int(unsafe.Sizeof(*new(T))))
	}
	out, _ := binary.Append(make([]byte, 0, len(s)*s.DataType().Size()), binary.LittleEndian, []T(s))
	return out
}

// Grid adapts a two-dimensional capture, flattened in row-major order.
// Rows may differ in length.
type Grid[T tdms.Number] [][]T

// DataType implements Source.
func (g Grid[T]) DataType() tdms.DataType { return tdms.DataTypeFor[T]() }

// Len implements Source.
func (g Grid[T]) Len() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// Bytes implements Source.
func (g Grid[T]) Bytes() []byte {
	out := make([]byte, 0, g.Len()*g.DataType().Size())
	for _, row := range g {
		out, _ = binary.Append(out, binary.LittleEndian, row)
	}
	return out
}

// Bytes adapts an untyped buffer whose contents are reinterpreted as the
// requested storage type.
type Bytes []byte

// DataType implements Source.
func (b Bytes) DataType() tdms.DataType { return tdms.Invalid }

// Len implements Source.
func (b Bytes) Len() int { return len(b) }

// Bytes implements Source.
func (b Bytes) Bytes() []byte { return b }

// Reader reads r to EOF into an untyped buffer.
func Reader(r io.Reader) (Bytes, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}
	return Bytes(data), nil
}
