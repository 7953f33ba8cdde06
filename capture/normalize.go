package capture

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/robert-malhotra/go-tdms/internal/dtype"
	"github.com/robert-malhotra/go-tdms/tdms"
)

// Array is a contiguous 1-D run of samples of one storage type.
type Array struct {
	typ  tdms.DataType
	data []byte
}

// DataType returns the element type.
func (a Array) DataType() tdms.DataType { return a.typ }

// Len returns the number of elements.
func (a Array) Len() int {
	if size := a.typ.Size(); size > 0 {
		return len(a.data) / size
	}
	return 0
}

// Bytes returns the little-endian element bytes. The slice aliases the
// array.
func (a Array) Bytes() []byte { return a.data }

// Slice returns elements [lo, hi) without copying.
func (a Array) Slice(lo, hi int) Array {
	size := a.typ.Size()
	return Array{typ: a.typ, data: a.data[lo*size : hi*size]}
}

// Normalize converts src into a contiguous array of the target type. A
// target of tdms.Invalid keeps the source type, or uint8 for untyped
// bytes.
func Normalize(src Source, target tdms.DataType) (Array, error) {
	return normalize(src, target, slog.Default())
}

func normalize(src Source, target tdms.DataType, logger *slog.Logger) (Array, error) {
	if src == nil {
		return Array{}, ErrNilCapture
	}

	from := src.DataType()
	if target == tdms.Invalid {
		target = from
		if target == tdms.Invalid {
			target = tdms.Uint8
		}
	}
	if !target.IsNumeric() {
		return Array{}, fmt.Errorf("%w: %v", ErrUnsupportedType, target)
	}

	raw := src.Bytes()
	switch {
	case from == tdms.Invalid:
		size := target.Size()
		if rem := len(raw) % size; rem != 0 {
			logger.Warn("capture length is not a multiple of the element size; dropping trailing bytes",
				"bytes", len(raw), "dtype", target.String(), "dropped", rem)
			raw = raw[:len(raw)-rem]
		}
		return Array{typ: target, data: raw}, nil

	case !from.IsNumeric():
		return Array{}, fmt.Errorf("%w: source type %v", ErrUnsupportedType, from)

	case from == target:
		return Array{typ: target, data: raw}, nil

	default:
		cast, err := dtype.Cast(raw, from, target, binary.LittleEndian)
		if err != nil {
			return Array{}, fmt.Errorf("casting %v to %v: %w", from, target, err)
		}
		return Array{typ: target, data: cast}, nil
	}
}
