package object

import (
	"errors"
	"fmt"

	binpkg "github.com/robert-malhotra/go-tdms/internal/binary"
	"github.com/robert-malhotra/go-tdms/internal/dtype"
)

// ErrUnsupportedIndex is returned for raw data indices this package cannot handle.
var ErrUnsupportedIndex = errors.New("unsupported raw data index")

// Raw data index sentinels.
const (
	NoData           uint32 = 0xFFFFFFFF
	SameAsPrevious   uint32 = 0x00000000
	DAQmxFormatScale uint32 = 0x69120000
	DAQmxDigitalLine uint32 = 0x69130000
)

const (
	indexLength       = 20
	stringIndexLength = 28
)

// Index is the raw data index of an object within one segment.
type Index struct {
	Type      dtype.Type
	Dimension uint32
	Count     uint64
	// TotalSize is the raw byte size of string data; unused for fixed-width types.
	TotalSize uint64
}

// DataSize returns the number of raw bytes the object contributes per chunk.
func (i *Index) DataSize() uint64 {
	if i.Type == dtype.String {
		return i.TotalSize
	}
	return i.Count * uint64(i.Type.Size())
}

// Object is one entry of a segment's object list.
type Object struct {
	Path string
	// Index is nil when the object has no raw data in the segment.
	Index *Index
	// Reuse marks an index carried over from the previous segment.
	Reuse      bool
	Properties []Property
}

// HasData reports whether the object contributes raw data to the segment.
func (o *Object) HasData() bool {
	return o.Index != nil
}

// Metadata is the object list of a segment.
type Metadata struct {
	Objects []Object
}

// Write serializes the metadata at the current writer position.
func (m *Metadata) Write(w *binpkg.Writer) error {
	if err := w.WriteUint32(uint32(len(m.Objects))); err != nil {
		return err
	}
	for i := range m.Objects {
		if err := m.Objects[i].write(w); err != nil {
			return fmt.Errorf("object %q: %w", m.Objects[i].Path, err)
		}
	}
	return nil
}

func (o *Object) write(w *binpkg.Writer) error {
	if err := w.WriteString(o.Path); err != nil {
		return err
	}
	if err := o.writeIndex(w); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(len(o.Properties))); err != nil {
		return err
	}
	for _, p := range o.Properties {
		if err := p.Write(w); err != nil {
			return err
		}
	}
	return nil
}

func (o *Object) writeIndex(w *binpkg.Writer) error {
	switch {
	case o.Index == nil:
		return w.WriteUint32(NoData)
	case o.Reuse:
		return w.WriteUint32(SameAsPrevious)
	}

	idx := o.Index
	length := uint32(indexLength)
	if idx.Type == dtype.String {
		length = stringIndexLength
	}
	dim := idx.Dimension
	if dim == 0 {
		dim = 1
	}
	if err := w.WriteUint32(length); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(idx.Type)); err != nil {
		return err
	}
	if err := w.WriteUint32(dim); err != nil {
		return err
	}
	if err := w.WriteUint64(idx.Count); err != nil {
		return err
	}
	if idx.Type == dtype.String {
		return w.WriteUint64(idx.TotalSize)
	}
	return nil
}

// ReadMetadata parses the object list at the current reader position.
// Objects whose index is SameAsPrevious are returned with Reuse set and a
// nil Index; the caller resolves them against its own state.
func ReadMetadata(r *binpkg.Reader) (*Metadata, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	m := &Metadata{Objects: make([]Object, 0, n)}
	for i := uint32(0); i < n; i++ {
		obj, err := readObject(r)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		m.Objects = append(m.Objects, obj)
	}
	return m, nil
}

func readObject(r *binpkg.Reader) (Object, error) {
	var obj Object
	var err error

	if obj.Path, err = r.ReadString(); err != nil {
		return obj, err
	}

	length, err := r.ReadUint32()
	if err != nil {
		return obj, err
	}
	switch length {
	case NoData:
	case SameAsPrevious:
		obj.Reuse = true
	case DAQmxFormatScale, DAQmxDigitalLine:
		return obj, fmt.Errorf("%w: DAQmx raw data in %q", ErrUnsupportedIndex, obj.Path)
	default:
		if obj.Index, err = readIndex(r, length); err != nil {
			return obj, fmt.Errorf("%q: %w", obj.Path, err)
		}
	}

	count, err := r.ReadUint32()
	if err != nil {
		return obj, err
	}
	obj.Properties = make([]Property, 0, count)
	for i := uint32(0); i < count; i++ {
		p, err := ReadProperty(r)
		if err != nil {
			return obj, err
		}
		obj.Properties = append(obj.Properties, p)
	}
	return obj, nil
}

func readIndex(r *binpkg.Reader, length uint32) (*Index, error) {
	start := r.Pos()

	code, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	idx := &Index{Type: dtype.Type(code)}
	if !idx.Type.Known() {
		return nil, fmt.Errorf("%w: data type %v", ErrUnsupportedIndex, idx.Type)
	}
	if idx.Dimension, err = r.ReadUint32(); err != nil {
		return nil, err
	}
	if idx.Dimension != 1 {
		return nil, fmt.Errorf("%w: dimension %d", ErrUnsupportedIndex, idx.Dimension)
	}
	if idx.Count, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if idx.Type == dtype.String {
		if idx.TotalSize, err = r.ReadUint64(); err != nil {
			return nil, err
		}
	} else if idx.Type.Size() == 0 {
		return nil, fmt.Errorf("%w: data type %v", ErrUnsupportedIndex, idx.Type)
	}

	// length counts itself; skip any trailing bytes a newer writer added
	if consumed := r.Pos() - start + 4; consumed < int64(length) {
		r.Skip(int64(length) - consumed)
	}
	return idx, nil
}
