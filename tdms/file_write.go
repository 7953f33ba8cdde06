package tdms

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"

	binpkg "github.com/robert-malhotra/go-tdms/internal/binary"
	"github.com/robert-malhotra/go-tdms/internal/object"
	"github.com/robert-malhotra/go-tdms/internal/segment"
)

// Writer appends segments to a TDMS file.
type Writer struct {
	path     string
	file     *os.File
	writer   *binpkg.Writer
	order    binary.ByteOrder
	version  uint32
	pos      int64
	segments int
	closed   bool
}

// Create creates a new TDMS file at the given path, truncating any
// existing file.
func Create(path string, opts ...WriterOption) (*Writer, error) {
	osFile, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := NewWriter(osFile, opts...)
	w.path = path
	w.file = osFile
	return w, nil
}

// NewWriter creates a writer over an arbitrary io.WriterAt, starting at
// offset 0. Close does not close dst.
func NewWriter(dst io.WriterAt, opts ...WriterOption) *Writer {
	options := defaultWriterOptions()
	for _, opt := range opts {
		opt(options)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if options.bigEndian {
		order = binary.BigEndian
	}

	return &Writer{
		writer:  binpkg.NewWriter(dst, binpkg.Config{ByteOrder: order}),
		order:   order,
		version: options.version,
	}
}

// Path returns the file path, or "" for writers created with NewWriter.
func (w *Writer) Path() string {
	return w.path
}

// Segments returns the number of segments written so far.
func (w *Writer) Segments() int {
	return w.segments
}

// Size returns the number of bytes written so far.
func (w *Writer) Size() int64 {
	return w.pos
}

// WriteSegment writes one segment containing the given objects. Channel
// objects contribute raw data in the order given; the new object list
// replaces the previous segment's list.
func (w *Writer) WriteSegment(objs ...Object) error {
	if w.closed {
		return ErrClosed
	}

	meta, raw, err := buildSegment(objs)
	if err != nil {
		return err
	}

	start := w.pos
	metaStart := start + segment.LeadInSize

	// Metadata and raw data first, lead-in last once sizes are known.
	mw := w.writer.At(metaStart)
	if err := meta.Write(mw); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	metaSize := mw.Pos() - metaStart

	for _, ch := range raw {
		if err := mw.WriteBytes(w.encode(ch)); err != nil {
			return fmt.Errorf("writing %s data: %w", ch.Path(), err)
		}
	}
	end := mw.Pos()
	rawSize := end - metaStart - metaSize

	toc := segment.MetaData | segment.NewObjList
	if rawSize > 0 {
		toc |= segment.RawData
	}
	if w.order == binary.BigEndian {
		toc |= segment.BigEndian
	}
	li := &segment.LeadIn{
		ToC:               toc,
		Version:           w.version,
		NextSegmentOffset: uint64(end - metaStart),
		RawDataOffset:     uint64(metaSize),
	}
	if err := li.Write(w.writer.At(start)); err != nil {
		return fmt.Errorf("writing lead-in: %w", err)
	}

	w.pos = end
	w.segments++
	return nil
}

// encode returns the channel bytes in the writer's byte order.
func (w *Writer) encode(ch *ChannelObject) []byte {
	size := ch.Type.Size()
	if w.order == binary.LittleEndian || size == 1 {
		return ch.Data
	}
	out := slices.Clone(ch.Data)
	for i := 0; i+size <= len(out); i += size {
		slices.Reverse(out[i : i+size])
	}
	return out
}

func buildSegment(objs []Object) (*object.Metadata, []*ChannelObject, error) {
	meta := &object.Metadata{Objects: make([]object.Object, 0, len(objs))}
	var raw []*ChannelObject
	seen := make(map[string]bool, len(objs))

	for _, o := range objs {
		path := o.Path()
		if seen[path] {
			return nil, nil, fmt.Errorf("object %s appears twice in one segment", path)
		}
		seen[path] = true

		props, err := buildProperties(o.properties())
		if err != nil {
			return nil, nil, fmt.Errorf("object %s: %w", path, err)
		}
		entry := object.Object{Path: path, Properties: props}

		if ch, ok := o.(*ChannelObject); ok {
			if err := ch.validate(); err != nil {
				return nil, nil, err
			}
			entry.Index = &object.Index{Type: ch.Type, Dimension: 1, Count: uint64(ch.Len())}
			raw = append(raw, ch)
		}
		meta.Objects = append(meta.Objects, entry)
	}
	return meta, raw, nil
}

// buildProperties converts a property map in sorted key order.
func buildProperties(m map[string]any) ([]object.Property, error) {
	if len(m) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	props := make([]object.Property, 0, len(keys))
	for _, k := range keys {
		p, err := object.NewProperty(k, m[k])
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

// Close flushes the file to disk and closes it. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.file == nil {
		return nil
	}
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
