package tdms

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	binpkg "github.com/robert-malhotra/go-tdms/internal/binary"
	"github.com/robert-malhotra/go-tdms/internal/object"
	"github.com/robert-malhotra/go-tdms/internal/segment"
)

// File represents an open TDMS file. All segments are indexed when the
// file is opened; channel data is read on demand.
type File struct {
	path     string
	file     *os.File
	r        io.ReaderAt
	size     int64
	root     *objectState
	groups   []*Group
	objects  map[string]*objectState
	segments []SegmentInfo
	closed   bool
}

// SegmentInfo describes one segment found while scanning the file.
type SegmentInfo struct {
	Offset     int64
	Version    uint32
	Flags      string
	BigEndian  bool
	Objects    int
	MetaSize   int64
	RawSize    int64
	Chunks     int
	Incomplete bool
}

// objectState accumulates an object across segments.
type objectState struct {
	path   string
	props  []object.Property
	index  *object.Index
	chunks []chunk
}

// chunk locates one append of channel data.
type chunk struct {
	offset int64
	count  uint64
	typ    DataType
	order  binary.ByteOrder
}

func (s *objectState) setProperty(p object.Property) {
	for i := range s.props {
		if s.props[i].Name == p.Name {
			s.props[i] = p
			return
		}
	}
	s.props = append(s.props, p)
}

func (s *objectState) properties() map[string]any {
	m := make(map[string]any, len(s.props))
	for _, p := range s.props {
		m[p.Name] = p.Value
	}
	return m
}

// Open opens a TDMS file for reading.
func Open(path string) (*File, error) {
	osFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	info, err := osFile.Stat()
	if err != nil {
		osFile.Close()
		return nil, fmt.Errorf("opening file: %w", err)
	}

	f, err := NewReader(osFile, info.Size())
	if err != nil {
		osFile.Close()
		return nil, err
	}
	f.path = path
	f.file = osFile
	return f, nil
}

// NewReader indexes TDMS data of the given size held by r.
func NewReader(r io.ReaderAt, size int64) (*File, error) {
	f := &File{
		r:       r,
		size:    size,
		objects: make(map[string]*objectState),
	}
	f.root = f.state(RootPath)

	if err := f.scan(); err != nil {
		return nil, err
	}
	return f, nil
}

// Close closes the underlying file. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

// Path returns the file path, or "" for files opened with NewReader.
func (f *File) Path() string {
	return f.path
}

// Properties returns the file-level properties.
func (f *File) Properties() map[string]any {
	return f.root.properties()
}

// Segments returns the segments in file order.
func (f *File) Segments() []SegmentInfo {
	return f.segments
}

// Groups returns the groups in the order they first appear.
func (f *File) Groups() []*Group {
	return f.groups
}

// Group returns the named group.
func (f *File) Group(name string) (*Group, error) {
	for _, g := range f.groups {
		if g.name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("group %q: %w", name, ErrNotFound)
}

// Channel returns the named channel of the named group.
func (f *File) Channel(group, name string) (*Channel, error) {
	g, err := f.Group(group)
	if err != nil {
		return nil, err
	}
	return g.Channel(name)
}

func (f *File) state(path string) *objectState {
	s, ok := f.objects[path]
	if !ok {
		s = &objectState{path: path}
		f.objects[path] = s
	}
	return s
}

// register records a newly seen object in the group/channel tree.
func (f *File) register(path string) error {
	if path == RootPath {
		return nil
	}
	group, channel, err := SplitPath(path)
	if err != nil {
		return err
	}

	g := f.findGroup(group)
	if g == nil {
		g = &Group{file: f, name: group, state: f.state(GroupPath(group))}
		f.groups = append(f.groups, g)
	}
	if channel == "" {
		return nil
	}
	for _, c := range g.channels {
		if c.name == channel {
			return nil
		}
	}
	g.channels = append(g.channels, &Channel{file: f, group: group, name: channel, state: f.state(path)})
	return nil
}

func (f *File) findGroup(name string) *Group {
	for _, g := range f.groups {
		if g.name == name {
			return g
		}
	}
	return nil
}

// active is an entry of the current object list.
type active struct {
	state *objectState
	index *object.Index
}

func (f *File) scan() error {
	var list []active
	var pos int64

	if f.size == 0 {
		return ErrNotTDMS
	}
	for pos < f.size {
		if f.size-pos < segment.LeadInSize {
			if pos == 0 {
				return ErrNotTDMS
			}
			// trailing bytes too short for a lead-in
			break
		}

		li, err := segment.Read(binpkg.NewReader(f.r, binpkg.DefaultConfig()).At(pos))
		if err != nil {
			if pos == 0 {
				return err
			}
			return fmt.Errorf("segment at %d: %w", pos, err)
		}
		if li.ToC.Has(segment.InterleavedData) && li.ToC.Has(segment.RawData) {
			return fmt.Errorf("%w: interleaved data in segment at %d", ErrUnsupported, pos)
		}
		if li.ToC.Has(segment.DAQmxRawData) {
			return fmt.Errorf("%w: DAQmx data in segment at %d", ErrUnsupported, pos)
		}

		metaStart := pos + segment.LeadInSize
		info := SegmentInfo{
			Offset:    pos,
			Version:   li.Version,
			Flags:     li.ToC.String(),
			BigEndian: li.ToC.Has(segment.BigEndian),
		}

		avail := uint64(f.size - metaStart)
		next := li.NextSegmentOffset
		if !li.Complete() || next > avail {
			next = avail
			info.Incomplete = true
		}
		segEnd := metaStart + int64(next)

		if li.RawDataOffset > next && !info.Incomplete {
			return fmt.Errorf("segment at %d: raw data offset %d past segment end", pos, li.RawDataOffset)
		}
		rawStart := metaStart + int64(min(li.RawDataOffset, next))

		if li.ToC.Has(segment.MetaData) {
			r := binpkg.NewReader(f.r, binpkg.Config{ByteOrder: li.ByteOrder()}).At(metaStart)
			meta, err := object.ReadMetadata(r)
			if err != nil {
				if errors.Is(err, object.ErrUnsupportedIndex) {
					return fmt.Errorf("%w: segment at %d: %v", ErrUnsupported, pos, err)
				}
				return fmt.Errorf("segment at %d: reading metadata: %w", pos, err)
			}
			if list, err = f.applyMetadata(list, meta, li.ToC.Has(segment.NewObjList)); err != nil {
				return fmt.Errorf("segment at %d: %w", pos, err)
			}
			info.Objects = len(meta.Objects)
		}
		info.MetaSize = rawStart - metaStart

		if li.ToC.Has(segment.RawData) {
			info.RawSize = segEnd - rawStart
			info.Chunks = f.indexChunks(list, rawStart, segEnd, li.ByteOrder())
		}

		f.segments = append(f.segments, info)
		pos = segEnd
	}
	return nil
}

// applyMetadata merges a segment's object list into the active list.
func (f *File) applyMetadata(list []active, meta *object.Metadata, newList bool) ([]active, error) {
	if newList {
		list = nil
	} else {
		list = append([]active(nil), list...)
	}

	for _, obj := range meta.Objects {
		if _, seen := f.objects[obj.Path]; !seen {
			if err := f.register(obj.Path); err != nil {
				return nil, err
			}
		}
		s := f.state(obj.Path)
		for _, p := range obj.Properties {
			s.setProperty(p)
		}

		var idx *object.Index
		switch {
		case obj.Reuse:
			if s.index == nil {
				return nil, fmt.Errorf("object %s reuses an index it never had", obj.Path)
			}
			idx = s.index
		case obj.Index != nil:
			if !obj.Index.Type.IsNumeric() {
				return nil, fmt.Errorf("%w: %v data in %s", ErrUnsupported, obj.Index.Type, obj.Path)
			}
			idx = obj.Index
			s.index = idx
		}

		found := false
		for i := range list {
			if list[i].state == s {
				list[i].index = idx
				found = true
				break
			}
		}
		if !found {
			list = append(list, active{state: s, index: idx})
		}
	}
	return list, nil
}

// indexChunks records channel data locations in [start, end) and returns
// the number of chunks, counting a trailing partial chunk.
func (f *File) indexChunks(list []active, start, end int64, order binary.ByteOrder) int {
	var chunkSize int64
	for _, a := range list {
		if a.index != nil {
			chunkSize += int64(a.index.DataSize())
		}
	}
	if chunkSize == 0 {
		return 0
	}

	n := 0
	for off := start; off < end; {
		progressed := false
		for _, a := range list {
			if a.index == nil {
				continue
			}
			size := int64(a.index.Type.Size())
			count := a.index.Count
			if remaining := end - off; int64(count)*size > remaining {
				count = uint64(remaining / size)
			}
			if count == 0 {
				continue
			}
			a.state.chunks = append(a.state.chunks, chunk{
				offset: off,
				count:  count,
				typ:    a.index.Type,
				order:  order,
			})
			off += int64(count) * size
			progressed = true
		}
		if !progressed {
			break
		}
		n++
	}
	return n
}

// readChunks concatenates the little-endian bytes of the given chunks.
func (f *File) readChunks(chunks []chunk) ([]byte, error) {
	if f.closed {
		return nil, ErrClosed
	}
	var total int
	for _, c := range chunks {
		total += int(c.count) * c.typ.Size()
	}

	var buf bytes.Buffer
	buf.Grow(total)
	for _, c := range chunks {
		size := c.typ.Size()
		data := make([]byte, int(c.count)*size)
		if n, err := f.r.ReadAt(data, c.offset); err != nil && !(errors.Is(err, io.EOF) && n == len(data)) {
			return nil, fmt.Errorf("reading data at %d: %w", c.offset, err)
		}
		if c.order == binary.BigEndian && size > 1 {
			for i := 0; i+size <= len(data); i += size {
				for a, b := i, i+size-1; a < b; a, b = a+1, b-1 {
					data[a], data[b] = data[b], data[a]
				}
			}
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
