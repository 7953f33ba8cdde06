package segment

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	binpkg "github.com/robert-malhotra/go-tdms/internal/binary"
)

// Tag marks the start of every segment in a .tdms file.
var Tag = []byte("TDSm")

// LeadInSize is the size in bytes of a segment lead-in.
const LeadInSize = 28

// Supported file format versions.
const (
	Version4712 uint32 = 4712
	Version4713 uint32 = 4713
)

// Incomplete is the next segment offset written by a writer that did not
// finish the segment. Readers treat the segment as extending to end of file.
const Incomplete uint64 = 0xFFFFFFFFFFFFFFFF

var (
	ErrNotTDMS            = errors.New("not a TDMS segment")
	ErrUnsupportedVersion = errors.New("unsupported TDMS version")
)

// ToC is the table of contents bit mask of a segment.
type ToC uint32

// Table of contents flags.
const (
	MetaData        ToC = 1 << 1
	NewObjList      ToC = 1 << 2
	RawData         ToC = 1 << 3
	InterleavedData ToC = 1 << 5
	BigEndian       ToC = 1 << 6
	DAQmxRawData    ToC = 1 << 7
)

var tocNames = []struct {
	flag ToC
	name string
}{
	{MetaData, "MetaData"},
	{NewObjList, "NewObjList"},
	{RawData, "RawData"},
	{InterleavedData, "InterleavedData"},
	{BigEndian, "BigEndian"},
	{DAQmxRawData, "DAQmxRawData"},
}

// Has reports whether all bits of flag are set.
func (t ToC) Has(flag ToC) bool {
	return t&flag == flag
}

// String lists the set flags separated by '|'.
func (t ToC) String() string {
	var parts []string
	for _, n := range tocNames {
		if t.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

// LeadIn is the fixed-size header of a segment.
type LeadIn struct {
	ToC               ToC
	Version           uint32
	NextSegmentOffset uint64
	RawDataOffset     uint64
}

// ByteOrder returns the byte order used by the rest of the segment.
func (l *LeadIn) ByteOrder() binary.ByteOrder {
	if l.ToC.Has(BigEndian) {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Complete reports whether the writer finished the segment.
func (l *LeadIn) Complete() bool {
	return l.NextSegmentOffset != Incomplete
}

// Write writes the lead-in at the current writer position. The mask is
// always little-endian; the remaining fields follow the segment byte order.
func (l *LeadIn) Write(w *binpkg.Writer) error {
	if err := w.WriteBytes(Tag); err != nil {
		return err
	}
	le := w.WithOrder(binary.LittleEndian)
	if err := le.WriteUint32(uint32(l.ToC)); err != nil {
		return err
	}
	rest := le.WithOrder(l.ByteOrder())
	if err := rest.WriteUint32(l.Version); err != nil {
		return err
	}
	if err := rest.WriteUint64(l.NextSegmentOffset); err != nil {
		return err
	}
	if err := rest.WriteUint64(l.RawDataOffset); err != nil {
		return err
	}
	w.Skip(LeadInSize - int64(len(Tag)))
	return nil
}

// Read parses a lead-in at the current reader position and advances past it.
func Read(r *binpkg.Reader) (*LeadIn, error) {
	tag, err := r.ReadBytes(len(Tag))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(tag, Tag) {
		return nil, ErrNotTDMS
	}

	le := r.WithOrder(binary.LittleEndian)
	toc, err := le.ReadUint32()
	if err != nil {
		return nil, err
	}
	l := &LeadIn{ToC: ToC(toc)}

	rest := le.WithOrder(l.ByteOrder())
	if l.Version, err = rest.ReadUint32(); err != nil {
		return nil, err
	}
	if l.Version != Version4712 && l.Version != Version4713 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, l.Version)
	}
	if l.NextSegmentOffset, err = rest.ReadUint64(); err != nil {
		return nil, err
	}
	if l.RawDataOffset, err = rest.ReadUint64(); err != nil {
		return nil, err
	}

	r.Skip(LeadInSize - int64(len(Tag)))
	return l, nil
}
