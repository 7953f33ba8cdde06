// Package object handles the metadata block of a TDMS segment.
//
// Every segment that sets the MetaData flag carries an object list: the
// file (root), group and channel objects touched by the segment, each with
// a raw data index and a property list:
//
//	uint32              number of objects
//	per object:
//	  string            object path (e.g. /'group'/'channel')
//	  uint32            raw data index length, or a sentinel:
//	                      0xFFFFFFFF no raw data in this segment
//	                      0x00000000 same index as the previous segment
//	  [index]           data type, dimension (1), value count, [total size]
//	  uint32            number of properties
//	  per property:     name string, data type, value
//
// Strings are stored as a uint32 byte length followed by UTF-8 bytes.
// Timestamps are seconds since 1904-01-01 UTC plus fractions of 2^-64 s.
//
// # Usage
//
// Build and write the metadata of a segment:
//
//	p, err := object.NewProperty("fs_in_hz", 4.9152e9)
//	meta := &object.Metadata{Objects: []object.Object{
//	    {Path: "/'p'/'in'", Index: &object.Index{Type: dtype.Int16, Dimension: 1, Count: n},
//	        Properties: []object.Property{p}},
//	}}
//	err = meta.Write(w)
//
// Parse it back:
//
//	meta, err := object.ReadMetadata(r)
//
// # Errors
//
//   - [ErrUnsupportedProperty]: a property value has no TDMS representation
//   - [ErrUnsupportedIndex]: DAQmx raw data indices and multi-dimensional data
package object
