// Package segment handles the lead-in that starts every TDMS segment.
//
// A TDMS file is a sequence of segments. Each segment begins with a 28-byte
// lead-in, followed by optional metadata and optional raw data:
//
//	Offset | Size | Field
//	-------|------|----------------------------------------------
//	0      | 4    | Tag "TDSm"
//	4      | 4    | Table of contents mask (always little-endian)
//	8      | 4    | Version (4712 or 4713)
//	12     | 8    | Next segment offset, relative to end of lead-in
//	20     | 8    | Raw data offset, relative to end of lead-in
//
// The table of contents declares which parts are present. When the
// [BigEndian] flag is set, every field after the mask (and all metadata and
// raw data of the segment) is big-endian.
//
// # Usage
//
// Write a lead-in once the metadata and raw data sizes are known:
//
//	li := &segment.LeadIn{ToC: segment.MetaData | segment.RawData, Version: segment.Version4712,
//	    NextSegmentOffset: meta + raw, RawDataOffset: meta}
//	err := li.Write(w)
//
// Read the lead-in at a segment boundary:
//
//	li, err := segment.Read(r)
//
// # Errors
//
//   - [ErrNotTDMS]: the tag is missing
//   - [ErrUnsupportedVersion]: the version is neither 4712 nor 4713
package segment
