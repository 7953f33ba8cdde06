package tdms

import "github.com/robert-malhotra/go-tdms/internal/segment"

// WriterOption configures file creation options.
type WriterOption func(*writerOptions)

type writerOptions struct {
	version   uint32
	bigEndian bool
}

func defaultWriterOptions() *writerOptions {
	return &writerOptions{
		version: segment.Version4712,
	}
}

// WithVersion sets the file format version written to each lead-in
// (4712 or 4713). Other values are ignored.
func WithVersion(version uint32) WriterOption {
	return func(o *writerOptions) {
		if version == segment.Version4712 || version == segment.Version4713 {
			o.version = version
		}
	}
}

// WithBigEndian writes metadata and raw data in big-endian byte order.
func WithBigEndian() WriterOption {
	return func(o *writerOptions) {
		o.bigEndian = true
	}
}
