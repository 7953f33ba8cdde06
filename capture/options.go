package capture

import (
	"io"
	"log/slog"
	"time"

	"github.com/robert-malhotra/go-tdms/tdms"
)

// Option configures Write.
type Option func(*options)

type options struct {
	filename     string
	outType      tdms.DataType
	inType       tdms.DataType
	directory    string
	group        string
	outChannel   string
	inChannel    string
	chunkSamples int
	properties   map[string]any
	format       string
	logger       *slog.Logger
	now          func() time.Time
}

// Defaults for Write.
const (
	DefaultFilename  = "capture.tdms"
	DefaultDirectory = "captures"
	DefaultGroup     = "p"
	DefaultOut       = "out"
	DefaultIn        = "in"
	DefaultFormat    = "tdms"

	// TargetChunkBytes is the payload size each "in" chunk aims for when
	// no chunk size is given.
	TargetChunkBytes = 16 << 20
)

func defaultOptions() *options {
	return &options{
		filename:   DefaultFilename,
		outType:    tdms.Int16,
		inType:     tdms.Int16,
		directory:  DefaultDirectory,
		group:      DefaultGroup,
		outChannel: DefaultOut,
		inChannel:  DefaultIn,
		format:     DefaultFormat,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
}

// WithFilename sets the output file name. The format extension is appended
// when missing.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithOutType sets the storage type of the "out" channel.
func WithOutType(t tdms.DataType) Option {
	return func(o *options) { o.outType = t }
}

// WithInType sets the storage type of the "in" channel.
func WithInType(t tdms.DataType) Option {
	return func(o *options) { o.inType = t }
}

// WithDirectory sets the output directory, created if missing.
func WithDirectory(dir string) Option {
	return func(o *options) { o.directory = dir }
}

// WithGroup sets the group name.
func WithGroup(name string) Option {
	return func(o *options) { o.group = name }
}

// WithChannels sets the "out" and "in" channel names.
func WithChannels(out, in string) Option {
	return func(o *options) {
		o.outChannel = out
		o.inChannel = in
	}
}

// WithChunkSamples sets the number of "in" samples per segment. Values
// below 1 select the default derived from TargetChunkBytes.
func WithChunkSamples(n int) Option {
	return func(o *options) { o.chunkSamples = n }
}

// WithProperties adds group properties, overriding built-in keys.
func WithProperties(props map[string]any) Option {
	return func(o *options) { o.properties = props }
}

// WithFormat selects a registered container format by name.
func WithFormat(name string) Option {
	return func(o *options) { o.format = name }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the time source used for the "created" property.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}
