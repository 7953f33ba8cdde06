package capture

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/robert-malhotra/go-tdms/tdms"
)

// Write exports an optional output waveform and an input capture to a new
// file and returns its absolute path.
//
// The first segment holds the root, the group with its properties, the
// "out" channel when out is non-empty, and the first chunk of "in". Each
// following segment appends one more chunk of "in". An empty "in" still
// produces one empty "in" append.
//
// A failure after the file is created leaves the partial file on disk.
func Write(out, in Source, fsOutHz, fsInHz float64, opts ...Option) (path string, err error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	format, err := Lookup(o.format)
	if err != nil {
		return "", err
	}
	if in == nil {
		return "", ErrNilCapture
	}

	if err := os.MkdirAll(o.directory, 0o755); err != nil {
		return "", err
	}

	name := o.filename
	if ext := format.Extension(); !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		name += ext
	}
	path, err = filepath.Abs(filepath.Join(o.directory, name))
	if err != nil {
		return "", err
	}

	inArr, err := normalize(in, o.inType, o.logger)
	if err != nil {
		return "", fmt.Errorf("normalizing %q: %w", o.inChannel, err)
	}
	var outArr Array
	outType := o.outType
	if out != nil {
		if outArr, err = normalize(out, o.outType, o.logger); err != nil {
			return "", fmt.Errorf("normalizing %q: %w", o.outChannel, err)
		}
		outType = outArr.DataType()
	}

	chunk := o.chunkSamples
	if chunk < 1 {
		chunk = DefaultChunkSamples(inArr.DataType())
	}

	groupProps, err := groupProperties(o.now(), fsOutHz, fsInHz, outType, inArr.DataType(), o.properties)
	if err != nil {
		return "", err
	}

	w, err := format.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
			path = ""
		}
	}()

	bounds := chunkBounds(inArr.Len(), chunk)
	log := o.logger.With("path", path, "group", o.group)

	for i, b := range bounds {
		part := inArr.Slice(b[0], b[1])
		inObj := tdms.RawChannelObject(o.group, o.inChannel, part.DataType(), part.Bytes(), nil)

		var objs []tdms.Object
		if i == 0 {
			inObj.Properties = map[string]any{"role": RoleIn}
			objs = append(objs,
				&tdms.RootObject{Properties: rootProperties()},
				&tdms.GroupObject{Name: o.group, Properties: groupProps},
			)
			if outArr.Len() > 0 {
				objs = append(objs, tdms.RawChannelObject(o.group, o.outChannel, outArr.DataType(), outArr.Bytes(),
					map[string]any{"role": RoleOut}))
			}
		}
		objs = append(objs, inObj)

		if err := w.WriteSegment(objs...); err != nil {
			return "", fmt.Errorf("writing segment %d of %s: %w", i+1, path, err)
		}
		log.Debug("segment written", "segment", i+1, "offset", b[0], "samples", b[1]-b[0])
	}

	log.Info("capture exported",
		"in_samples", inArr.Len(),
		"out_samples", outArr.Len(),
		"segments", len(bounds),
		"chunk_samples", chunk,
	)
	return path, nil
}

// DefaultChunkSamples returns the number of samples of type t that fit in
// TargetChunkBytes, at least 1.
func DefaultChunkSamples(t tdms.DataType) int {
	size := t.Size()
	if size < 1 {
		return 1
	}
	return max(1, TargetChunkBytes/size)
}

// chunkBounds splits [0, n) into windows of at most chunk samples. An empty
// range yields one empty window.
func chunkBounds(n, chunk int) [][2]int {
	if n == 0 {
		return [][2]int{{0, 0}}
	}
	chunk = min(chunk, n)
	bounds := make([][2]int, 0, n/chunk+1)
	for off := 0; off < n; off += chunk {
		bounds = append(bounds, [2]int{off, off + min(chunk, n-off)})
	}
	return bounds
}
