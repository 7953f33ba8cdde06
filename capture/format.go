package capture

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/robert-malhotra/go-tdms/tdms"
)

// SegmentWriter is an open container that accepts segments of objects.
type SegmentWriter interface {
	WriteSegment(objs ...tdms.Object) error
	Close() error
}

// Format creates containers of one file format.
type Format interface {
	// Name is the registry key, for example "tdms".
	Name() string
	// Extension is the file name suffix including the dot.
	Extension() string
	// Create creates or truncates the file at path.
	Create(path string) (SegmentWriter, error)
}

var (
	formatsMu sync.RWMutex
	formats   = make(map[string]Format)
)

// Register makes a format available under its name, replacing any format
// registered under the same name.
func Register(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	formats[strings.ToLower(f.Name())] = f
}

// Unregister removes the named format.
func Unregister(name string) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	delete(formats, strings.ToLower(name))
}

// Formats returns the names of the registered formats, sorted.
func Formats() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the named format or ErrFormatUnavailable.
func Lookup(name string) (Format, error) {
	formatsMu.RLock()
	f, ok := formats[strings.ToLower(name)]
	formatsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered (available: %s); register it with capture.Register or pick an available format",
			ErrFormatUnavailable, name, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// TDMSFormat writes NI TDMS files through the tdms package.
type TDMSFormat struct {
	// Options are passed to tdms.Create.
	Options []tdms.WriterOption
}

// Name implements Format.
func (TDMSFormat) Name() string { return "tdms" }

// Extension implements Format.
func (TDMSFormat) Extension() string { return ".tdms" }

// Create implements Format.
func (f TDMSFormat) Create(path string) (SegmentWriter, error) {
	return tdms.Create(path, f.Options...)
}

func init() {
	Register(TDMSFormat{})
}
