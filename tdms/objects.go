package tdms

import (
	"encoding/binary"
	"fmt"
)

// Object is an entry written to a segment: the file itself, a group or a
// channel. Implementations are RootObject, GroupObject and ChannelObject.
type Object interface {
	Path() string
	properties() map[string]any
}

// RootObject carries file-level properties.
type RootObject struct {
	Properties map[string]any
}

// Path returns "/".
func (o *RootObject) Path() string { return RootPath }

func (o *RootObject) properties() map[string]any { return o.Properties }

// GroupObject is a named container of channels.
type GroupObject struct {
	Name       string
	Properties map[string]any
}

// Path returns /'name'.
func (o *GroupObject) Path() string { return GroupPath(o.Name) }

func (o *GroupObject) properties() map[string]any { return o.Properties }

// ChannelObject is a named data stream within a group. Writing the same
// channel in several segments appends its values in write order.
type ChannelObject struct {
	Group      string
	Name       string
	Properties map[string]any
	// Type is the element type of Data.
	Type DataType
	// Data holds the raw little-endian element bytes.
	Data []byte
}

// Path returns /'group'/'name'.
func (o *ChannelObject) Path() string { return ChannelPath(o.Group, o.Name) }

func (o *ChannelObject) properties() map[string]any { return o.Properties }

// Len returns the number of values in Data.
func (o *ChannelObject) Len() int {
	if size := o.Type.Size(); size > 0 {
		return len(o.Data) / size
	}
	return 0
}

// NewChannelObject creates a channel object from typed values.
func NewChannelObject[T Number](group, name string, values []T, props map[string]any) *ChannelObject {
	data, _ := binary.Append(make([]byte, 0, len(values)*DataTypeFor[T]().Size()), binary.LittleEndian, values)
	return &ChannelObject{
		Group:      group,
		Name:       name,
		Properties: props,
		Type:       DataTypeFor[T](),
		Data:       data,
	}
}

// RawChannelObject creates a channel object over raw little-endian bytes
// of the given type. The bytes are not copied.
func RawChannelObject(group, name string, t DataType, raw []byte, props map[string]any) *ChannelObject {
	return &ChannelObject{
		Group:      group,
		Name:       name,
		Properties: props,
		Type:       t,
		Data:       raw,
	}
}

func (o *ChannelObject) validate() error {
	if !o.Type.IsNumeric() {
		return fmt.Errorf("%w: channel data type %v", ErrUnsupported, o.Type)
	}
	if len(o.Data)%o.Type.Size() != 0 {
		return fmt.Errorf("channel %s: %d bytes is not a whole number of %v values", o.Path(), len(o.Data), o.Type)
	}
	return nil
}
