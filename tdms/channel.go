package tdms

import (
	"encoding/binary"

	"github.com/robert-malhotra/go-tdms/internal/dtype"
)

// Channel represents a TDMS channel.
type Channel struct {
	file  *File
	group string
	name  string
	state *objectState
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.name
}

// Group returns the name of the group holding the channel.
func (c *Channel) Group() string {
	return c.group
}

// Path returns the object path of the channel.
func (c *Channel) Path() string {
	return ChannelPath(c.group, c.name)
}

// Properties returns the channel properties.
func (c *Channel) Properties() map[string]any {
	return c.state.properties()
}

// DataType returns the element type of the channel data, or Invalid if the
// channel never carried data.
func (c *Channel) DataType() DataType {
	if c.state.index != nil {
		return c.state.index.Type
	}
	if len(c.state.chunks) > 0 {
		return c.state.chunks[0].typ
	}
	return Invalid
}

// Len returns the total number of values across all appends.
func (c *Channel) Len() int {
	var n uint64
	for _, ch := range c.state.chunks {
		n += ch.count
	}
	return int(n)
}

// Appends returns the number of non-empty data chunks stored for the
// channel.
func (c *Channel) Appends() int {
	return len(c.state.chunks)
}

// ReadBytes returns all channel values as little-endian bytes.
func (c *Channel) ReadBytes() ([]byte, error) {
	return c.file.readChunks(c.state.chunks)
}

// Read decodes all channel values into dst, which must be a pointer to a
// slice whose element type matches DataType, for example *[]int16.
func (c *Channel) Read(dst any) error {
	raw, err := c.ReadBytes()
	if err != nil {
		return err
	}
	return dtype.Decode(c.DataType(), raw, binary.LittleEndian, dst)
}

// ReadValues decodes all values of a channel into a new slice.
func ReadValues[T Number](c *Channel) ([]T, error) {
	var out []T
	if err := c.Read(&out); err != nil {
		return nil, err
	}
	return out, nil
}
