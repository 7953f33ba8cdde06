package tdms

import "fmt"

// Group represents a TDMS group.
type Group struct {
	file     *File
	name     string
	state    *objectState
	channels []*Channel
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Path returns the object path of the group.
func (g *Group) Path() string {
	return GroupPath(g.name)
}

// Properties returns the group properties.
func (g *Group) Properties() map[string]any {
	return g.state.properties()
}

// Channels returns the channels in the order they first appear.
func (g *Group) Channels() []*Channel {
	return g.channels
}

// Channel returns the named channel.
func (g *Group) Channel(name string) (*Channel, error) {
	for _, c := range g.channels {
		if c.name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("channel %q in group %q: %w", name, g.name, ErrNotFound)
}
