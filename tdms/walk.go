package tdms

// WalkFunc is called for each object during traversal.
// path is the object path; obj is *File, *Group or *Channel.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, obj any) error

// Walk visits the file root, then each group followed by its channels, in
// the order they first appear in the file.
//
// Example:
//
//	tdms.Walk(f, func(path string, obj any) error {
//	    switch o := obj.(type) {
//	    case *tdms.Group:
//	        fmt.Println("Group:", o.Name())
//	    case *tdms.Channel:
//	        fmt.Println("Channel:", path, o.DataType(), o.Len())
//	    }
//	    return nil
//	})
func Walk(f *File, fn WalkFunc) error {
	if f.closed {
		return ErrClosed
	}
	if err := fn(RootPath, f); err != nil {
		return err
	}
	for _, g := range f.groups {
		if err := fn(g.Path(), g); err != nil {
			return err
		}
		for _, c := range g.channels {
			if err := fn(c.Path(), c); err != nil {
				return err
			}
		}
	}
	return nil
}

// PropertyInfo describes one property found while walking.
type PropertyInfo struct {
	// ObjectPath is the path of the object holding the property.
	ObjectPath string
	Name       string
	Type       DataType
	Value      any
}

// WalkPropertiesFunc is the callback for WalkProperties.
type WalkPropertiesFunc func(info PropertyInfo) error

// WalkProperties visits every property of every object in Walk order.
// Properties of one object are visited in the order they were first
// written.
func WalkProperties(f *File, fn WalkPropertiesFunc) error {
	return Walk(f, func(path string, obj any) error {
		s := f.objects[path]
		if s == nil {
			return nil
		}
		for _, p := range s.props {
			info := PropertyInfo{ObjectPath: path, Name: p.Name, Type: p.Type, Value: p.Value}
			if err := fn(info); err != nil {
				return err
			}
		}
		return nil
	})
}
