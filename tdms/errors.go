// Package tdms provides a pure Go implementation for writing and reading
// NI TDMS files.
package tdms

import (
	"errors"

	"github.com/robert-malhotra/go-tdms/internal/dtype"
	"github.com/robert-malhotra/go-tdms/internal/object"
	"github.com/robert-malhotra/go-tdms/internal/segment"
)

// Common errors
var (
	ErrNotTDMS             = segment.ErrNotTDMS
	ErrNotFound            = errors.New("object not found")
	ErrUnsupported         = errors.New("unsupported feature")
	ErrInvalidPath         = errors.New("invalid object path")
	ErrClosed              = errors.New("file is closed")
	ErrUnsupportedProperty = object.ErrUnsupportedProperty
	ErrTypeMismatch        = dtype.ErrTypeMismatch
)
