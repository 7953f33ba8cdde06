package capture

import "errors"

var (
	// ErrFormatUnavailable is returned when the requested container format
	// has not been registered.
	ErrFormatUnavailable = errors.New("container format unavailable")

	// ErrNilCapture is returned when no input capture is given.
	ErrNilCapture = errors.New("input capture is nil")

	// ErrUnsupportedType is returned for storage types that are not numeric.
	ErrUnsupportedType = errors.New("unsupported storage type")
)
