package desktop

import "errors"

var (
	// ErrConstruction is returned when opening or creating a desktop yields
	// no handle.
	ErrConstruction = errors.New("desktop: failed to open or create desktop")

	// ErrDisposed is returned by every method of a disposed Desktop.
	ErrDisposed = errors.New("desktop: object has been disposed")

	// ErrUnsupported is returned by the native layer on non-Windows builds.
	ErrUnsupported = errors.New("desktop: not supported on this platform")
)
