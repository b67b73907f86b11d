package chunk

import "errors"

var (
	// ErrInvalidWindow is returned when the window size is not positive.
	ErrInvalidWindow = errors.New("chunk window must be positive")

	// ErrInvalidOverlap is returned when the overlap is negative or not
	// strictly less than the window.
	ErrInvalidOverlap = errors.New("chunk overlap must be smaller than the window")
)
