package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrSeriesLength      = errors.New("series length does not match dimensions")
	ErrInvalidStyle      = errors.New("invalid chart style")
)
