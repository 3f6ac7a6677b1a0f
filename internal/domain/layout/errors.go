package layout

import "errors"

// Sentinel kinds for layout errors.
var (
	ErrNoDimensions = errors.New("layout needs at least one dimension")
	ErrLength       = errors.New("series and layout lengths differ")
)
