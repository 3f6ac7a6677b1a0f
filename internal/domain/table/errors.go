package table

import "errors"

// Sentinel kinds for table errors. These allow errors.Is/As from callers.
var (
	ErrShape         = errors.New("invalid table shape")
	ErrLabel         = errors.New("invalid table label")
	ErrValue         = errors.New("invalid table value")
	ErrUnknownEntity = errors.New("entity not found")
)
