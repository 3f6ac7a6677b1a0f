package app

import (
	"errors"
)

// Sentinel errors for the generator.
var (
	ErrNoTable         = errors.New("no table")
	ErrBatchIncomplete = errors.New("batch incomplete")
)
