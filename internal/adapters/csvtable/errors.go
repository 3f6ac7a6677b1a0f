package csvtable

import "errors"

// Sentinel kinds for CSV source errors.
var (
	ErrNotFound  = errors.New("data source not found")
	ErrMalformed = errors.New("malformed table data")
)
