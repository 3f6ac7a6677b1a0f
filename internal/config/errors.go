package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure; the message names the key.
	ErrInvalidConfig = errors.New("invalid radar config")
	// ErrLoadConfig wraps failures reading .env, the RADAR_CONFIG file or the
	// environment.
	ErrLoadConfig = errors.New("load radar config")
)
