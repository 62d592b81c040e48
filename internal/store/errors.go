package store

import "errors"

// ErrNotFound is returned when a requested artifact does not exist
var ErrNotFound = errors.New("artifact not found")

// ErrTooLarge is returned when an artifact exceeds the configured size limit
var ErrTooLarge = errors.New("artifact exceeds maximum size")
