package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a content type no parser can handle.
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrInvalidPattern indicates a search or file pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrWatcherClosed indicates the file watcher has been closed.
	ErrWatcherClosed = errors.New("watcher closed")
)
