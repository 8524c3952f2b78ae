package usecase

import "errors"

// Sentinels for the HTTP layer. Services wrap them with %w and the handler
// maps each to a status code.
var (
	// ErrInvalidInput covers malformed ids, limits and flag payloads.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned for unknown games and flagged events.
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable means the matching service or a store could
	// not be reached.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
