package resolve

import "errors"

// Sentinel errors for the resolution pipeline. Backends wrap these so the
// orchestrator and the HTTP layer can classify failures without knowing
// backend internals.
var (
	// ErrInvalidQuery indicates empty or unparseable input.
	ErrInvalidQuery = errors.New("resolve: invalid query")

	// ErrNotFound indicates a backend affirmatively reported that no such
	// entity exists.
	ErrNotFound = errors.New("resolve: entity not found")

	// ErrBackend indicates a transport failure, timeout, malformed
	// response, or missing credentials.
	ErrBackend = errors.New("resolve: backend failure")

	// ErrResolutionFailed indicates every applicable backend failed.
	ErrResolutionFailed = errors.New("resolve: resolution failed")
)
