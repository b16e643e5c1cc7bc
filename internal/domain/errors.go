package domain

import "errors"

// Sentinel errors shared across packages. Callers classify failures with
// errors.Is rather than string matching.
var (
	// ErrNotFound indicates a referenced track, playlist or job does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported indicates a file whose container has no tag writer.
	ErrUnsupported = errors.New("unsupported audio format")

	// ErrRemoteUnavailable indicates the online metadata service could not
	// be reached or answered with a server error.
	ErrRemoteUnavailable = errors.New("remote metadata service unavailable")

	// ErrWriteFailed indicates tags could not be persisted to the file.
	// The original file is left untouched.
	ErrWriteFailed = errors.New("tag write failed")

	// ErrQueueExhausted signals that advancing past the end of a finite,
	// non-repeating queue has nothing left to play. It is a signal, not a
	// failure.
	ErrQueueExhausted = errors.New("queue exhausted")
)
