package fdc

import "errors"

var (
	// ErrLookup indicates the lookup service answered but the response was
	// unusable (non-200 status or a body that failed to decode).
	ErrLookup = errors.New("food lookup failed")

	// ErrUnavailable indicates the lookup service is unreachable.
	ErrUnavailable = errors.New("food lookup service unavailable")

	// ErrTimeout indicates the lookup exceeded the configured timeout.
	ErrTimeout = errors.New("food lookup timed out")
)
