package servit

import "errors"

var (
	// ErrNotFound is returned when a request does not map to a readable regular file
	ErrNotFound = errors.New("not found")
	// ErrPathEscape is returned when a logical path resolves outside the root directory
	ErrPathEscape = errors.New("path escapes root")
	// ErrStatFailure is returned when stat fails for a reason other than absence
	ErrStatFailure = errors.New("stat failure")
	// ErrRangeNotSatisfiable is returned when a range starts past the end of the file
	ErrRangeNotSatisfiable = errors.New("range not satisfiable")
	// ErrStreamFailure is returned when copying the body to the client fails
	ErrStreamFailure = errors.New("stream failure")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
