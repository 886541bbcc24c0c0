// Package errors provides the error taxonomy for fstream. Every failure a
// binding, session or stream surfaces carries one of a closed set of codes so
// callers can branch with errors.Is instead of matching messages.
package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// CodeNotFound indicates the bound path does not exist and creation was
	// not requested. Only raised when binding.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeIOFailure indicates an open, read, write, size probe or close on the
	// underlying filesystem failed.
	CodeIOFailure ErrorCode = "IO_FAILURE"

	// CodeInvalidOperation indicates an operation that the session cannot
	// perform in its current state or mode.
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// CodeUnknown indicates an error that did not originate in fstream.
	CodeUnknown ErrorCode = "UNKNOWN"
)
