package errors

import (
	"errors"
	"fmt"
)

// Error is a failure of a single fstream operation on a path.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// Op is the operation that failed (e.g., "bind", "open", "read").
	Op string

	// Path is the bound path (if applicable).
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("fstream.%s", e.Op)
	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}
	msg += fmt.Sprintf(": [%s]", e.Code)
	if e.Err != nil {
		msg += fmt.Sprintf(" %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error carrying the same code, so the sentinels below work
// with errors.Is regardless of Op and Path.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error for op on path.
func New(code ErrorCode, op, path string, err error) *Error {
	return &Error{
		Code: code,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// Sentinel errors, one per code. Use with errors.Is.
var (
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrIOFailure        = &Error{Code: CodeIOFailure}
	ErrInvalidOperation = &Error{Code: CodeInvalidOperation}
)

// NotFound creates a CodeNotFound error.
func NotFound(op, path string, err error) *Error {
	return New(CodeNotFound, op, path, err)
}

// IOFailure creates a CodeIOFailure error.
func IOFailure(op, path string, err error) *Error {
	return New(CodeIOFailure, op, path, err)
}

// InvalidOperation creates a CodeInvalidOperation error.
func InvalidOperation(op, path string, err error) *Error {
	return New(CodeInvalidOperation, op, path, err)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsNotFound checks if an error indicates the bound path was missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIOFailure checks if an error indicates an underlying I/O failure.
func IsIOFailure(err error) bool {
	return errors.Is(err, ErrIOFailure)
}

// IsInvalidOperation checks if an error indicates a misuse of a session.
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}
