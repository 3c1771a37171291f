// Package apperrors provides structured error handling with machine-readable
// codes. Handlers map codes to HTTP statuses; everything below the HTTP layer
// only distinguishes the code.
package apperrors

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified internal error.
	CodeUnknown Code = "UNKNOWN"

	// CodeNotFound means a referenced entity does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeForbidden means the viewer is authenticated but lacks the
	// required role or ownership.
	CodeForbidden Code = "FORBIDDEN"

	// CodeUnauthenticated means a viewer is required but absent.
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// CodeInvalidScore means a vote value is outside {-1, 0, 1}.
	CodeInvalidScore Code = "INVALID_SCORE"

	// CodeUnknownTag means one or more tag ids do not resolve to a tag.
	CodeUnknownTag Code = "UNKNOWN_TAG"

	// CodeCycleDetected means a category parent chain does not terminate.
	CodeCycleDetected Code = "CYCLE_DETECTED"
)

// Error is the domain error type carrying a code, a message and an
// optional underlying cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the code from an error chain. Returns CodeUnknown for
// nil or non-domain errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error chain contains a domain error with
// the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
