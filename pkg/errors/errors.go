// Package errors provides structured error types for tabs.
//
// Every failure a package pipeline can produce carries a [Code], so callers
// can decide whether an attempt is worth repeating without string matching:
//
//   - EMPTY_UPSTREAM, NO_SELECTOR, INVALID_QUERY: terminal, never retried
//   - TRANSPORT, NO_MATCH, VERSION_NOT_FOUND: transient, retried
//   - GENERIC_FAILURE: the retry budget ran out
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoSelector, "no selector for %s", url)
//	if errors.Is(err, errors.ErrCodeNoSelector) {
//	    // give up on this package
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Pipeline error codes.
const (
	ErrCodeEmptyUpstream   Code = "EMPTY_UPSTREAM"
	ErrCodeNoSelector      Code = "NO_SELECTOR"
	ErrCodeInvalidQuery    Code = "INVALID_QUERY"
	ErrCodeTransport       Code = "TRANSPORT"
	ErrCodeNoMatch         Code = "NO_MATCH"
	ErrCodeVersionNotFound Code = "VERSION_NOT_FOUND"
	ErrCodeGenericFailure  Code = "GENERIC_FAILURE"
)

// Glue error codes.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeReadOnly      Code = "READ_ONLY"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted, so a GENERIC_FAILURE
// wrapping a NO_MATCH reports GENERIC_FAILURE.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Retryable reports whether a pipeline attempt that failed with err may
// succeed if repeated.
func Retryable(err error) bool {
	switch GetCode(err) {
	case ErrCodeTransport, ErrCodeNoMatch, ErrCodeVersionNotFound:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
