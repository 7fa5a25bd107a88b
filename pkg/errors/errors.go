// Package errors provides structured error types for the arkigraf application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI, and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages for the side panel
//   - Error wrapping with context preservation
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedRecord, "record %d: missing object id", i)
//	if errors.Is(err, errors.ErrCodeMalformedRecord) {
//	    // Handle build failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDataLoad, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different failure categories.
const (
	// Data loading errors (upstream of the graph builder). A load failure is
	// terminal for the session: no graph is built, the simulation never starts.
	ErrCodeDataLoad Code = "DATA_LOAD"

	// Input record errors. A single malformed record fails the entire build;
	// a partial graph would violate the builder's edge-validity invariant.
	ErrCodeMalformedRecord Code = "MALFORMED_RECORD"

	// Input validation errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
