// Package pdagerr provides the structured error type shared across the
// pdag construction, rewriting, and reporting layers.
//
// # Error Codes
//
// Codes distinguish the three failure categories of the graph pipeline:
//   - LOGIC_ERROR: a precondition violation inside the graph itself
//     (duplicate parent, erasing a missing argument, a vote number
//     outside its arity invariant). These are programming errors in the
//     caller and are raised as panics, not returned.
//   - VALIDATION_ERROR: the adapter layer rejected a source model during
//     construction (cyclic gate reference, unknown basic event, a CCF
//     model with a malformed factor table).
//   - IO_ERROR: a failure at the reporting boundary (writing a rendered
//     diagram, reading a cached artifact, a cache backend round trip).
//
// # Usage
//
//	err := pdagerr.New(pdagerr.ErrCodeValidation, "unknown gate reference %q", name)
//	if pdagerr.Is(err, pdagerr.ErrCodeValidation) {
//	    // Handle validation error
//	}
//
//	err := pdagerr.Wrap(pdagerr.ErrCodeIO, origErr, "failed to write %s", path)
package pdagerr

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the three failure categories of the graph pipeline.
const (
	ErrCodeLogic      Code = "LOGIC_ERROR"
	ErrCodeValidation Code = "VALIDATION_ERROR"
	ErrCodeIO         Code = "IO_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
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
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error, stripping
// the code prefix for *Error types.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
