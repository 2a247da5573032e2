// Package errors provides structured error types for Eggsposition.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Parsing surfaces exactly two recoverable kinds: syntax errors (the input is
// not well-formed JSON, [ErrCodeInvalidJSON]) and validation errors (the input
// is well-formed but structurally wrong, [ErrCodeInvalidEGraph] and
// [ErrCodeInvalidHypergraph]). Use [IsSyntax] and [IsValidation] to tell them apart.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown engine: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidPath, origErr, "cannot read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidJSON       Code = "INVALID_JSON"
	ErrCodeInvalidEGraph     Code = "INVALID_EGRAPH"
	ErrCodeInvalidHypergraph Code = "INVALID_HYPERGRAPH"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidEngine     Code = "INVALID_ENGINE"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsSyntax reports whether err means the input was not well-formed JSON.
func IsSyntax(err error) bool {
	return Is(err, ErrCodeInvalidJSON)
}

// IsValidation reports whether err means the input was well-formed but
// structurally invalid.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidEGraph, ErrCodeInvalidHypergraph:
		return true
	}
	return false
}

// IsClientError reports whether err was caused by bad caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidJSON, ErrCodeInvalidEGraph,
		ErrCodeInvalidHypergraph, ErrCodeInvalidFormat, ErrCodeInvalidEngine,
		ErrCodeInvalidPath:
		return true
	}
	return false
}
