// Package errors provides structured error types for flowlayout.
//
// Every failure that crosses a package boundary towards the CLI carries a
// machine-readable [Code] so callers can branch on the category without
// string matching:
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "gap_x must be >= 0, got %v", gap)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap an engine error with a code
//	err := errors.Wrap(errors.ErrCodeCycleDetected, dag.ErrCycleDetected, "layering %s", path)
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: input, configuration or intermediate layout validation failures
//   - *_NOT_FOUND: missing resources
//   - CYCLE_DETECTED: the workflow graph is not acyclic
//   - INTERNAL_*: unexpected internal errors
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Engine errors
	ErrCodeCycleDetected  Code = "CYCLE_DETECTED"
	ErrCodeInvalidColumns Code = "INVALID_COLUMNS"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeCache Code = "CACHE_ERROR"

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

// ExitCode maps an error to a process exit status. Input and configuration
// problems exit with 2, engine rejections with 3, everything else with 1.
func ExitCode(err error) int {
	switch GetCode(err) {
	case "":
		return 1
	case ErrCodeInvalidInput, ErrCodeInvalidDocument, ErrCodeInvalidConfig,
		ErrCodeInvalidPath, ErrCodeFileNotFound, ErrCodeNotFound:
		return 2
	case ErrCodeCycleDetected, ErrCodeInvalidColumns:
		return 3
	default:
		return 1
	}
}
