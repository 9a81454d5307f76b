// Package errors provides structured error types for gridpress.
//
// Every failure that crosses a package boundary carries a [Code] so the CLI,
// the batch driver and the HTTP server can react to the kind of failure
// without inspecting message text.
//
// # Error Codes
//
//   - MALFORMED_PUZZLE: the puzzle JSON could not be normalized (missing or
//     ragged grid, undecodable clue entry, unreadable file). Fatal for that
//     file only; a batch run continues with the next file.
//   - UNSUPPORTED_OPTION: a layout option named a value the renderer does not
//     know. Never fatal: the renderer falls back to the default and the caller
//     logs the warning.
//   - RENDER_FAILED: a drawing or serialization failure inside the document
//     assembler.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedPuzzle, "row %d is not an array", i)
//	if errors.Is(err, errors.ErrCodeMalformedPuzzle) {
//	    // skip this file
//	}
//
//	err := errors.Wrap(errors.ErrCodeRender, cause, "serialize document")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeMalformedPuzzle Code = "MALFORMED_PUZZLE"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// Option errors
	ErrCodeUnsupportedOption Code = "UNSUPPORTED_OPTION"

	// Output errors
	ErrCodeRender Code = "RENDER_FAILED"

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

// Malformed reports a puzzle that could not be normalized.
func Malformed(format string, args ...any) *Error {
	return New(ErrCodeMalformedPuzzle, format, args...)
}

// Unsupported reports an option value the renderer does not know. The
// returned error is a warning: callers fall back to the given default.
func Unsupported(option, value, fallback string) *Error {
	return New(ErrCodeUnsupportedOption, "unsupported %s %q, using %q", option, value, fallback)
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
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
