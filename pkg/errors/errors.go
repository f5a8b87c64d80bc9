// Package errors provides structured error types for doxflow.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the model, exporter and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - DUPLICATE_*: Name or key collisions while building a model
//   - UNKNOWN_* / *_NOT_FOUND: Unresolvable references
//   - RENDER_FAILURE / INTERNAL_*: Failures after a document was assembled
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "element name cannot be empty")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRenderFailure, origErr, "plantuml exited")
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
	ErrCodeInvalidModel    Code = "INVALID_MODEL"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidNotation Code = "INVALID_NOTATION"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Model construction errors
	ErrCodeDuplicateName    Code = "DUPLICATE_NAME"
	ErrCodeDuplicateKey     Code = "DUPLICATE_KEY"
	ErrCodeUnknownReference Code = "UNKNOWN_REFERENCE"

	// Export errors
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeRenderFailure     Code = "RENDER_FAILURE"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Coded is implemented by typed errors that carry an error code.
type Coded interface {
	error
	Code() Code
}

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
// The outermost coded error in the chain decides: an *Error, or a typed
// error implementing [Coded].
func Is(err error, code Code) bool {
	c := GetCode(err)
	return c != "" && c == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case Coded:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// DuplicateNameError is returned when a child is added to a container that
// already holds a direct child with the same name.
type DuplicateNameError struct {
	Container string // Name of the container rejecting the child
	Name      string // Colliding child name
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	if e.Container == "" {
		return fmt.Sprintf("duplicate name %q", e.Name)
	}
	return fmt.Sprintf("duplicate name %q in %q", e.Name, e.Container)
}

// Code returns the error code for this error type.
func (e *DuplicateNameError) Code() Code {
	return ErrCodeDuplicateName
}

// UnsupportedFormatError is returned when an export destination has an
// extension that does not map to a known image format.
type UnsupportedFormatError struct {
	Path      string // Destination path as given
	Extension string // Extension without the leading dot
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("file format error, format: %q (path %s)", e.Extension, e.Path)
}

// Code returns the error code for this error type.
func (e *UnsupportedFormatError) Code() Code {
	return ErrCodeUnsupportedFormat
}
