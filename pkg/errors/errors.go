// Package errors provides structured error types for the skyline application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, interactive menus and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - A coarse [Kind] split between state errors and validation errors
//   - Error wrapping with context preservation
//
// # Error Kinds
//
// Street operations fail in one of two ways:
//   - state errors: the operation was attempted before the street length was
//     configured, on an unconfigured building, or on an empty row
//   - validation errors: the input itself is wrong (length bounds, overlapping or
//     out-of-range placement, duplicate building, building not found)
//
// Neither kind is fatal. Callers report the message and carry on.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOverlap, "building %s overlaps %s", a, b)
//	if errors.IsValidation(err) {
//	    // reject the input, keep the street as is
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "load street %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// State errors
	ErrCodeStreetUnconfigured   Code = "STREET_UNCONFIGURED"
	ErrCodeBuildingUnconfigured Code = "BUILDING_UNCONFIGURED"
	ErrCodeEmptyRow             Code = "EMPTY_ROW"

	// Street validation errors
	ErrCodeInvalidLength    Code = "INVALID_LENGTH"
	ErrCodeInvalidBuilding  Code = "INVALID_BUILDING"
	ErrCodeOverlap          Code = "OVERLAP"
	ErrCodeOutOfRange       Code = "OUT_OF_RANGE"
	ErrCodeDuplicate        Code = "DUPLICATE_BUILDING"
	ErrCodeBuildingNotFound Code = "BUILDING_NOT_FOUND"

	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidRow      Code = "INVALID_ROW"
	ErrCodeInvalidCategory Code = "INVALID_CATEGORY"
	ErrCodeInvalidName     Code = "INVALID_NAME"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Kind groups error codes into the two failure modes of street operations.
type Kind int

const (
	// KindOther covers input, resource and internal errors.
	KindOther Kind = iota
	// KindState marks an operation attempted in the wrong street state.
	KindState
	// KindValidation marks an operation rejected because of its arguments.
	KindValidation
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindValidation:
		return "validation"
	default:
		return "other"
	}
}

var codeKinds = map[Code]Kind{
	ErrCodeStreetUnconfigured:   KindState,
	ErrCodeBuildingUnconfigured: KindState,
	ErrCodeEmptyRow:             KindState,
	ErrCodeInvalidLength:        KindValidation,
	ErrCodeInvalidBuilding:      KindValidation,
	ErrCodeOverlap:              KindValidation,
	ErrCodeOutOfRange:           KindValidation,
	ErrCodeDuplicate:            KindValidation,
	ErrCodeBuildingNotFound:     KindValidation,
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

// KindOf classifies err by the code of the outermost *Error in its chain.
func KindOf(err error) Kind {
	return codeKinds[GetCode(err)]
}

// IsState reports whether err is a state error.
func IsState(err error) bool { return KindOf(err) == KindState }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

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
