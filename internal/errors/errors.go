// Package errors defines the structured error type the service layers use to
// carry a classification code across component boundaries. HTTP handlers map
// codes to status codes; services wrap causes without losing the code.
package errors

import (
	"errors"
	"fmt"
)

// Error is an error with a classification code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a message, preserving its code when err already
// carries one and defaulting to CodeInternal otherwise.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	var existing *Error
	if errors.As(err, &existing) {
		code = existing.Code
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapCode wraps err under an explicit code, overriding whatever err carries.
func WrapCode(code Code, err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// CodeOf extracts the code from err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Is, As and Unwrap re-exports so callers don't need both packages.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
