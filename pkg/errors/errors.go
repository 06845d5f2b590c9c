package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Output sink errors
	ErrSinkWrite ErrorCode = "SINK_WRITE"

	// Capture errors
	ErrCaptureInstall ErrorCode = "CAPTURE_INSTALL"
	ErrCaptureRestore ErrorCode = "CAPTURE_RESTORE"
	ErrCaptureActive  ErrorCode = "CAPTURE_ACTIVE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Theme errors
	ErrThemeLoad  ErrorCode = "THEME_LOAD"
	ErrThemeParse ErrorCode = "THEME_PARSE"
)

// ArborError represents a structured error with code and details
type ArborError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *ArborError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ArborError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ArborError) Is(target error) bool {
	var targetErr *ArborError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ArborError with the given code and message
func New(code ErrorCode, message string) *ArborError {
	return &ArborError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new ArborError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ArborError {
	return &ArborError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an ArborError
func Wrap(err error, code ErrorCode, message string) *ArborError {
	if err == nil {
		return nil
	}
	return &ArborError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ArborError {
	if err == nil {
		return nil
	}
	return &ArborError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
	}
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not ArborErrors
func GetCode(err error) ErrorCode {
	var arborErr *ArborError
	if errors.As(err, &arborErr) {
		return arborErr.Code
	}
	return ErrUnknown
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
