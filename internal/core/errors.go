// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Data errors
	ErrNoData   = &Error{Code: "NO_DATA", Message: "no data available"}
	ErrNotFound = &Error{Code: "NOT_FOUND", Message: "resource not found"}

	// Transform input errors
	ErrInvalidRange     = &Error{Code: "INVALID_RANGE", Message: "invalid date range"}
	ErrInvalidBounds    = &Error{Code: "INVALID_BOUNDS", Message: "variation bounds must be in [0,1], one per path"}
	ErrInvalidPathCount = &Error{Code: "INVALID_PATH_COUNT", Message: "path count must be at least 1"}

	// Source errors
	ErrSourceFailed  = &Error{Code: "SOURCE_FAILED", Message: "data source failed"}
	ErrSourceTimeout = &Error{Code: "SOURCE_TIMEOUT", Message: "data source timeout"}

	// Request errors
	ErrInvalidParam = &Error{Code: "INVALID_PARAM", Message: "invalid request parameter"}
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid API key"}

	// Archive errors
	ErrArchiveFailed = &Error{Code: "ARCHIVE_FAILED", Message: "archive write failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
