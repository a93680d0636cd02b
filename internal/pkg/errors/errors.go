// Package errors provides the structured error type used across l10nify.
//
// Every failure that aborts a run is an *AppError carrying a machine-readable
// code, so callers and tests can tell a bad resource file from a write failure
// without matching on message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by errors for malformed input files.
var ErrInvalid = errors.New("invalid")

// AppError is a structured application error with an error code.
type AppError struct {
	// Code is a machine-readable error code (e.g., "RESOURCE_INVALID").
	Code string `json:"code" yaml:"code"`

	// Message is a human-readable error message.
	Message string `json:"message" yaml:"message"`

	// Params carries structured context such as the offending path.
	Params map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`

	// Err is the wrapped underlying error.
	Err error `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithParams attaches structured parameters to the error.
func (e *AppError) WithParams(params map[string]interface{}) *AppError {
	if e == nil || len(params) == 0 {
		return e
	}
	e.Params = params
	return e
}

// IsAppError checks if an error is an AppError and returns it.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == code
}
