package errors

import (
	"errors"
	"fmt"
)

// GusleeError is the structured error type for guslee.
// It carries a stable code so callers can branch on error kind without
// string matching, plus context for logging and user presentation.
type GusleeError struct {
	// Code is the unique error code (e.g., "ERR_401_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Content, Query, Index).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *GusleeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GusleeError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with GusleeError.
func (e *GusleeError) Is(target error) bool {
	if t, ok := target.(*GusleeError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *GusleeError) WithDetail(key, value string) *GusleeError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new GusleeError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *GusleeError {
	return &GusleeError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a GusleeError from an existing error.
// The error's message becomes the GusleeError message.
func Wrap(code string, err error) *GusleeError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// NotFound creates a lookup error for an unknown document path.
func NotFound(filePath string) *GusleeError {
	return New(ErrCodeNotFound, fmt.Sprintf("no document at %q", filePath), nil).
		WithDetail("file_path", filePath)
}

// ParseError creates a query or front matter parse error.
func ParseError(message string, cause error) *GusleeError {
	return New(ErrCodeParse, message, cause)
}

// IndexUnavailable creates an index backend error.
func IndexUnavailable(message string, cause error) *GusleeError {
	return New(ErrCodeIndexUnavailable, message, cause)
}

// ContentRootError creates a fatal content root error.
func ContentRootError(root string, cause error) *GusleeError {
	return New(ErrCodeContentRoot, fmt.Sprintf("content root %q is not usable", root), cause).
		WithDetail("root", root)
}

// IsNotFound reports whether err is a not-found lookup error.
func IsNotFound(err error) bool {
	var ge *GusleeError
	if errors.As(err, &ge) {
		return ge.Code == ErrCodeNotFound
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort process startup.
func IsFatal(err error) bool {
	var ge *GusleeError
	if errors.As(err, &ge) {
		return ge.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a GusleeError.
// Returns empty string if not a GusleeError.
func GetCode(err error) string {
	var ge *GusleeError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return ""
}
