package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"syscall"
)

// TocError is the structured error type for tocgen.
// It provides rich context for error handling, logging, and user presentation.
type TocError struct {
	// Code is the unique error code (e.g., "ERR_407_MALFORMED_METADATA").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *TocError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *TocError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with TocError.
func (e *TocError) Is(target error) bool {
	if t, ok := target.(*TocError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *TocError) WithDetail(key, value string) *TocError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *TocError) WithSuggestion(suggestion string) *TocError {
	e.Suggestion = suggestion
	return e
}

// New creates a new TocError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *TocError {
	return &TocError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a TocError from an existing error.
// The error's message becomes the TocError message.
func Wrap(code string, err error) *TocError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *TocError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError classifies a filesystem error into the matching IO code.
// Missing files, permission problems and full disks get their own codes;
// everything else falls back to fallbackCode.
func IOError(fallbackCode, message string, cause error) *TocError {
	code := fallbackCode
	switch {
	case stderrors.Is(cause, fs.ErrNotExist):
		code = ErrCodeFileNotFound
	case stderrors.Is(cause, fs.ErrPermission):
		code = ErrCodeFilePermission
	case stderrors.Is(cause, syscall.ENOSPC):
		code = ErrCodeDiskFull
	}
	return New(code, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *TocError {
	return New(ErrCodeInternal, message, cause)
}

// HasCode reports whether any TocError in err's chain carries code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &TocError{Code: code})
}

// GetCode extracts the error code from the first TocError in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	var te *TocError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}
