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
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Template and target errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTargetResolve    ErrorCode = "TARGET_RESOLVE"
	ErrManifestParse    ErrorCode = "MANIFEST_PARSE"

	// Profile errors
	ErrProfileUnknown ErrorCode = "PROFILE_UNKNOWN"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite    ErrorCode = "CONFIG_WRITE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileCopy     ErrorCode = "FILE_COPY"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrBackup       ErrorCode = "BACKUP"

	// External tool errors
	ErrGitCommand ErrorCode = "GIT_COMMAND"
)

// CodeboxError represents a structured error with code and details
type CodeboxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CodeboxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CodeboxError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CodeboxError) Is(target error) bool {
	var targetErr *CodeboxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CodeboxError with the given code and message
func New(code ErrorCode, message string) *CodeboxError {
	return &CodeboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CodeboxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CodeboxError {
	return &CodeboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CodeboxError
func Wrap(err error, code ErrorCode, message string) *CodeboxError {
	if err == nil {
		return nil
	}
	return &CodeboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CodeboxError {
	if err == nil {
		return nil
	}
	return &CodeboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CodeboxError) WithDetail(key string, value interface{}) *CodeboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var cbErr *CodeboxError
	if errors.As(err, &cbErr) {
		return cbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CodeboxError
func GetErrorCode(err error) ErrorCode {
	var cbErr *CodeboxError
	if errors.As(err, &cbErr) {
		return cbErr.Code
	}
	return ErrUnknown
}

// IsCancelled reports whether err represents a user-chosen no-op outcome.
// Cancellation maps to exit code 0 at the CLI boundary.
func IsCancelled(err error) bool {
	return IsErrorCode(err, ErrCancelled)
}
