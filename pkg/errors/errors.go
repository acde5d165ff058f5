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

	// Configuration errors (missing roots, bad policy values)
	ErrConfig      ErrorCode = "CONFIG"
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Sync errors. Ownership covers ambiguous bundle state (foreign
	// symlinks, kind collisions); Policy covers the fail conflict mode.
	ErrOwnership ErrorCode = "OWNERSHIP"
	ErrPolicy    ErrorCode = "POLICY_CONFLICT"

	// Filesystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileMove      ErrorCode = "FILE_MOVE"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// SyncError represents a structured error with code and details
type SyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SyncError) Is(target error) bool {
	var targetErr *SyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SyncError with the given code and message
func New(code ErrorCode, message string) *SyncError {
	return &SyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SyncError {
	return &SyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SyncError
func Wrap(err error, code ErrorCode, message string) *SyncError {
	if err == nil {
		return nil
	}
	return &SyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SyncError {
	if err == nil {
		return nil
	}
	return &SyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SyncError) WithDetail(key string, value interface{}) *SyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SyncError
func GetErrorCode(err error) ErrorCode {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SyncError
func GetErrorDetails(err error) map[string]interface{} {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Details
	}
	return nil
}
