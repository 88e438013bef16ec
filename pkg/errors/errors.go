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

	// Config spec errors
	ErrGrammarMismatch ErrorCode = "GRAMMAR_MISMATCH"
	ErrSourceNotFound  ErrorCode = "SOURCE_NOT_FOUND"

	// Derivation errors
	ErrMissingDirectory ErrorCode = "MISSING_DIRECTORY"

	// Execution errors
	ErrExecutionFailure ErrorCode = "EXECUTION_FAILURE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// Process exit codes for the CLI. These are part of the external
// contract and must stay distinguishable.
const (
	ExitOK               = 0
	ExitSourceNotFound   = 1
	ExitMissingDirectory = 2
	ExitExecutionFailure = 3
)

// SpecError represents a structured error with code and details
type SpecError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SpecError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SpecError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SpecError) Is(target error) bool {
	var targetErr *SpecError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SpecError with the given code and message
func New(code ErrorCode, message string) *SpecError {
	return &SpecError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SpecError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SpecError {
	return &SpecError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SpecError
func Wrap(err error, code ErrorCode, message string) *SpecError {
	if err == nil {
		return nil
	}
	return &SpecError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SpecError {
	if err == nil {
		return nil
	}
	return &SpecError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SpecError) WithDetail(key string, value interface{}) *SpecError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var specErr *SpecError
	if errors.As(err, &specErr) {
		return specErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SpecError
func GetErrorCode(err error) ErrorCode {
	var specErr *SpecError
	if errors.As(err, &specErr) {
		return specErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SpecError
func GetErrorDetails(err error) map[string]interface{} {
	var specErr *SpecError
	if errors.As(err, &specErr) {
		return specErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit code the CLI must report.
// Unmapped errors share the generic failure code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetErrorCode(err) {
	case ErrMissingDirectory:
		return ExitMissingDirectory
	case ErrExecutionFailure:
		return ExitExecutionFailure
	default:
		return ExitSourceNotFound
	}
}
