package errors

import (
	"errors"
	"fmt"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors classifying every failure the configuration engine can
// surface. Callers check them with [errors.Is]; lower layers attach path and
// cause context by wrapping.
var (
	// ErrNotFound indicates a file or MCP server entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied indicates the file exists but cannot be accessed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParse indicates a configuration file could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrValidationFailed indicates a structural validator rejected a document.
	ErrValidationFailed = errors.New("validation failed")

	// ErrTimeout indicates an I/O operation exceeded its time budget.
	ErrTimeout = errors.New("operation timed out")

	// ErrBackupFailed indicates a backup could not be created or verified.
	ErrBackupFailed = errors.New("backup failed")

	// ErrRollbackFailed indicates a backup restore did not complete.
	ErrRollbackFailed = errors.New("rollback failed")

	// ErrWriteFailed indicates the atomic write could not be completed.
	ErrWriteFailed = errors.New("write failed")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI
// applications. It implements the error interface and supports unwrapping via
// errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
