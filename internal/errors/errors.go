package errors

import (
	"errors"
	"fmt"
)

// Exit codes for openshot
const (
	ExitSuccess             = 0
	ExitGeneralError        = 1
	ExitConstruction        = 1
	ExitUsage               = 2
	ExitUnsupportedLanguage = -1
)

// ErrCapabilityUnavailable is returned when an optional toolkit feature is
// requested on a toolkit that does not provide it.
var ErrCapabilityUnavailable = errors.New("capability unavailable")

// LaunchError is the base error type for the launcher
type LaunchError struct {
	Code    int
	Message string
	Cause   error
}

func (e *LaunchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *LaunchError) ExitCode() int {
	return e.Code
}

// New creates a new LaunchError
func New(code int, message string) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LaunchError
func Wrap(code int, message string, cause error) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// UsageError returns an error for malformed command-line arguments
func UsageError(cause error) *LaunchError {
	return Wrap(ExitUsage, "invalid arguments", cause)
}

// UnsupportedLanguage returns the validation error for an unknown language code
func UnsupportedLanguage(code string) *LaunchError {
	return New(ExitUnsupportedLanguage, fmt.Sprintf("Unsupported language '%s'! (See --list-languages)", code))
}

// ResourceWarning describes a non-fatal problem with a search path entry
func ResourceWarning(path string, cause error) *LaunchError {
	return Wrap(ExitSuccess, fmt.Sprintf("Bad path %s", path), cause)
}

// ConstructionFailure returns an error for a failed application build
func ConstructionFailure(cause error) *LaunchError {
	return Wrap(ExitConstruction, "failed to construct application", cause)
}

// ExitCode wraps the event loop's return value so it can travel as an error
func ExitCode(code int) *LaunchError {
	return New(code, fmt.Sprintf("exit status %d", code))
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var launchErr *LaunchError
	if errors.As(err, &launchErr) {
		return launchErr.ExitCode()
	}
	return ExitGeneralError
}
