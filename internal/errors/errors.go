// Package errors provides a lightweight structured error type (GuardError)
// for category-based classification and exit code mapping in the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a guard error for classification
type ErrorCategory string

const (
	// User-facing configuration errors
	CategoryConfig ErrorCategory = "config"

	// External toolchain errors
	CategoryToolchain ErrorCategory = "toolchain"
	CategoryBuild     ErrorCategory = "build"

	// Local environment errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// Context keys with a defined meaning for the CLI adapter.
const (
	ContextExitCode = "exit_code"
	ContextSignal   = "signal"
)

// GuardError is a structured error with category, severity and context
type GuardError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for GuardError
type ContextFields map[string]any

// Error implements the error interface
func (e *GuardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *GuardError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *GuardError) WithContext(key string, value any) *GuardError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new GuardError
func New(category ErrorCategory, severity ErrorSeverity, message string) *GuardError {
	return &GuardError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new GuardError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *GuardError {
	return &GuardError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As extracts the first GuardError in err's chain.
func As(err error) (*GuardError, bool) {
	var ge *GuardError
	if stdErrors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ge, ok := As(err); ok {
		return ge.Category == category
	}
	return false
}
