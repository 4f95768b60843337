// Package cerrors provides a lightweight structured error type (ContentError)
// for category-based classification in the CLI and watch daemon.
package cerrors

import (
	"fmt"
)

// ErrorCategory represents the category of a contentkit error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content processing errors
	CategoryFrontMatter ErrorCategory = "frontmatter"
	CategoryContent     ErrorCategory = "content"
	CategoryLink        ErrorCategory = "link"

	// Supporting subsystem errors
	CategoryIndex      ErrorCategory = "index"
	CategoryGit        ErrorCategory = "git"
	CategoryWatch      ErrorCategory = "watch"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ContentError is a structured error with category, severity, and context
type ContentError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ContentError
type ContextFields map[string]any

// Error implements the error interface
func (e *ContentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ContentError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ContentError) WithContext(key string, value any) *ContentError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// IsFatal reports whether the error should terminate the current command.
func (e *ContentError) IsFatal() bool {
	return e.Severity == SeverityFatal
}

// New creates a new ContentError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ContentError {
	return &ContentError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ContentError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ContentError {
	return &ContentError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}
