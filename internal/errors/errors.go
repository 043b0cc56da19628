// Package errors provides a lightweight structured error type (PagemillError)
// for category-based classification across the generation pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a Pagemill error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig   ErrorCategory = "config"
	CategoryMetadata ErrorCategory = "metadata"

	// Content processing errors
	CategoryContent ErrorCategory = "content"
	CategoryRender  ErrorCategory = "render"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategorySource     ErrorCategory = "source"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// PagemillError is a structured error with category, severity, and context
type PagemillError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PagemillError
type ContextFields map[string]any

// Error implements the error interface
func (e *PagemillError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PagemillError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PagemillError) WithContext(key string, value any) *PagemillError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PagemillError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PagemillError {
	return &PagemillError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PagemillError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PagemillError {
	return &PagemillError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if pe, ok := err.(*PagemillError); ok {
		return pe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a PagemillError
func GetCategory(err error) ErrorCategory {
	if pe, ok := err.(*PagemillError); ok {
		return pe.Category
	}
	return CategoryInternal
}
