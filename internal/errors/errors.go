// Package errors defines the error taxonomy shared by the auth service and
// the portfolio valuation engine.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryValidation represents missing or malformed required input (4xx)
	CategoryValidation ErrorCategory = "validation"
	// CategoryConflict represents a duplicate identity
	CategoryConflict ErrorCategory = "conflict"
	// CategoryAuth represents bad credentials or an invalid/expired token
	CategoryAuth ErrorCategory = "auth"
	// CategoryFeed represents an unreachable or malformed market data feed
	CategoryFeed ErrorCategory = "feed"
	// CategorySystem represents internal errors (5xx)
	CategorySystem ErrorCategory = "system"
)

// CategorizedError represents an error with category and HTTP status code
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeFeed       = "FEED_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// NewValidationError creates a validation error for missing or malformed input
func NewValidationError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		Message:    message,
	}
}

// NewConflictError creates a duplicate-identity error
func NewConflictError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryConflict,
		StatusCode: http.StatusConflict,
		Code:       CodeConflict,
		Message:    message,
	}
}

// NewAuthError creates an authentication error. Callers must take care to
// use the same message for the account-absent and password-mismatch cases so
// account existence is not leaked.
func NewAuthError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryAuth,
		StatusCode: http.StatusUnauthorized,
		Code:       CodeAuth,
		Message:    message,
	}
}

// NewFeedError creates a market-feed error. Feed errors are recovered
// internally by the valuation engine and never surfaced as hard failures.
func NewFeedError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryFeed,
		StatusCode: http.StatusServiceUnavailable,
		Code:       CodeFeed,
		Message:    message,
		Cause:      cause,
	}
}

// NewInternalError wraps an unexpected failure
func NewInternalError(cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategorySystem,
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternal,
		Message:    "an internal error occurred",
		Cause:      cause,
	}
}

// IsCategory reports whether err is a CategorizedError of the given category
func IsCategory(err error, category ErrorCategory) bool {
	catErr, ok := err.(*CategorizedError)
	return ok && catErr.Category == category
}
