// Package domain contains business logic types and errors.
// Domain errors represent pipeline-level failures, NOT HTTP errors.
// Adapters translate transport and upstream failures into these.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation indicates input or upstream data violated a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the upstream rejected our credentials.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrMalformed indicates an upstream answered with a body we cannot interpret.
	ErrMalformed = errors.New("malformed response")

	// ErrEmptyCorpus indicates there is no quote to choose from.
	ErrEmptyCorpus = errors.New("quote corpus is empty")
)

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ForbiddenError provides context for rejected credentials.
type ForbiddenError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError provides context for unavailable errors.
// RetryAfter is set when the upstream told us how long to back off.
type UnavailableError struct {
	Service    string
	Reason     string
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}

	return msg
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// NewRateLimitedError creates an unavailable error carrying the upstream back-off hint.
func NewRateLimitedError(service string, retryAfter time.Duration) error {
	return &UnavailableError{Service: service, Reason: "rate limit exceeded", RetryAfter: retryAfter}
}

// MalformedError provides context for undecodable upstream responses.
type MalformedError struct {
	Source string
	Reason string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Source, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// NewMalformedError creates a malformed response error with context.
func NewMalformedError(source, reason string) error {
	return &MalformedError{Source: source, Reason: reason}
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsMalformed checks if an error is a malformed response error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
