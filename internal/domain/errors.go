package domain

import (
	"errors"
	"fmt"
)

// The error vocabulary of the domain. These are business-level failures,
// not HTTP ones; adapters translate them to their own wire formats. Each
// category pairs a sentinel (for errors.Is) with a typed error carrying
// the particulars.
var (
	ErrNotFound = errors.New("not found")

	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated means the caller presented no credentials or
	// credentials that could not be verified.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable means a required dependency cannot be reached.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names the entity that could not be found.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError names the field that violated a business rule.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnauthenticatedError records which credential scheme failed and why.
// The reason is safe to log but must not reach the caller verbatim.
type UnauthenticatedError struct {
	Scheme string
	Reason string
}

func (e *UnauthenticatedError) Error() string {
	if e.Scheme != "" {
		return fmt.Sprintf("unauthenticated (%s): %s", e.Scheme, e.Reason)
	}

	return "unauthenticated: " + e.Reason
}

func (e *UnauthenticatedError) Unwrap() error { return ErrUnauthenticated }

// NewUnauthenticatedError creates an unauthenticated error with context.
func NewUnauthenticatedError(scheme, reason string) error {
	return &UnauthenticatedError{Scheme: scheme, Reason: reason}
}

// ForbiddenError names the operation an authenticated caller may not
// perform, typically for want of a scope.
type ForbiddenError struct {
	Operation string
	Reason    string
}

func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError names the downstream dependency that failed. The relay
// maps transport and 5xx failures here.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// Category predicates, for adapters that branch on the error class.

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsUnauthenticated(err error) bool { return errors.Is(err, ErrUnauthenticated) }

func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
