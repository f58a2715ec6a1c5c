// Package apperrors defines the error taxonomy shared by all domain
// services. Lower layers return these typed errors; only the HTTP
// boundary maps them to transport status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
	ErrInternal   = errors.New("internal error")
)

// ValidationError indicates missing or malformed input. Always
// recoverable by the caller fixing the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError indicates a referenced entity is absent or not owned
// by the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a not-found error for a resource
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError indicates a uniqueness violation
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError creates a conflict error for a resource
func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

// AuthError indicates a missing, invalid or expired credential. The
// message is deliberately generic; detail belongs in server logs only.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "invalid credentials"
	}
	return e.Reason
}

func (e *AuthError) Unwrap() error { return ErrAuth }

// NewAuthError creates an auth error with a caller-safe message
func NewAuthError(reason string) *AuthError {
	return &AuthError{Reason: reason}
}

// InternalError wraps an unexpected lower-level failure
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: internal error", e.Op)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return ErrInternal }

// NewInternalError wraps err as an internal failure in operation op
func NewInternalError(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

// Classification helpers

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsAuth(err error) bool       { return errors.Is(err, ErrAuth) }
func IsInternal(err error) bool   { return errors.Is(err, ErrInternal) }
