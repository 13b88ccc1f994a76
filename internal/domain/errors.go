package domain

import "fmt"

// The engine surfaces five business-error kinds at its boundary. Anything
// else (database down, SMTP failure) is an infrastructure error and flows
// through as a plain wrapped error — the caller decides on retry policy,
// this package never retries.

// ValidationError means the input itself was malformed: a bad date range, a
// reason below the minimum length. Never retried automatically.
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

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError means a cross-aggregate collision: an overlapping live
// reservation, or a second pending extension on the same booking. Shown to
// the caller as "dates no longer available", never silently retried.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

// AuthorizationError means the actor is not the permitted host/renter/admin.
// The message is deliberately generic so callers cannot probe whether the
// target resource exists.
type AuthorizationError struct{}

func (e *AuthorizationError) Error() string { return "not authorized" }

func NewAuthorizationError() *AuthorizationError { return &AuthorizationError{} }

// NotFoundError means the id did not resolve.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StateError means the operation was attempted from an illegal source state
// of the aggregate itself — accepting an already-confirmed booking, declining
// a resolved extension. Distinct from ConflictError, which is about overlap
// across aggregates.
type StateError struct {
	Op     string
	Status string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in status %s", e.Op, e.Status)
}

func NewStateError(op string, status string) *StateError {
	return &StateError{Op: op, Status: status}
}
