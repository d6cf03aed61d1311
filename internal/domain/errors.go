package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when an operation needs the store and the
	// connection is closed. Callers may retry after connecting.
	ErrNotConnected = errors.New("database is not connected")

	// ErrNotFound marks an operation targeting a missing id. It is a normal
	// domain outcome, distinct from a failed query.
	ErrNotFound = errors.New("not found")

	// ErrNoEarlierPost terminates the backward feed scan at id 0.
	ErrNoEarlierPost = errors.New("no earlier post")

	// ErrBadCredentials covers the admin name/password pair not matching.
	ErrBadCredentials = errors.New("invalid name or password")

	// ErrUnknownUser and ErrPasswordMismatch keep the user login failure
	// reasons distinct, as the UI reacts to them differently.
	ErrUnknownUser      = errors.New("user does not exist")
	ErrPasswordMismatch = errors.New("wrong password")

	// ErrForbidden marks an operation the current account may not perform.
	ErrForbidden = errors.New("operation not permitted")
)

// ValidationError reports which input rule an operation rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a uniqueness violation (flight id, username, email).
type ConflictError struct {
	Subject string
}

func (e *ConflictError) Error() string {
	return e.Subject + " already exists"
}

// Conflict builds a ConflictError.
func Conflict(subject string) *ConflictError {
	return &ConflictError{Subject: subject}
}
