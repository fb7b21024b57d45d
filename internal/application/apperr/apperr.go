// Package apperr classifies action failures into the small set of kinds the
// HTTP adapter (or any other caller) knows how to present.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindInvalidInput    Kind = "invalid_input"
	KindConflict        Kind = "conflict"
	KindStorage         Kind = "storage_error"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "not authenticated"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrInvalidInput    = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "conflict"}
	ErrStorage         = &Error{Kind: KindStorage, Message: "storage error"}
)

// Error is a typed action failure.
type Error struct {
	Kind    Kind
	Field   string // set for InvalidInput when a single field is at fault
	Message string
	Err     error
}

// Error implements error.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
// Sentinels carry no cause, so any failure of the matching kind satisfies them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Unauthenticated reports a missing or unresolvable session.
func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// Forbidden reports a role or ownership denial.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// InvalidInput reports a missing or malformed field.
func InvalidInput(field, message string) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: message}
}

// Conflict reports a uniqueness or state violation, keeping the cause.
func Conflict(cause error) *Error {
	return &Error{Kind: KindConflict, Message: cause.Error(), Err: cause}
}

// Storage wraps an unclassified data-store failure.
func Storage(cause error) *Error {
	return &Error{Kind: KindStorage, Message: "storage error", Err: cause}
}

// KindOf returns the kind of err, or KindStorage for anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// Classify passes *Error values through and wraps everything else as Storage.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Storage(err)
}
