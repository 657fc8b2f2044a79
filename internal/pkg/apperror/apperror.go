// Package apperror is the error taxonomy shared by services and the HTTP
// error handler. Services return these; controllers never map statuses
// themselves.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindAuth
	KindNotFound
	KindPrecondition
)

type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation messages, collected together rather
	// than failing on the first offending field.
	Fields map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation builds a field-level validation error.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// ValidationField is the single-field shorthand.
func ValidationField(field, message string) *Error {
	return Validation(map[string][]string{field: {message}})
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Auth returns the uniform credential error. Bad password, unknown email
// and deactivated account must be indistinguishable, so callers use this
// single constructor.
func Auth() *Error {
	return &Error{Kind: KindAuth, Message: "invalid email or password"}
}

// NotFound covers both genuinely missing resources and resources owned by
// another user; the two cases must not be distinguishable.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Precondition marks a programmer error that should be unreachable via the
// API, e.g. allocating a slug without an owner.
func Precondition(message string) *Error {
	return &Error{Kind: KindPrecondition, Message: message}
}

// From extracts an *Error from err's chain.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	appErr, ok := From(err)
	return ok && appErr.Kind == kind
}

func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsValidation(err error) bool { return IsKind(err, KindValidation) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsAuth(err error) bool       { return IsKind(err, KindAuth) }
