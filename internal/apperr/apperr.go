// Package apperr defines the error kinds surfaced to API clients.
//
// An *Error carries a Kind and a client-safe message. It implements
// graphql-go's ExtendedError so the kind is reported under
// extensions.code in GraphQL responses.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for clients
type Kind string

const (
	Unauthenticated    Kind = "UNAUTHENTICATED"
	Forbidden          Kind = "FORBIDDEN"
	NotFound           Kind = "NOT_FOUND"
	InvalidCredentials Kind = "INVALID_CREDENTIALS"
	ValidationFailed   Kind = "VALIDATION_FAILED"
	DuplicateKey       Kind = "DUPLICATE_KEY"
	Internal           Kind = "INTERNAL"
)

// Error is a typed, client-safe error
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for ValidationFailed errors
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements gqlerrors.ExtendedError
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code": string(e.Kind),
	}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

// Is matches any *Error with the same Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrUnauthenticated is returned when no user is attached to the request
func ErrUnauthenticated() *Error {
	return New(Unauthenticated, "Not logged in.")
}

// ErrForbidden is returned when the requester is outside the target's scope
func ErrForbidden() *Error {
	return New(Forbidden, "Not authorized.")
}

// ErrNotFound is returned when the referenced entity does not exist
func ErrNotFound(entity string) *Error {
	return New(NotFound, "%s not found.", entity)
}

// ErrInvalidCredentials deliberately does not say which half of the pair was wrong
func ErrInvalidCredentials() *Error {
	return New(InvalidCredentials, "Incorrect credentials.")
}

// ErrDuplicateKey is returned on a uniqueness violation
func ErrDuplicateKey(field string) *Error {
	return New(DuplicateKey, "%s is already in use.", field)
}

// ErrValidation builds a ValidationFailed error from per-field messages
func ErrValidation(fields map[string]string) *Error {
	return &Error{Kind: ValidationFailed, Message: "Validation failed.", Fields: fields}
}

// ErrInternal hides the underlying cause from clients
func ErrInternal() *Error {
	return New(Internal, "Something went wrong.")
}

// KindOf returns the Kind of err, or Internal if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
