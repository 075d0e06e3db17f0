package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error unwraps to exactly one of these, and the HTTP
// layer maps them to status codes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
)

// Error carries a client-facing detail message alongside its kind.
type Error struct {
	Kind   error
	Detail string
}

func newError(kind error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Detail returns the client-facing message of err, or "" if err is not an
// *Error.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
