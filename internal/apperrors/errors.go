// Package apperrors defines the error taxonomy shared by the access, service and
// transport layers.
package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not authorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Error carries a taxonomy kind and a message that is safe to show to callers.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound reports a missing entity by name, e.g. NotFound("post").
func NotFound(entity string) error {
	return &Error{Kind: ErrNotFound, Message: entity + " not found"}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func InvalidInput(message string) error {
	return &Error{Kind: ErrInvalidInput, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}
