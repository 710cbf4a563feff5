package service

import "errors"

// Domain failure taxonomy. Handlers map these to HTTP statuses; anything
// not wrapped in one of them surfaces as an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
)

// Error pairs a taxonomy kind with a client-safe message. errors.Is against
// the sentinels above keeps working through Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func invalidInput(msg string) error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

func invalidState(msg string) error {
	return &Error{Kind: ErrInvalidState, Message: msg}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}
