package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for HTTP reporting.
type Kind int

const (
	// Config means a required service credential or setting is absent.
	Config Kind = iota
	// ClientInput means the request itself was malformed or incomplete.
	ClientInput
	// Processing covers failures during temp-file I/O, vendor calls or parsing.
	Processing
)

// Error carries a failure kind plus a client-safe message. The wrapped
// cause is for logs only and never reaches the response body.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// HTTPStatus maps an error to the response status code. Unclassified
// errors count as processing failures.
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind == ClientInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ClientMessage returns the message safe to show to the caller.
func ClientMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "video analysis failed"
}
