// Package apierr is the closed error taxonomy for the API. Lower layers
// produce *Error values; the transport layer maps them to status codes in
// exactly one place.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, msg string, err error) *Error {
	return &Error{Status: status, Msg: msg, Err: err}
}

func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Msg: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Msg: msg}
}

// Upstream wraps a store or provider failure. The wrapped error stays out of
// the response body; only msg is shown to the caller.
func Upstream(msg string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Msg: msg, Err: err}
}

// From extracts the *Error from an error chain. Anything else collapses to a
// generic 500 so that store internals never leak to the caller.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Status: http.StatusInternalServerError, Msg: "Internal server error", Err: err}
}
