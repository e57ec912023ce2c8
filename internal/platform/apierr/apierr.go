// Package apierr carries an HTTP status and a machine-readable code from
// the service layer to the handlers.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	// Message is the client-facing text. Err stays server side when set.
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// Public is the text safe to send to a client. 5xx errors without an
// explicit Message never expose Err.
func (e *Error) Public() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "":
		return e.Message
	case e.Status >= http.StatusInternalServerError:
		return "internal server error"
	}
	return e.Error()
}

// WithMessage sets the client-facing text and returns e.
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From unwraps err into an *Error. Anything else becomes a 500 with
// fallbackCode.
func From(err error, fallbackCode string) *Error {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		out := *ae
		if out.Status == 0 {
			out.Status = http.StatusInternalServerError
		}
		return &out
	}
	return New(http.StatusInternalServerError, fallbackCode, err)
}
