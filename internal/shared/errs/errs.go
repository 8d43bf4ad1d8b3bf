package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindGateway       Kind = "gateway"
	KindNotFound      Kind = "not_found"
	KindPersistence   Kind = "persistence"
	KindInternal      Kind = "internal"
)

// Error is the typed error surfaced by services to handlers
type Error struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"` // upstream status for gateway errors
	Body       string `json:"-"` // upstream body for gateway errors
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can write errors.Is(err, errs.ErrNotFound)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// HTTPStatus maps the error kind to a response status
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrValidation    = &Error{Kind: KindValidation}
	ErrGateway       = &Error{Kind: KindGateway}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrPersistence   = &Error{Kind: KindPersistence}
)

func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Gateway wraps a non-success provider response
func Gateway(message string, statusCode int, body string, err error) *Error {
	return &Error{Kind: KindGateway, Message: message, StatusCode: statusCode, Body: body, Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// From returns the *Error in err's chain, or wraps err as an internal error
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}
