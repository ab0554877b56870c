package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed portal error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Code so cloned and wrapped copies still compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

var (
	ErrUnauthorized    = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrSessionNotFound = New("SESSION_NOT_FOUND", http.StatusUnauthorized, "session not found")
	ErrSessionInvalid  = New("SESSION_INVALID", http.StatusUnauthorized, "session token invalid")
	// ErrUpstream marks transport failures talking to the SIFMS API: dial errors,
	// cancelled requests and bodies that are not JSON.
	ErrUpstream = New("UPSTREAM_UNAVAILABLE", http.StatusBadGateway, "sifms api unavailable")
	// ErrRejected carries an application-level refusal from the SIFMS API verbatim.
	ErrRejected = New("UPSTREAM_REJECTED", http.StatusUnprocessableEntity, "request rejected")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
