// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by every feature:
// validation (400), unauthorized (401), forbidden (403), not found (404),
// conflict (409), and internal (500). Handlers return *Error values and the
// httpjson package maps them onto the wire format the client expects.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a business-rule violation with an HTTP status and a
// human-readable message the client surfaces directly as a notification.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Validation reports missing or malformed required input.
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Forbidden reports an authenticated caller with insufficient privilege
// or ownership.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// NotFound reports that a referenced entity does not exist.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Conflict reports a duplicate unique field or a redundant state transition.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// Internal reports an unexpected failure. The message shown to callers is
// generic; the underlying error is logged at the boundary, not leaked.
func Internal() *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Server error"}
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
