// internal/app/system/httpjson/httpjson.go

// Package httpjson is the JSON response layer for the API. Every response
// body is an object; every error body carries a "message" field the SPA
// surfaces directly as a notification.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Write serializes v with the given status. Encoding failures are logged
// by net/http's panic recovery; headers are already sent at that point so
// there is nothing better to do.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a bare {"message": ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Error maps err onto the wire. Typed apperr values keep their status and
// message; anything else is an unexpected store failure reported
// generically and logged for operators.
func Error(w http.ResponseWriter, err error, log *zap.Logger) {
	if ae, ok := apperr.As(err); ok {
		Message(w, ae.Status, ae.Message)
		return
	}
	if log != nil {
		log.Error("internal error", zap.Error(err))
	}
	Message(w, http.StatusInternalServerError, "Server error")
}

// Decode parses a JSON request body into dst, returning a validation
// error on malformed input.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Validation("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}
