// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// MsgInterno is the only message clients see for unexpected failures.
const MsgInterno = "Error interno del servidor"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}

// Response picks the HTTP status and envelope for err. Anything that is not a
// domain error, or is an Internal one, becomes a generic 500.
func Response(err error) (int, interface{}) {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		return http.StatusInternalServerError, New(MsgInterno)
	}
	if len(e.Fields) > 0 {
		return e.Kind.Status(), &ValidationError{Detail: e.Message, Fields: e.Fields}
	}
	return e.Kind.Status(), New(e.Message)
}
