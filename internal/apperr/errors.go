// Package apperr is the error taxonomy shared by the HTTP handlers and the
// auth gate. Every error that reaches a client is classified here.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("access token required")
	ErrForbidden          = errors.New("invalid token")
	ErrInvalidTeacherCode = errors.New("invalid teacher code")
	ErrNotFound           = errors.New("not found")
)

// ValidationError reports malformed or missing request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required is shorthand for a missing-field ValidationError.
func Required(field string) ValidationError {
	return ValidationError{Field: field, Message: field + " is required"}
}

// Classify maps err to the HTTP status and client-facing message. The second
// return is false for errors outside the taxonomy; those are reported as 400
// with the underlying message.
func Classify(err error) (int, string, bool) {
	var ve ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message, true
	case errors.Is(err, ErrEmailTaken):
		return http.StatusBadRequest, "Email already exists", true
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password", true
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "Access token required", true
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "Invalid token", true
	case errors.Is(err, ErrInvalidTeacherCode):
		return http.StatusNotFound, "Invalid teacher code", true
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "Task not found", true
	}
	return http.StatusBadRequest, err.Error(), false
}

// ErrTeacherCodeTaken reports a delegation-code collision at insert time.
// Registration retries on it; it is not part of the client taxonomy.
var ErrTeacherCodeTaken = errors.New("teacher code already taken")
