// Package errors defines the domain error type shared by services and handlers.
package errors

import (
	stderrors "errors"
	"net/http"
)

// DomainError is a coded error that knows which HTTP status it maps to.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
		Status:  http.StatusNotFound,
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "you do not have access to this resource",
		Status:  http.StatusForbidden,
	}
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
		Status:  http.StatusBadRequest,
	}
	ErrDuplicate = &DomainError{
		Code:    "DUPLICATE",
		Message: "resource already exists",
		Status:  http.StatusConflict,
	}
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "unauthorized",
		Status:  http.StatusUnauthorized,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid credentials",
		Status:  http.StatusUnauthorized,
	}
)

// As finds the first DomainError in err's chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, 500 when it is not a domain error.
func StatusOf(err error) int {
	if de, ok := As(err); ok {
		return de.Status
	}
	return http.StatusInternalServerError
}
