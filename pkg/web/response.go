// Package web defines common components for a web application.
package web

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg returns the message suffix for the failed field validation.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "min":
		return " must be greater than or equal to " + fe.Param()
	case "max":
		return " must be less than or equal to " + fe.Param()
	case "accounttype":
		return " is not supported"
	case "datetime":
		return " must be a date in " + fe.Param() + " format"
	}

	return " is invalid"
}

// BindingErrorMsg converts a binding error into a client facing message.
func BindingErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := ve[0]
		return field.Field() + GetErrorMsg(field)
	}

	return "invalid request"
}

// StatusCode maps an error kind to the HTTP status code returned to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errorspkg.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errorspkg.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, errorspkg.ErrInvalidState),
		errors.Is(err, errorspkg.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errorspkg.ErrInsufficientFunds),
		errors.Is(err, errorspkg.ErrDailyLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errorspkg.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// ErrorResponse returns the status code and body for the given service error.
//
// Unknown errors are rendered as internal so that no details leak to clients.
func ErrorResponse(err error) (int, Response) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		return code, Error(errorspkg.ErrInternal)
	}

	if code == http.StatusServiceUnavailable {
		return code, Error(errorspkg.ErrStoreUnavailable)
	}

	return code, Error(err)
}
