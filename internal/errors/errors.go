package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid session resolves to a user.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("there is already a user with same email")
	// ErrMealNotFound is returned when a meal does not exist or is owned by
	// another user; the two causes are deliberately indistinguishable.
	ErrMealNotFound = errors.New("resource not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Unauthorized", "UNAUTHORIZED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, "There is already a user with same email", "EMAIL_TAKEN")
	case errors.Is(err, ErrMealNotFound):
		return NewHTTPError(http.StatusNotFound, "Resource not found", "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
