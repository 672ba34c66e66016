package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError defines a custom error structure that includes an HTTP status code and message
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError instance with a custom status code and message
func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// BadRequest creates a 400 Bad Request error
func BadRequest(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 Unauthorized error
func Unauthorized(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// NotFound creates a 404 Not Found error
func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// InternalServerError creates a 500 Internal Server Error
func InternalServerError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// StatusFor maps domain errors to the status code the API answers with.
func StatusFor(err error) int {
	var (
		httpErr       *HTTPError
		authErr       *AuthenticationError
		transportErr  *TransportError
		syncErr       *SyncError
		validationErr *ValidationError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &syncErr), errors.As(err, &transportErr):
		return http.StatusBadGateway
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// WriteError sends the error as a JSON body with the mapped status code.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	message := "Unhandled error"
	if err != nil {
		message = err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		message = "Request timed out"
	}
	body := map[string]string{"error": message}

	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		body["stage"] = string(syncErr.Stage)
		body["broker"] = syncErr.Broker
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
