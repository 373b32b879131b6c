package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/userportal/internal/model"
	"github.com/mcoot/userportal/internal/services/validation"
)

// ErrorResponse is the error body of the users API
type ErrorResponse struct {
	Message string `json:"message"`
}

// httpError combines an HTTP status code with a message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Message: he.message})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Validation failures carry their user-facing reason
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		return &httpError{http.StatusBadRequest, verr.Reason}
	}

	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "User not found"}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, "Email already registered"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Invalid email or password"}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, "Invalid or expired token"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "Authentication required"}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
