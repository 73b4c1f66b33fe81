package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridsnake/gridsnake/internal/model"
	"github.com/gridsnake/gridsnake/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidDirection   = "INVALID_DIRECTION"
	CodeInvalidDimensions  = "INVALID_DIMENSIONS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotSessionOwner    = "NOT_SESSION_OWNER"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeSessionNotRunning  = "SESSION_NOT_RUNNING"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrNotSessionOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotSessionOwner, "Only the session owner can perform this action"}}
	case errors.Is(err, model.ErrInvalidDimensions):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimensions, "Grid dimensions out of range"}}
	case errors.Is(err, model.ErrInvalidSpawn):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimensions, "Spawn position outside grid"}}
	case errors.Is(err, model.ErrSessionNotRunning):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotRunning, "Session is not running"}}
	case errors.Is(err, model.ErrInvalidDirection):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDirection, "Direction must be up, down, left or right"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
