// Package httpapi exposes the Proyection HTTP JSON API: chi routing, bearer
// token middleware, envelope responses with stable error codes, and
// Prometheus instrumentation.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/proyection/proyection-api/internal/common"
)

// Stable machine-readable error codes carried in the error envelope.
const (
	CodeMissingCredentials  = "MISSING_CREDENTIALS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeAccountInactive     = "ACCOUNT_INACTIVE"
	CodeMissingToken        = "MISSING_TOKEN"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeMissingRefreshToken = "MISSING_REFRESH_TOKEN"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeValidationError     = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
	CodeAuthError           = "AUTH_ERROR"
)

type errorBody struct {
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// envelope is the uniform response shape. Error is set only on failures,
// Data only on successes.
type envelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.logger.Error(context.Background(), "response encoding failed", "error", err)
	}
}

func (s *Server) respondData(w http.ResponseWriter, status int, message string, data any) {
	s.writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func (s *Server) respondCode(w http.ResponseWriter, status int, code, message string, cause error) {
	body := &errorBody{Code: code}
	// Raw error detail is for development only; production clients get the
	// code and message alone.
	if cause != nil && !s.cfg.Production {
		body.Details = cause.Error()
	}
	s.writeJSON(w, status, envelope{Success: false, Message: message, Error: body})
}

// respondError maps a sentinel error from the service or token layers to the
// HTTP status, code, and message of the public contract.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.respondCode(w, status, code, message, err)
}

func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, common.ErrMissingCredentials):
		return http.StatusBadRequest, CodeMissingCredentials, "Email and password are required"
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password"
	case errors.Is(err, common.ErrAccountInactive):
		return http.StatusUnauthorized, CodeAccountInactive, "Account is deactivated"
	case errors.Is(err, common.ErrMissingToken):
		return http.StatusUnauthorized, CodeMissingToken, "Access token is required"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, CodeTokenExpired, "Token has expired"
	case errors.Is(err, common.ErrTokenNotYetValid), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, CodeInvalidToken, "Invalid token"
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusUnauthorized, CodeUserNotFound, "User not found"
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, CodeValidationError, "Validation failed"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, "Resource not found"
	default:
		return http.StatusInternalServerError, CodeInternalServerError, "Internal server error"
	}
}
