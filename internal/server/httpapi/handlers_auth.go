package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/server/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenBundle struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    string `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	// A malformed body carries no usable credentials, so it gets the same
	// answer as an empty one.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.ObserveLogin("failure")
		s.respondError(w, r, common.ErrMissingCredentials)
		return
	}

	result, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.metrics.ObserveLogin("failure")
		s.respondError(w, r, err)
		return
	}

	s.metrics.ObserveLogin("success")
	s.metrics.ObserveTokenIssued(auth.TokenKindAccess)
	s.metrics.ObserveTokenIssued(auth.TokenKindRefresh)

	s.respondData(w, http.StatusOK, "Login successful", map[string]any{
		"user": result.User.Public(),
		"tokens": tokenBundle{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			ExpiresIn:    auth.FormatValidity(s.tokens.AccessTokenValidity()),
			TokenType:    "Bearer",
		},
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondCode(w, http.StatusBadRequest, CodeMissingRefreshToken, "Refresh token is required", err)
		return
	}

	accessToken, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		// The refresh flow has its own codes for missing and bad tokens.
		switch {
		case errors.Is(err, common.ErrMissingToken):
			s.respondCode(w, http.StatusBadRequest, CodeMissingRefreshToken, "Refresh token is required", err)
		case errors.Is(err, common.ErrTokenExpired),
			errors.Is(err, common.ErrTokenNotYetValid),
			errors.Is(err, common.ErrInvalidToken):
			s.respondCode(w, http.StatusUnauthorized, CodeInvalidRefreshToken, "Invalid or expired refresh token", err)
		default:
			s.respondError(w, r, err)
		}
		return
	}

	s.metrics.ObserveTokenIssued(auth.TokenKindAccess)

	// Unlike login, the new access token sits at the top level of data.
	s.respondData(w, http.StatusOK, "Token refreshed successfully", tokenBundle{
		AccessToken: accessToken,
		ExpiresIn:   auth.FormatValidity(s.tokens.AccessTokenValidity()),
		TokenType:   "Bearer",
	})
}

// handleLogout acknowledges the logout. Tokens are stateless, so the client
// discards them; nothing is revoked server side.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if id, ok := IdentityFrom(r.Context()); ok {
		s.logger.Info(r.Context(), "logout", "user", id.User.Email)
	}
	s.respondData(w, http.StatusOK, "Logout successful", nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		s.respondCode(w, http.StatusUnauthorized, CodeAuthError, "Authentication required", nil)
		return
	}
	s.respondData(w, http.StatusOK, "Profile retrieved successfully", map[string]any{
		"user": id.User.Public(),
	})
}

// handleTokenInfo reports the lifecycle of the presented token, for client
// debugging of expiry handling.
func (s *Server) handleTokenInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		s.respondCode(w, http.StatusUnauthorized, CodeAuthError, "Authentication required", nil)
		return
	}

	claims := id.Claims
	remaining := time.Duration(0)
	if claims.ExpiresAt != nil {
		remaining = time.Until(claims.ExpiresAt.Time).Truncate(time.Second)
		if remaining < 0 {
			remaining = 0
		}
	}

	tokenInfo := map[string]any{
		"expiresInSeconds": int64(remaining.Seconds()),
	}
	if claims.IssuedAt != nil {
		tokenInfo["issuedAt"] = claims.IssuedAt.Time.UTC().Format(time.RFC3339)
	}
	if claims.ExpiresAt != nil {
		tokenInfo["expiresAt"] = claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}

	s.respondData(w, http.StatusOK, "Token is valid", map[string]any{
		"userId": claims.UserID,
		"email":  claims.Email,
		"type":   claims.Type,
		"token":  tokenInfo,
	})
}
