// Package services contains server-side business logic. This file implements
// AuthService, which verifies credentials and mints/refreshes JWTs.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/logging"
	"github.com/proyection/proyection-api/internal/server/auth"
	"github.com/proyection/proyection-api/internal/server/models"
	"github.com/proyection/proyection-api/internal/server/repositories/users"
)

// LoginResult bundles the authenticated user with both freshly issued tokens.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates Credential Store and Token Service for the
// user-facing authentication flow.
type AuthService struct {
	repo   users.Repository
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	logger logging.Logger
}

func NewAuthService(repo users.Repository, tokens *auth.TokenManager, hasher *auth.PasswordHasher, logger logging.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: logger.With("module", "auth_service"),
	}
}

// Login verifies the email/password pair and returns both token kinds plus
// the user. Unknown email and wrong password both yield
// common.ErrInvalidCredentials so the two cases cannot be told apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingCredentials
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	if !user.IsActive {
		return nil, common.ErrAccountInactive
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	// Last-login update is best-effort; a persistence hiccup must not fail
	// an otherwise valid login.
	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn(ctx, "last-login update failed", "user", user.Email, "error", err)
	} else {
		user.LastLogin = &now
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "access token generation failed", "error", err)
		return nil, common.ErrInternal
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "refresh token generation failed", "error", err)
		return nil, common.ErrInternal
	}

	s.logger.Info(ctx, "login successful", "user", user.Email)

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh verifies a refresh token (kind enforced) and issues a new access
// token. The refresh token itself is not rotated. A subject that no longer
// resolves to an active account yields common.ErrUserNotFound.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", common.ErrMissingToken
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUserNotFound
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrInternal
	}
	if !user.IsActive {
		return "", common.ErrUserNotFound
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error(ctx, "access token generation failed", "error", err)
		return "", common.ErrInternal
	}

	s.logger.Info(ctx, "access token refreshed", "user", user.Email)
	return accessToken, nil
}
