// Package auth implements the token and password primitives of the
// authentication subsystem: HS256 JWT issue/verify with distinct access and
// refresh lifecycles, and bcrypt credential hashing.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/server/config"
)

// Token kinds carried in the "type" claim.
const (
	TokenKindAccess  = "access_token"
	TokenKindRefresh = "refresh_token"
)

const bearerPrefix = "Bearer "

// Claims is the claim set carried by every issued token. Subject duplicates
// UserID to keep the registered claims self-contained.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed identity tokens. It encapsulates
// the signing secret, issuer, audience, and clock-tolerance policy, so no
// other package touches raw JWT options.
type TokenManager struct {
	secret               []byte
	issuer               string
	audience             string
	accessTokenValidity  time.Duration
	refreshTokenValidity time.Duration
	clockTolerance       time.Duration
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret:               []byte(cfg.JWTSecret),
		issuer:               cfg.JWTIssuer,
		audience:             cfg.JWTAudience,
		accessTokenValidity:  cfg.AccessTokenValidity,
		refreshTokenValidity: cfg.RefreshTokenValidity,
		clockTolerance:       cfg.ClockTolerance,
	}
}

// IssueAccessToken signs a short-lived access token for the given identity.
func (m *TokenManager) IssueAccessToken(userID, email string) (string, error) {
	return m.issue(userID, email, TokenKindAccess, m.accessTokenValidity)
}

// IssueRefreshToken signs a long-lived refresh token for the given identity.
func (m *TokenManager) IssueRefreshToken(userID, email string) (string, error) {
	return m.issue(userID, email, TokenKindRefresh, m.refreshTokenValidity)
}

func (m *TokenManager) issue(userID, email, kind string, validity time.Duration) (string, error) {
	if userID == "" || email == "" {
		return "", fmt.Errorf("%w: userId and email are required", common.ErrTokenGeneration)
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Type:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrTokenGeneration, err)
	}

	return signed, nil
}

// VerifyToken checks the signature, issuer, audience, expiry, and not-before
// of a raw token, allowing the configured clock tolerance. An optional
// "Bearer " presentation prefix is stripped first.
//
// Failures map to common.ErrTokenExpired, common.ErrTokenNotYetValid, or
// common.ErrInvalidToken; callers treat each differently.
func (m *TokenManager) VerifyToken(rawToken string) (*Claims, error) {
	rawToken = stripBearer(rawToken)
	if rawToken == "" {
		return nil, common.ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(rawToken, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithLeeway(m.clockTolerance),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, common.ErrTokenNotYetValid
		default:
			return nil, common.ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// VerifyRefreshToken verifies a raw token and additionally requires the
// refresh kind, so a still-valid access token cannot mint new tokens.
func (m *TokenManager) VerifyRefreshToken(rawToken string) (*Claims, error) {
	claims, err := m.VerifyToken(rawToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenKindRefresh {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// DecodeUnverified performs a best-effort structural decode for diagnostics.
// The result carries no authenticity guarantee and must never feed an
// authorization decision. Malformed input yields nil.
func (m *TokenManager) DecodeUnverified(rawToken string) *Claims {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(stripBearer(rawToken), claims); err != nil {
		return nil
	}
	return claims
}

// AccessTokenValidity reports the configured access token lifetime.
func (m *TokenManager) AccessTokenValidity() time.Duration {
	return m.accessTokenValidity
}

// FormatValidity renders a duration in the compact form the API uses for the
// expiresIn field ("20m", "2h").
func FormatValidity(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	if d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return d.String()
}

func stripBearer(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), bearerPrefix))
}
