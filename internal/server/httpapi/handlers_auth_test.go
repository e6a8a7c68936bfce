package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proyection/proyection-api/internal/server/auth"
	"github.com/proyection/proyection-api/internal/server/config"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))

	rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@proyection.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	assert.NotEmpty(t, tokens["accessToken"])
	assert.NotEmpty(t, tokens["refreshToken"])
	assert.Equal(t, "20m", tokens["expiresIn"])
	assert.Equal(t, "Bearer", tokens["tokenType"])

	user := data["user"].(map[string]any)
	assert.Equal(t, "admin@proyection.com", user["email"])
	_, leaked := user["password"]
	assert.False(t, leaked, "password hash must never be serialized")
	assert.NotContains(t, rec.Body.String(), "$2a$", "bcrypt hash leaked into response")
}

func TestLogin_ProfileRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	accessToken, _ := f.login(t, "admin@proyection.com", testPassword)

	rec, body := f.do(t, http.MethodGet, "/api/auth/profile", accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "admin@proyection.com", user["email"])
	assert.NotEmpty(t, user["lastLogin"], "login must stamp lastLogin before profile is read")
}

func TestLogin_MissingCredentials(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeMissingCredentials, errorCode(t, body))
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))

	recUnknown, bodyUnknown := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@proyection.com", "password": testPassword,
	})
	recWrong, bodyWrong := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@proyection.com", "password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, recUnknown.Code, recWrong.Code)
	assert.Equal(t, CodeInvalidCredentials, errorCode(t, bodyUnknown))
	assert.Equal(t, errorCode(t, bodyUnknown), errorCode(t, bodyWrong))
	assert.Equal(t, bodyUnknown["message"], bodyWrong["message"])
}

func TestLogin_InactiveAccount(t *testing.T) {
	t.Parallel()

	user := seedUser(t, "u1", "admin@proyection.com")
	user.IsActive = false
	f := newFixture(t, user)

	rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@proyection.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeAccountInactive, errorCode(t, body))
}

func TestRefresh_Success(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	_, refreshToken := f.login(t, "admin@proyection.com", testPassword)

	rec, body := f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)

	// The new token sits directly under data, not nested like login's.
	data := body["data"].(map[string]any)
	newAccess, ok := data["accessToken"].(string)
	require.True(t, ok, "accessToken missing at data top level, keys: %v", data)
	assert.Equal(t, "20m", data["expiresIn"])
	assert.Equal(t, "Bearer", data["tokenType"])
	_, rotated := data["refreshToken"]
	assert.False(t, rotated, "refresh tokens are not rotated")

	claims, err := f.tokens.VerifyToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenKindAccess, claims.Type)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	accessToken, _ := f.login(t, "admin@proyection.com", testPassword)

	rec, body := f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": accessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeInvalidRefreshToken, errorCode(t, body))
}

func TestRefresh_MissingToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec, body := f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeMissingRefreshToken, errorCode(t, body))
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	_, refreshToken := f.login(t, "admin@proyection.com", testPassword)

	require.NoError(t, f.users.SetActive(context.Background(), "u1", false))

	rec, body := f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeUserNotFound, errorCode(t, body))
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	accessToken, _ := f.login(t, "admin@proyection.com", testPassword)

	rec, body := f.do(t, http.MethodPost, "/api/auth/logout", accessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", body["message"])

	// Stateless tokens keep working after logout; the client discards them.
	rec, _ = f.do(t, http.MethodGet, "/api/auth/profile", accessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenInfo(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))
	accessToken, _ := f.login(t, "admin@proyection.com", testPassword)

	rec, body := f.do(t, http.MethodGet, "/api/auth/test", accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, auth.TokenKindAccess, data["type"])
	assert.Equal(t, "admin@proyection.com", data["email"])

	tokenInfo := data["token"].(map[string]any)
	assert.Greater(t, tokenInfo["expiresInSeconds"].(float64), float64(0))
}

func TestProductionModeHidesErrorDetails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cfg.Production = true

	_, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@proyection.com", "password": "x",
	})
	errObj := body["error"].(map[string]any)
	_, hasDetails := errObj["details"]
	assert.False(t, hasDetails, "details must be suppressed in production")
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))

	// A manager with a negative validity mints tokens that expired beyond
	// the 60s clock tolerance.
	expiredCfg := &config.Config{}
	expiredCfg.LoadDefaults()
	expiredCfg.JWTSecret = testSecret
	expiredCfg.AccessTokenValidity = -2 * config.DefaultClockTolerance

	expired, err := auth.NewTokenManager(expiredCfg).IssueAccessToken("u1", "admin@proyection.com")
	require.NoError(t, err)

	rec, body := f.do(t, http.MethodGet, "/api/auth/profile", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, CodeTokenExpired, errorCode(t, body))
}

func TestSeededAdminScenario(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "admin-id", "admin@proyection.com"))

	accessToken, refreshToken := f.login(t, "admin@proyection.com", "password123")

	rec, body := f.do(t, http.MethodGet, "/api/auth/profile", accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "admin@proyection.com", user["email"])

	rec, _ = f.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRootGreeting(t *testing.T) {
	t.Parallel()

	f := newFixture(t, seedUser(t, "u1", "admin@proyection.com"))

	_, body := f.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, "Proyection API is running", body["message"])

	accessToken, _ := f.login(t, "admin@proyection.com", testPassword)
	_, body = f.do(t, http.MethodGet, "/", accessToken, nil)
	assert.True(t, strings.HasPrefix(body["message"].(string), "Welcome back"), "message: %v", body["message"])
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	rec, body := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["data"].(map[string]any)["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	f.handler.ServeHTTP(mrec, req)
	assert.Equal(t, http.StatusOK, mrec.Code)
	assert.Contains(t, mrec.Body.String(), "proyection_http_requests_total")
}
