package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/server/auth"
	"github.com/proyection/proyection-api/internal/server/models"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is the authenticated caller attached to the request context by
// requireAuth and optionalAuth.
type Identity struct {
	User   *models.User
	Token  string
	Claims *auth.Claims
}

// IdentityFrom extracts the caller identity set by the auth middleware.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

func withIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// requireAuth rejects requests without a valid bearer token bound to an
// active account.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.authenticate(r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

// optionalAuth attaches the identity when a valid token is presented and
// proceeds anonymously otherwise. It never rejects the request.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := s.authenticate(r); err == nil {
			r = r.WithContext(withIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(r *http.Request) (*Identity, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, common.ErrMissingToken
	}

	rawToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	claims, err := s.tokens.VerifyToken(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		s.logger.Error(r.Context(), "user lookup failed", "error", err)
		return nil, common.ErrInternal
	}
	if !user.IsActive {
		return nil, common.ErrAccountInactive
	}

	return &Identity{User: user, Token: rawToken, Claims: claims}, nil
}
