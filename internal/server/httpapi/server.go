package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/proyection/proyection-api/internal/logging"
	"github.com/proyection/proyection-api/internal/server/auth"
	"github.com/proyection/proyection-api/internal/server/config"
	"github.com/proyection/proyection-api/internal/server/repositories/users"
	"github.com/proyection/proyection-api/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of the API. It owns the router, middleware, and
// metrics, and delegates business logic to the services.
type Server struct {
	cfg       *config.Config
	logger    logging.Logger
	auth      *services.AuthService
	accounts  *services.BankAccountService
	reference *services.ReferenceService
	users     users.Repository
	tokens    *auth.TokenManager
	metrics   *Metrics
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	authSvc *services.AuthService,
	accountSvc *services.BankAccountService,
	referenceSvc *services.ReferenceService,
	userRepo users.Repository,
	tokens *auth.TokenManager,
) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger.With("module", "httpapi"),
		auth:      authSvc,
		accounts:  accountSvc,
		reference: referenceSvc,
		users:     userRepo,
		tokens:    tokens,
		metrics:   NewMetrics(),
	}
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.metrics.instrument)

	r.With(s.optionalAuth).Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/logout", s.handleLogout)
				r.Get("/profile", s.handleProfile)
				r.Get("/test", s.handleTokenInfo)
			})
		})

		r.Route("/utilities", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/countries", s.handleListCountries)
			r.Get("/countries/{iso}", s.handleGetCountry)
			r.Get("/banks", s.handleListBanks)
			r.Get("/banks/popular", s.handleListPopularBanks)
			r.Get("/banks/country/{iso}", s.handleListBanksByCountry)
		})

		r.Route("/management/bank-accounts", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateAccount)
			r.Get("/", s.handleListAccounts)
			r.Get("/{id}", s.handleGetAccount)
			r.Put("/{id}", s.handleUpdateAccount)
			r.Patch("/{id}/status", s.handleAccountStatus)
			r.Patch("/{id}/restore", s.handleRestoreAccount)
			r.Delete("/{id}", s.handleDeleteAccount)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.respondCode(w, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.respondCode(w, http.StatusMethodNotAllowed, CodeNotFound, "Method not allowed", nil)
	})

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.EndpointAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	message := "Proyection API is running"
	if id, ok := IdentityFrom(r.Context()); ok {
		message = "Welcome back, " + id.User.FullName()
	}
	s.respondData(w, http.StatusOK, message, map[string]any{
		"name":    "proyection-api",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, http.StatusOK, "OK", map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
