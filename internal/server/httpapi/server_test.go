package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/logging"
	"github.com/proyection/proyection-api/internal/server/auth"
	"github.com/proyection/proyection-api/internal/server/config"
	"github.com/proyection/proyection-api/internal/server/models"
	"github.com/proyection/proyection-api/internal/server/repositories/banks"
	"github.com/proyection/proyection-api/internal/server/services"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testPassword = "password123"
)

// In-memory repositories backing the handler tests.

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memUserRepo) UpsertByEmail(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

type memAccountRepo struct {
	accounts map[string]*models.BankAccount
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*models.BankAccount{}}
}

func (r *memAccountRepo) Create(_ context.Context, account *models.BankAccount) (*models.BankAccount, error) {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := *account
	r.accounts[account.ID] = &stored
	return account, nil
}

func (r *memAccountRepo) ListByUser(_ context.Context, userID string) ([]models.BankAccount, error) {
	out := []models.BankAccount{}
	for _, a := range r.accounts {
		if a.UserID == userID && !a.IsDeleted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id, userID string) (*models.BankAccount, error) {
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID || a.IsDeleted {
		return nil, common.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memAccountRepo) Update(_ context.Context, account *models.BankAccount) error {
	a, ok := r.accounts[account.ID]
	if !ok || a.UserID != account.UserID || a.IsDeleted {
		return common.ErrNotFound
	}
	account.UpdatedAt = time.Now()
	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *memAccountRepo) SetActive(_ context.Context, id, userID string, active bool) error {
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID || a.IsDeleted {
		return common.ErrNotFound
	}
	a.IsActive = active
	return nil
}

func (r *memAccountRepo) SoftDelete(_ context.Context, id, userID string) error {
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID || a.IsDeleted {
		return common.ErrNotFound
	}
	now := time.Now()
	a.IsDeleted = true
	a.DeletedAt = &now
	return nil
}

func (r *memAccountRepo) Restore(_ context.Context, id, userID string) error {
	a, ok := r.accounts[id]
	if !ok || a.UserID != userID || !a.IsDeleted {
		return common.ErrNotFound
	}
	a.IsDeleted = false
	a.DeletedAt = nil
	return nil
}

type memCountryRepo struct {
	countries []models.Country
}

func (r *memCountryRepo) ListActive(_ context.Context) ([]models.Country, error) {
	return r.countries, nil
}

func (r *memCountryRepo) GetByISOCode(_ context.Context, isoCode string) (*models.Country, error) {
	for _, c := range r.countries {
		if c.ISOCode == strings.ToUpper(isoCode) {
			copied := c
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memCountryRepo) Upsert(_ context.Context, country *models.Country) error {
	r.countries = append(r.countries, *country)
	return nil
}

type memBankRepo struct {
	banks []models.Bank
}

func (r *memBankRepo) List(_ context.Context, _ banks.ListFilter) ([]models.Bank, int64, error) {
	return r.banks, int64(len(r.banks)), nil
}

func (r *memBankRepo) ListByCountry(_ context.Context, countryCode string) ([]models.Bank, error) {
	out := []models.Bank{}
	for _, b := range r.banks {
		if b.CountryCode == strings.ToUpper(countryCode) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBankRepo) ListPopular(_ context.Context) ([]models.Bank, error) {
	out := []models.Bank{}
	for _, b := range r.banks {
		if b.IsPopular {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBankRepo) Upsert(_ context.Context, bank *models.Bank) error {
	r.banks = append(r.banks, *bank)
	return nil
}

type fixture struct {
	server  *Server
	handler http.Handler
	users   *memUserRepo
	tokens  *auth.TokenManager
	cfg     *config.Config
}

func newFixture(t *testing.T, users ...*models.User) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.JWTSecret = testSecret
	cfg.BcryptCost = 4

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	userRepo := newMemUserRepo(users...)
	tokens := auth.NewTokenManager(cfg)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	authSvc := services.NewAuthService(userRepo, tokens, hasher, logger)
	accountSvc := services.NewBankAccountService(newMemAccountRepo())
	referenceSvc := services.NewReferenceService(
		&memCountryRepo{countries: []models.Country{
			{ID: uuid.NewString(), Name: "Peru", ISOCode: "PE", IsActive: true},
			{ID: uuid.NewString(), Name: "United States", ISOCode: "US", IsActive: true},
		}},
		&memBankRepo{banks: []models.Bank{
			{ID: uuid.NewString(), Name: "Banco Uno", Code: "BU", CountryCode: "PE", IsPopular: true, IsActive: true},
		}},
	)

	srv := NewServer(cfg, logger, authSvc, accountSvc, referenceSvc, userRepo, tokens)
	return &fixture{
		server:  srv,
		handler: srv.Handler(),
		users:   userRepo,
		tokens:  tokens,
		cfg:     cfg,
	}
}

func seedUser(t *testing.T, id, email string) *models.User {
	t.Helper()
	hash, err := auth.NewPasswordHasher(4).Hash(testPassword)
	require.NoError(t, err)
	return &models.User{
		ID:                id,
		Email:             email,
		PasswordHash:      hash,
		FirstName:         "Ada",
		LastName:          "Admin",
		PreferredCurrency: "USD",
		IsActive:          true,
	}
}

// do performs a request against the router and decodes the envelope.
func (f *fixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error object: %v", body)
	code, _ := errObj["code"].(string)
	return code
}

func (f *fixture) login(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	rec, body := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %v", body)

	tokens := body["data"].(map[string]any)["tokens"].(map[string]any)
	return tokens["accessToken"].(string), tokens["refreshToken"].(string)
}
