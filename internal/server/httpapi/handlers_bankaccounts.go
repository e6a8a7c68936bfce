package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/server/services"
)

type bankAccountRequest struct {
	CountryID     string  `json:"countryId"`
	BankID        string  `json:"bankId"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CurrentAmount float64 `json:"currentAmount"`
	Currency      string  `json:"currency"`
	AccountNumber string  `json:"accountNumber"`
}

type accountStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

func (r bankAccountRequest) toInput() services.BankAccountInput {
	return services.BankAccountInput{
		CountryID:     r.CountryID,
		BankID:        r.BankID,
		Name:          r.Name,
		Description:   r.Description,
		CurrentAmount: r.CurrentAmount,
		Currency:      r.Currency,
		AccountNumber: r.AccountNumber,
	}
}

// caller returns the authenticated user id. The routes are mounted behind
// requireAuth, so a missing identity is a programming error surfaced as 401.
func (s *Server) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		s.respondCode(w, http.StatusUnauthorized, CodeAuthError, "Authentication required", nil)
		return "", false
	}
	return id.User.ID, true
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req bankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	account, err := s.accounts.Create(r.Context(), userID, req.toInput())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusCreated, "Bank account created successfully", map[string]any{
		"bankAccount": account,
	})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	accounts, err := s.accounts.List(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, "Bank accounts retrieved successfully", map[string]any{
		"bankAccounts": accounts,
		"count":        len(accounts),
	})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	account, err := s.accounts.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, "Bank account retrieved successfully", map[string]any{
		"bankAccount": account,
	})
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req bankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	account, err := s.accounts.Update(r.Context(), chi.URLParam(r, "id"), userID, req.toInput())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, "Bank account updated successfully", map[string]any{
		"bankAccount": account,
	})
}

func (s *Server) handleAccountStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	var req accountStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		s.respondError(w, r, fmt.Errorf("%w: isActive is required", common.ErrValidation))
		return
	}

	if err := s.accounts.SetActive(r.Context(), chi.URLParam(r, "id"), userID, *req.IsActive); err != nil {
		s.respondError(w, r, err)
		return
	}

	message := "Bank account deactivated successfully"
	if *req.IsActive {
		message = "Bank account activated successfully"
	}
	s.respondData(w, http.StatusOK, message, nil)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	if err := s.accounts.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, "Bank account deleted successfully", nil)
}

func (s *Server) handleRestoreAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.caller(w, r)
	if !ok {
		return
	}

	if err := s.accounts.Restore(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, "Bank account restored successfully", nil)
}
