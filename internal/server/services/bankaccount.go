package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/server/models"
	"github.com/proyection/proyection-api/internal/server/repositories/bankaccounts"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// BankAccountInput carries the caller-editable fields of an account.
type BankAccountInput struct {
	CountryID     string
	BankID        string
	Name          string
	Description   string
	CurrentAmount float64
	Currency      string
	AccountNumber string
}

// BankAccountService manages a user's accounts on top of the repository,
// owning input validation and id generation.
type BankAccountService struct {
	repo bankaccounts.Repository
}

func NewBankAccountService(repo bankaccounts.Repository) *BankAccountService {
	return &BankAccountService{repo: repo}
}

func (s *BankAccountService) Create(ctx context.Context, userID string, in BankAccountInput) (*models.BankAccount, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		ID:            uuid.NewString(),
		UserID:        userID,
		CountryID:     in.CountryID,
		BankID:        in.BankID,
		Name:          in.Name,
		Description:   in.Description,
		CurrentAmount: in.CurrentAmount,
		Currency:      in.Currency,
		AccountNumber: in.AccountNumber,
		IsActive:      true,
	}

	return s.repo.Create(ctx, account)
}

func (s *BankAccountService) List(ctx context.Context, userID string) ([]models.BankAccount, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *BankAccountService) Get(ctx context.Context, id, userID string) (*models.BankAccount, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *BankAccountService) Update(ctx context.Context, id, userID string, in BankAccountInput) (*models.BankAccount, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	account, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	account.CountryID = in.CountryID
	account.BankID = in.BankID
	account.Name = in.Name
	account.Description = in.Description
	account.CurrentAmount = in.CurrentAmount
	account.Currency = in.Currency
	account.AccountNumber = in.AccountNumber

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *BankAccountService) SetActive(ctx context.Context, id, userID string, active bool) error {
	return s.repo.SetActive(ctx, id, userID, active)
}

func (s *BankAccountService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.SoftDelete(ctx, id, userID)
}

func (s *BankAccountService) Restore(ctx context.Context, id, userID string) error {
	return s.repo.Restore(ctx, id, userID)
}

func validateInput(in *BankAccountInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: account name is required", common.ErrValidation)
	}
	if len(in.Name) > 100 {
		return fmt.Errorf("%w: account name exceeds 100 characters", common.ErrValidation)
	}
	if len(in.Description) > 500 {
		return fmt.Errorf("%w: description exceeds 500 characters", common.ErrValidation)
	}
	if in.CountryID == "" || in.BankID == "" {
		return fmt.Errorf("%w: countryId and bankId are required", common.ErrValidation)
	}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if !currencyPattern.MatchString(in.Currency) {
		return fmt.Errorf("%w: currency must be an ISO 4217 code", common.ErrValidation)
	}
	return nil
}
