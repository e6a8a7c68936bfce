package services

import (
	"context"

	"github.com/proyection/proyection-api/internal/server/models"
	"github.com/proyection/proyection-api/internal/server/repositories/banks"
	"github.com/proyection/proyection-api/internal/server/repositories/countries"
)

// ReferenceService exposes read access to country and bank reference data.
type ReferenceService struct {
	countries countries.Repository
	banks     banks.Repository
}

func NewReferenceService(countryRepo countries.Repository, bankRepo banks.Repository) *ReferenceService {
	return &ReferenceService{countries: countryRepo, banks: bankRepo}
}

func (s *ReferenceService) ListCountries(ctx context.Context) ([]models.Country, error) {
	return s.countries.ListActive(ctx)
}

func (s *ReferenceService) GetCountry(ctx context.Context, isoCode string) (*models.Country, error) {
	return s.countries.GetByISOCode(ctx, isoCode)
}

func (s *ReferenceService) ListBanks(ctx context.Context, filter banks.ListFilter) ([]models.Bank, int64, error) {
	return s.banks.List(ctx, filter)
}

func (s *ReferenceService) ListBanksByCountry(ctx context.Context, countryCode string) ([]models.Bank, error) {
	return s.banks.ListByCountry(ctx, countryCode)
}

func (s *ReferenceService) ListPopularBanks(ctx context.Context) ([]models.Bank, error) {
	return s.banks.ListPopular(ctx)
}
