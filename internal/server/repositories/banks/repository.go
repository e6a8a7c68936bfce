// Package banks stores bank reference data.
package banks

import (
	"context"

	"github.com/proyection/proyection-api/internal/server/models"
)

// Pagination bounds applied to every bank listing.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// ListFilter narrows and pages bank listings. Zero values mean "no filter";
// Limit is capped by the repository.
type ListFilter struct {
	CountryCode string
	BankingType string
	Popular     *bool
	Page        int
	Limit       int
}

// Normalize returns the filter with the pagination bounds the repository
// applies. Callers echoing pagination back to clients use this so the
// reported page and limit match the executed query.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

type Repository interface {
	// List returns active banks matching the filter plus the total match
	// count for pagination.
	List(ctx context.Context, filter ListFilter) ([]models.Bank, int64, error)

	// ListByCountry returns active banks of one country ordered by display
	// order, then name.
	ListByCountry(ctx context.Context, countryCode string) ([]models.Bank, error)

	// ListPopular returns active banks flagged as popular.
	ListPopular(ctx context.Context) ([]models.Bank, error)

	// Upsert inserts or replaces a bank keyed by code. Used by seeding.
	Upsert(ctx context.Context, bank *models.Bank) error
}
