// Package countries stores ISO country reference data.
package countries

import (
	"context"

	"github.com/proyection/proyection-api/internal/server/models"
)

type Repository interface {
	// ListActive returns active countries ordered by display order, then name.
	ListActive(ctx context.Context) ([]models.Country, error)

	// GetByISOCode loads an active country by its ISO 3166-1 alpha-2 code.
	GetByISOCode(ctx context.Context, isoCode string) (*models.Country, error)

	// Upsert inserts or replaces a country keyed by ISO code. Used by seeding.
	Upsert(ctx context.Context, country *models.Country) error
}
