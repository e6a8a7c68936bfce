// Package users stores credential and profile records.
package users

import (
	"context"
	"time"

	"github.com/proyection/proyection-api/internal/server/models"
)

// Repository is the persistence contract for user records. Lookups return
// common.ErrNotFound when no document matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail loads a user by lowercased email, including the password
	// hash. Only the login path should call this.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdateLastLogin stamps the last successful login. Last write wins for
	// concurrent logins on the same account.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	SetActive(ctx context.Context, id string, active bool) error

	// UpsertByEmail replaces or inserts a user keyed by email. Used by
	// seeding.
	UpsertByEmail(ctx context.Context, user *models.User) error
}
