// Package bankaccounts stores user-owned bank account documents with
// logical deletion.
package bankaccounts

import (
	"context"

	"github.com/proyection/proyection-api/internal/server/models"
)

// Repository is the persistence contract for bank accounts. All operations
// are scoped to the owning user; lookups that match nothing return
// common.ErrNotFound. Soft-deleted documents are excluded everywhere except
// Restore.
type Repository interface {
	Create(ctx context.Context, account *models.BankAccount) (*models.BankAccount, error)

	ListByUser(ctx context.Context, userID string) ([]models.BankAccount, error)

	GetByID(ctx context.Context, id, userID string) (*models.BankAccount, error)

	Update(ctx context.Context, account *models.BankAccount) error

	SetActive(ctx context.Context, id, userID string, active bool) error

	// SoftDelete flips the deleted flag and stamps deleted_at; the document
	// stays for restore/audit.
	SoftDelete(ctx context.Context, id, userID string) error

	// Restore reverses a soft delete.
	Restore(ctx context.Context, id, userID string) error
}
