package repositories

import (
	"context"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
)

// AccountRepository defines storage operations for accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate when
	// the IBAN is already registered.
	SaveAccount(ctx context.Context, account domain.Account) error

	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error)

	// ListAccountsByClientID retrieves all accounts owned by a client.
	ListAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error)

	// DeleteAccountByIBAN deletes an account and all of its movements in one
	// transaction. The cascade is explicit, not delegated to the schema.
	DeleteAccountByIBAN(ctx context.Context, iban string) error
}
