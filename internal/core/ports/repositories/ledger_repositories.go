package repositories

import (
	"context"
	"time"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of storage operations available inside a single ledger
// transaction. Implementations guarantee that every call on one LedgerTx
// commits or rolls back together; the account row returned by the ForUpdate
// finders stays locked until the transaction ends, which serializes concurrent
// balance mutations against the same account.
type LedgerTx interface {
	// FindMovementByID retrieves a movement inside the transaction.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// FindAccountByIBANForUpdate retrieves an account by IBAN and locks its row.
	FindAccountByIBANForUpdate(ctx context.Context, iban string) (*domain.Account, error)

	// FindAccountByIDForUpdate retrieves an account by ID and locks its row.
	FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error)

	// DocumentNumberExists reports whether another movement already uses the
	// (documentTypeID, documentNumber) pair. excludeMovementID is skipped so an
	// edit does not collide with itself; pass "" on create.
	DocumentNumberExists(ctx context.Context, documentTypeID, documentNumber, excludeMovementID string) (bool, error)

	// InsertMovement persists a new movement row.
	InsertMovement(ctx context.Context, movement domain.Movement) error

	// UpdateMovement persists all mutable fields of an existing movement.
	UpdateMovement(ctx context.Context, movement domain.Movement) error

	// DeleteMovement removes a movement row.
	DeleteMovement(ctx context.Context, movementID string) error

	// UpdateAccountBalance persists a recomputed materialized balance.
	UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error

	// FindDocumentTypeByID retrieves a document type inside the transaction.
	FindDocumentTypeByID(ctx context.Context, documentTypeID string) (*domain.DocumentType, error)

	// AdvanceConsecutive sets the document type's consecutive to candidate if
	// candidate is greater than the stored value. Idempotent.
	AdvanceConsecutive(ctx context.Context, documentTypeID string, candidate int64) error
}

// MovementReader defines the non-transactional read side of the ledger.
type MovementReader interface {
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovementsByAccountID retrieves a page of movements for an account,
	// newest movement date first, using token-based pagination.
	ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error)

	// FindMovementsByAccountID retrieves the complete movement history of an
	// account ordered by movement date ascending. Used by statements.
	FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error)
}

// LedgerRepository is the transactional persistence gateway the ledger depends
// on. The ledger never talks to storage directly, so any engine (or an
// in-memory fake in tests) can stand behind this interface.
type LedgerRepository interface {
	MovementReader

	// FindDocumentTypeByID retrieves a document type outside any transaction.
	FindDocumentTypeByID(ctx context.Context, documentTypeID string) (*domain.DocumentType, error)

	// WithTx runs fn inside a single storage transaction. If fn returns an
	// error the transaction rolls back with no partial state visible;
	// otherwise it commits.
	WithTx(ctx context.Context, fn func(tx LedgerTx) error) error
}
