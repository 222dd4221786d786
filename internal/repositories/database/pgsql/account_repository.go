package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (
			account_id, client_id, iban, account_number, account_type, currency,
			initial_balance, current_balance, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.ClientID,
		account.IBAN,
		account.AccountNumber,
		account.AccountType,
		account.Currency,
		account.InitialBalance,
		account.CurrentBalance,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

func (r *PgxAccountRepository) FindAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE iban = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, iban))
}

func (r *PgxAccountRepository) ListAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts for client "+clientID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return accounts, nil
}

// DeleteAccountByIBAN removes an account and its movements in one
// transaction. The movement delete goes first so the account FK never trips.
func (r *PgxAccountRepository) DeleteAccountByIBAN(ctx context.Context, iban string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM movements
		WHERE account_id IN (SELECT account_id FROM accounts WHERE iban = $1);
	`, iban); err != nil {
		return apperrors.NewAppError(500, "failed to delete movements for account "+iban, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE iban = $1;`, iban)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account "+iban, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
