package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	"github.com/bankpro/bankpro_backend/internal/utils/pagination"
)

// PgxLedgerRepository persists movements and the balance bookkeeping around
// them. All mutations go through WithTx so the service layer controls the
// transaction boundary.
type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for movement and ledger data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// WithTx starts a transaction, hands a LedgerTx bound to it to fn, and
// commits when fn returns nil. Any error rolls the whole transaction back.
func (r *PgxLedgerRepository) WithTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := fn(&pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxLedgerRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	return findMovementByID(ctx, r.Pool, movementID)
}

func (r *PgxLedgerRepository) FindDocumentTypeByID(ctx context.Context, documentTypeID string) (*domain.DocumentType, error) {
	return findDocumentTypeByID(ctx, r.Pool, documentTypeID)
}

const movementColumns = `movement_id, account_id, document_type_id, concept_id, document_number,
	       operation, amount, movement_date, accounting_date, card_reference,
	       created_at, last_updated_at`

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var m domain.Movement
	err := row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.DocumentTypeID,
		&m.ConceptID,
		&m.DocumentNumber,
		&m.Operation,
		&m.Amount,
		&m.MovementDate,
		&m.AccountingDate,
		&m.CardReference,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan movement", err)
	}
	return &m, nil
}

func findMovementByID(ctx context.Context, q querier, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`
	return scanMovement(q.QueryRow(ctx, query, movementID))
}

func findDocumentTypeByID(ctx context.Context, q querier, documentTypeID string) (*domain.DocumentType, error) {
	query := `
		SELECT document_type_id, code, description, current_consecutive, created_at, last_updated_at
		FROM document_types
		WHERE document_type_id = $1;
	`
	var dt domain.DocumentType
	err := q.QueryRow(ctx, query, documentTypeID).Scan(
		&dt.DocumentTypeID,
		&dt.Code,
		&dt.Description,
		&dt.CurrentConsecutive,
		&dt.CreatedAt,
		&dt.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document type "+documentTypeID, err)
	}
	return &dt, nil
}

// ListMovementsByAccountID returns a page of movements ordered by movement
// date then creation time, newest first, with keyset pagination.
func (r *PgxLedgerRepository) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1`
	args := []any{accountID}

	if nextToken != nil && *nextToken != "" {
		movementDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (movement_date, created_at) < ($2, $3)`
		args = append(args, movementDate, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	query += ` ORDER BY movement_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list movements for account "+accountID, err)
	}
	defer rows.Close()

	movements, err := collectMovements(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		t := pagination.EncodeToken(last.MovementDate, last.CreatedAt)
		token = &t
	}
	return movements, token, nil
}

// FindMovementsByAccountID returns the complete history of an account,
// oldest first, for statement aggregation.
func (r *PgxLedgerRepository) FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1
		ORDER BY movement_date ASC, created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load movement history for account "+accountID, err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	var movements []domain.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read movement rows", err)
	}
	return movements, nil
}

// --- Transaction-bound implementation ---

// pgxLedgerTx implements portsrepo.LedgerTx over an open pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	return findMovementByID(ctx, t.tx, movementID)
}

func (t *pgxLedgerTx) FindDocumentTypeByID(ctx context.Context, documentTypeID string) (*domain.DocumentType, error) {
	return findDocumentTypeByID(ctx, t.tx, documentTypeID)
}

const accountColumns = `account_id, client_id, iban, account_number, account_type, currency,
	       initial_balance, current_balance, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.AccountID,
		&a.ClientID,
		&a.IBAN,
		&a.AccountNumber,
		&a.AccountType,
		&a.Currency,
		&a.InitialBalance,
		&a.CurrentBalance,
		&a.CreatedAt,
		&a.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account", err)
	}
	return &a, nil
}

// FindAccountByIBANForUpdate locks the account row until the transaction ends.
func (t *pgxLedgerTx) FindAccountByIBANForUpdate(ctx context.Context, iban string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE iban = $1 FOR UPDATE;`
	return scanAccount(t.tx.QueryRow(ctx, query, iban))
}

// FindAccountByIDForUpdate locks the account row until the transaction ends.
func (t *pgxLedgerTx) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return scanAccount(t.tx.QueryRow(ctx, query, accountID))
}

// DocumentNumberExists reports whether another movement already carries the
// (document type, document number) pair. excludeMovementID may be empty.
func (t *pgxLedgerTx) DocumentNumberExists(ctx context.Context, documentTypeID, documentNumber, excludeMovementID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM movements
			WHERE document_type_id = $1 AND document_number = $2 AND movement_id <> $3
		);
	`
	var exists bool
	if err := t.tx.QueryRow(ctx, query, documentTypeID, documentNumber, excludeMovementID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check document number", err)
	}
	return exists, nil
}

func (t *pgxLedgerTx) InsertMovement(ctx context.Context, movement domain.Movement) error {
	query := `
		INSERT INTO movements (
			movement_id, account_id, document_type_id, concept_id, document_number,
			operation, amount, movement_date, accounting_date, card_reference,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := t.tx.Exec(ctx, query,
		movement.MovementID,
		movement.AccountID,
		movement.DocumentTypeID,
		movement.ConceptID,
		movement.DocumentNumber,
		movement.Operation,
		movement.Amount,
		movement.MovementDate,
		movement.AccountingDate,
		movement.CardReference,
		movement.CreatedAt,
		movement.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (t *pgxLedgerTx) UpdateMovement(ctx context.Context, movement domain.Movement) error {
	query := `
		UPDATE movements SET
			document_type_id = $2,
			concept_id = $3,
			document_number = $4,
			operation = $5,
			amount = $6,
			movement_date = $7,
			accounting_date = $8,
			card_reference = $9,
			last_updated_at = $10
		WHERE movement_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query,
		movement.MovementID,
		movement.DocumentTypeID,
		movement.ConceptID,
		movement.DocumentNumber,
		movement.Operation,
		movement.Amount,
		movement.MovementDate,
		movement.AccountingDate,
		movement.CardReference,
		movement.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (t *pgxLedgerTx) DeleteMovement(ctx context.Context, movementID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete movement "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (t *pgxLedgerTx) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	query := `UPDATE accounts SET current_balance = $2, last_updated_at = $3 WHERE account_id = $1;`
	tag, err := t.tx.Exec(ctx, query, accountID, balance, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdvanceConsecutive raises the document type's sequence to candidate. The
// guard in the WHERE clause makes the advance monotonic.
func (t *pgxLedgerTx) AdvanceConsecutive(ctx context.Context, documentTypeID string, candidate int64) error {
	query := `
		UPDATE document_types
		SET current_consecutive = $2, last_updated_at = now()
		WHERE document_type_id = $1 AND current_consecutive < $2;
	`
	if _, err := t.tx.Exec(ctx, query, documentTypeID, candidate); err != nil {
		return apperrors.NewAppError(500, "failed to advance consecutive for document type "+documentTypeID, err)
	}
	return nil
}
