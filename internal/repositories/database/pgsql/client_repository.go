package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
)

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepository
var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

const clientColumns = `client_id, name, national_id, email, phone, created_at, last_updated_at`

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.Name,
		&c.NationalID,
		&c.Email,
		&c.Phone,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan client", err)
	}
	return &c, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (client_id, name, national_id, email, phone, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.NationalID,
		client.Email,
		client.Phone,
		client.CreatedAt,
		client.LastUpdatedAt,
	)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	client, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		return nil, err
	}

	accounts, err := r.loadAccounts(ctx, []string{client.ClientID})
	if err != nil {
		return nil, err
	}
	client.Accounts = accounts[client.ClientID]
	return client, nil
}

func (r *PgxClientRepository) FindClientByNationalIDOrEmail(ctx context.Context, nationalID, email string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE national_id = $1 OR email = $2 LIMIT 1;`
	return scanClient(r.Pool.QueryRow(ctx, query, nationalID, email))
}

// ListClients returns all clients newest first, each with its accounts.
func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list clients", err)
	}
	defer rows.Close()

	var clients []domain.Client
	var clientIDs []string
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
		clientIDs = append(clientIDs, c.ClientID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read client rows", err)
	}
	if len(clients) == 0 {
		return clients, nil
	}

	accountsByClient, err := r.loadAccounts(ctx, clientIDs)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].Accounts = accountsByClient[clients[i].ClientID]
	}
	return clients, nil
}

func (r *PgxClientRepository) loadAccounts(ctx context.Context, clientIDs []string) (map[string][]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE client_id = ANY($1) ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, clientIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load client accounts", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Account)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result[a.ClientID] = append(result[a.ClientID], *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account rows", err)
	}
	return result, nil
}

// DeleteClientCascade removes a client, all of its accounts and every
// movement under them in a single transaction.
func (r *PgxClientRepository) DeleteClientCascade(ctx context.Context, clientID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM movements
		WHERE account_id IN (SELECT account_id FROM accounts WHERE client_id = $1);
	`, clientID); err != nil {
		return apperrors.NewAppError(500, "failed to delete movements for client "+clientID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE client_id = $1;`, clientID); err != nil {
		return apperrors.NewAppError(500, "failed to delete accounts for client "+clientID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete client "+clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
