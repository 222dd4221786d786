package repositories

import (
	"context"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
)

// ClientRepository defines storage operations for clients.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error

	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClientByNationalIDOrEmail retrieves a client matching either unique
	// field. Returns apperrors.ErrNotFound when neither matches.
	FindClientByNationalIDOrEmail(ctx context.Context, nationalID, email string) (*domain.Client, error)

	// ListClients retrieves all clients with their accounts populated, newest
	// client first.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// DeleteClientCascade deletes the client, its accounts and their movements
	// inside a single transaction.
	DeleteClientCascade(ctx context.Context, clientID string) error
}
