package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
	"github.com/bankpro/bankpro_backend/internal/middleware"
)

// clientService manages clients and their cascade deletion.
type clientService struct {
	clientRepo portsrepo.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo portsrepo.ClientRepository) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo}
}

// Ensure clientService implements the portssvc.ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient registers a client. National ID and email must both be unique.
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	existing, err := s.clientRepo.FindClientByNationalIDOrEmail(ctx, req.NationalID, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check client uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a client with that national ID or email already exists", apperrors.ErrDuplicate)
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:   uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		NationalID: strings.TrimSpace(req.NationalID),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:      strings.TrimSpace(req.Phone),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

func (s *clientService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clientRepo.FindClientByID(ctx, clientID)
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

// DeleteClient removes a client together with all of its accounts and their
// movements in one transaction.
func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.clientRepo.DeleteClientCascade(ctx, clientID); err != nil {
		return err
	}

	logger.Info("Client deleted with all accounts and movements", slog.String("client_id", clientID))
	return nil
}
