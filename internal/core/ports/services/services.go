package services

import (
	"context"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
	"github.com/bankpro/bankpro_backend/internal/dto"
)

// LedgerSvcFacade defines the operations of the movement ledger: every
// mutation keeps the owning account's balance consistent with its history.
type LedgerSvcFacade interface {
	// CreateMovement registers a movement against the account identified by
	// IBAN and returns the stored movement.
	CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*domain.Movement, error)
	// EditMovement replaces a movement's data, reversing the original effect
	// on the account balance before applying the new one.
	EditMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error)
	// DeleteMovement removes a movement and reverses its effect on the balance.
	DeleteMovement(ctx context.Context, movementID string) error
	// GetMovement returns a single movement by ID.
	GetMovement(ctx context.Context, movementID string) (*domain.Movement, error)
	// ListMovements returns a page of an account's movements, newest first.
	ListMovements(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error)
	// PeekNextDocumentNumber returns the advisory next consecutive for a
	// document type without reserving it.
	PeekNextDocumentNumber(ctx context.Context, documentTypeID string) (int64, error)
}

// CatalogSvcFacade manages the reference data movements point at: document
// types, zones and concepts.
type CatalogSvcFacade interface {
	CreateDocumentType(ctx context.Context, req dto.CreateDocumentTypeRequest) (*domain.DocumentType, error)
	ListDocumentTypes(ctx context.Context) ([]domain.DocumentType, error)
	DeleteDocumentType(ctx context.Context, documentTypeID string) error

	CreateZone(ctx context.Context, req dto.CreateZoneRequest) (*domain.Zone, error)
	BulkImportZones(ctx context.Context, req dto.BulkZonesRequest) (int64, error)
	ListZones(ctx context.Context) ([]domain.Zone, error)
	DeleteZone(ctx context.Context, zoneID string) error

	CreateConcept(ctx context.Context, req dto.CreateConceptRequest) (*domain.Concept, error)
	BulkImportConcepts(ctx context.Context, req dto.BulkImportConceptsRequest) (int64, error)
	ListConcepts(ctx context.Context, zoneID *string) ([]domain.Concept, error)
	DeleteConcept(ctx context.Context, conceptID string) error

	// GetMovementConfig returns document types and zones in one call.
	GetMovementConfig(ctx context.Context) ([]domain.DocumentType, []domain.Zone, error)
}

// ClientSvcFacade manages clients and their cascade deletion.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
}

// AccountSvcFacade manages accounts under a client.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error)
	ListAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error)
	DeleteAccountByIBAN(ctx context.Context, iban string) error
}

// ReportingSvcFacade produces derived read models over the ledger.
type ReportingSvcFacade interface {
	// GetStatement aggregates an account's full history into a statement and
	// verifies the stored balance against the recomputed one.
	GetStatement(ctx context.Context, iban string) (*domain.Statement, error)
}

// UserSvcFacade manages back-office users.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// AuthSvcFacade authenticates users and drives the password recovery flow.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	// ValidateToken parses a JWT and returns the user ID and role claims.
	ValidateToken(tokenString string) (string, string, error)
}
