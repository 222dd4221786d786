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

const (
	defaultAccountType = "CHECKING"
	defaultCurrency    = "CRC"
)

// accountService manages accounts under a client.
type accountService struct {
	accountRepo portsrepo.AccountRepository
	clientRepo  portsrepo.ClientRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository, clientRepo portsrepo.ClientRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens an account for an existing client. The current balance
// starts equal to the initial balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrValidation)
	}

	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByIBAN(ctx, req.IBAN)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check IBAN uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: an account with that IBAN already exists", apperrors.ErrDuplicate)
	}

	accountType := strings.TrimSpace(req.AccountType)
	if accountType == "" {
		accountType = defaultAccountType
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		ClientID:       req.ClientID,
		IBAN:           strings.TrimSpace(req.IBAN),
		AccountNumber:  strings.TrimSpace(req.AccountNumber),
		AccountType:    accountType,
		Currency:       currency,
		InitialBalance: req.InitialBalance,
		CurrentBalance: req.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

func (s *accountService) GetAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByIBAN(ctx, iban)
}

func (s *accountService) ListAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// DeleteAccountByIBAN removes an account and its movement history.
func (s *accountService) DeleteAccountByIBAN(ctx context.Context, iban string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccountByIBAN(ctx, iban); err != nil {
		return err
	}

	logger.Info("Account deleted with its movements", slog.String("iban", iban))
	return nil
}
