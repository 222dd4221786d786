package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
	"github.com/bankpro/bankpro_backend/internal/middleware"
	"github.com/bankpro/bankpro_backend/internal/utils/accounting"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ledgerService implements the movement mutation engine. Every mutation runs
// in a single transaction that locks the owning account row, so the invariant
// current_balance = initial_balance + credits - debits holds after commit.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validateMovementData checks the fields shared by create and edit requests.
func validateMovementData(operation string, amount decimal.Decimal, movementDate, accountingDate time.Time) (domain.OperationType, error) {
	op := domain.OperationType(operation)
	if !op.IsValid() {
		return "", fmt.Errorf("%w: operation must be CREDIT or DEBIT", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if accountingDate.Before(movementDate) {
		return "", fmt.Errorf("%w: accounting date cannot precede movement date", apperrors.ErrValidation)
	}
	return op, nil
}

// advanceConsecutiveIfNumeric bumps the document type's consecutive when the
// document number is a plain integer greater than the stored value.
// Non-numeric document numbers are valid and never move the sequence.
func advanceConsecutiveIfNumeric(ctx context.Context, tx portsrepo.LedgerTx, documentTypeID, documentNumber string) error {
	candidate, err := strconv.ParseInt(documentNumber, 10, 64)
	if err != nil {
		return nil
	}
	return tx.AdvanceConsecutive(ctx, documentTypeID, candidate)
}

// CreateMovement registers a movement against the account identified by IBAN.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	op, err := validateMovementData(req.Operation, req.Amount, req.MovementDate, req.AccountingDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movement := domain.Movement{
		MovementID:     uuid.NewString(),
		DocumentTypeID: req.DocumentTypeID,
		ConceptID:      req.ConceptID,
		DocumentNumber: req.DocumentNumber,
		Operation:      op,
		Amount:         req.Amount,
		MovementDate:   req.MovementDate,
		AccountingDate: req.AccountingDate,
		CardReference:  req.CardReference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	err = s.ledgerRepo.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		if _, err := tx.FindDocumentTypeByID(ctx, req.DocumentTypeID); err != nil {
			return err
		}

		exists, err := tx.DocumentNumberExists(ctx, req.DocumentTypeID, req.DocumentNumber, "")
		if err != nil {
			return fmt.Errorf("failed to check document number uniqueness: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: document number %s already registered for this document type", apperrors.ErrDuplicateDocument, req.DocumentNumber)
		}

		account, err := tx.FindAccountByIBANForUpdate(ctx, req.IBAN)
		if err != nil {
			return err
		}
		movement.AccountID = account.AccountID

		projected := accounting.Apply(account.CurrentBalance, op, req.Amount)
		if projected.IsNegative() {
			return fmt.Errorf("%w: balance would become %s", apperrors.ErrInsufficientFunds, projected.String())
		}

		if err := tx.InsertMovement(ctx, movement); err != nil {
			return fmt.Errorf("failed to insert movement: %w", err)
		}
		if err := tx.UpdateAccountBalance(ctx, account.AccountID, projected, now); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}

		return advanceConsecutiveIfNumeric(ctx, tx, req.DocumentTypeID, req.DocumentNumber)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Movement created",
		slog.String("movement_id", movement.MovementID),
		slog.String("account_id", movement.AccountID),
		slog.String("operation", string(movement.Operation)),
	)
	return &movement, nil
}

// EditMovement replaces a movement's data. The original effect on the account
// balance is reversed before the new effect is applied, both inside the same
// transaction that holds the account row lock.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) EditMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	op, err := validateMovementData(req.Operation, req.Amount, req.MovementDate, req.AccountingDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var updated domain.Movement

	err = s.ledgerRepo.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		original, err := tx.FindMovementByID(ctx, movementID)
		if err != nil {
			return err
		}

		account, err := tx.FindAccountByIDForUpdate(ctx, original.AccountID)
		if err != nil {
			return err
		}

		if _, err := tx.FindDocumentTypeByID(ctx, req.DocumentTypeID); err != nil {
			return err
		}

		// Only re-check uniqueness when the (type, number) pair changed,
		// excluding the movement itself.
		if req.DocumentTypeID != original.DocumentTypeID || req.DocumentNumber != original.DocumentNumber {
			exists, err := tx.DocumentNumberExists(ctx, req.DocumentTypeID, req.DocumentNumber, movementID)
			if err != nil {
				return fmt.Errorf("failed to check document number uniqueness: %w", err)
			}
			if exists {
				return fmt.Errorf("%w: document number %s already registered for this document type", apperrors.ErrDuplicateDocument, req.DocumentNumber)
			}
		}

		reversed := accounting.Reverse(account.CurrentBalance, original.Operation, original.Amount)
		projected := accounting.Apply(reversed, op, req.Amount)
		if projected.IsNegative() {
			return fmt.Errorf("%w: balance would become %s", apperrors.ErrInsufficientFunds, projected.String())
		}

		updated = domain.Movement{
			MovementID:     original.MovementID,
			AccountID:      original.AccountID,
			DocumentTypeID: req.DocumentTypeID,
			ConceptID:      req.ConceptID,
			DocumentNumber: req.DocumentNumber,
			Operation:      op,
			Amount:         req.Amount,
			MovementDate:   req.MovementDate,
			AccountingDate: req.AccountingDate,
			CardReference:  req.CardReference,
			AuditFields: domain.AuditFields{
				CreatedAt:     original.CreatedAt,
				LastUpdatedAt: now,
			},
		}

		if err := tx.UpdateMovement(ctx, updated); err != nil {
			return fmt.Errorf("failed to update movement: %w", err)
		}
		if err := tx.UpdateAccountBalance(ctx, account.AccountID, projected, now); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}

		return advanceConsecutiveIfNumeric(ctx, tx, req.DocumentTypeID, req.DocumentNumber)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Movement updated", slog.String("movement_id", movementID))
	return &updated, nil
}

// DeleteMovement removes a movement and reverses its effect on the owning
// account's balance. A deletion that would leave the balance negative is
// refused.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) DeleteMovement(ctx context.Context, movementID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	err := s.ledgerRepo.WithTx(ctx, func(tx portsrepo.LedgerTx) error {
		movement, err := tx.FindMovementByID(ctx, movementID)
		if err != nil {
			return err
		}

		account, err := tx.FindAccountByIDForUpdate(ctx, movement.AccountID)
		if err != nil {
			return err
		}

		projected := accounting.Reverse(account.CurrentBalance, movement.Operation, movement.Amount)
		if projected.IsNegative() {
			return fmt.Errorf("%w: balance would become %s", apperrors.ErrInsufficientFunds, projected.String())
		}

		if err := tx.DeleteMovement(ctx, movementID); err != nil {
			return fmt.Errorf("failed to delete movement: %w", err)
		}
		return tx.UpdateAccountBalance(ctx, account.AccountID, projected, now)
	})
	if err != nil {
		return err
	}

	logger.Info("Movement deleted", slog.String("movement_id", movementID))
	return nil
}

// GetMovement returns a single movement by ID.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) GetMovement(ctx context.Context, movementID string) (*domain.Movement, error) {
	return s.ledgerRepo.FindMovementByID(ctx, movementID)
}

// ListMovements returns a page of an account's movements, newest first.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ListMovements(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	movements, token, err := s.ledgerRepo.ListMovementsByAccountID(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list movements: %w", err)
	}
	if movements == nil {
		movements = []domain.Movement{}
	}
	return movements, token, nil
}

// PeekNextDocumentNumber returns the advisory next consecutive for a document
// type. It reserves nothing; two callers may see the same value.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) PeekNextDocumentNumber(ctx context.Context, documentTypeID string) (int64, error) {
	docType, err := s.ledgerRepo.FindDocumentTypeByID(ctx, documentTypeID)
	if err != nil {
		return 0, err
	}
	return docType.CurrentConsecutive + 1, nil
}
