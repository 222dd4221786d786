package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/middleware"
	"github.com/bankpro/bankpro_backend/internal/utils/accounting"
)

// reportingService produces derived read models over the ledger.
type reportingService struct {
	accountRepo    portsrepo.AccountRepository
	clientRepo     portsrepo.ClientRepository
	movementReader portsrepo.MovementReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(accountRepo portsrepo.AccountRepository, clientRepo portsrepo.ClientRepository, movementReader portsrepo.MovementReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo:    accountRepo,
		clientRepo:     clientRepo,
		movementReader: movementReader,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetStatement aggregates an account's full movement history into a
// statement. The closing balance is recomputed from the history; a mismatch
// with the stored balance means the ledger lost its invariant and is logged
// loudly rather than papered over.
func (s *reportingService) GetStatement(ctx context.Context, iban string) (*domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByIBAN(ctx, iban)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, account.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account owner: %w", err)
	}

	movements, err := s.movementReader.FindMovementsByAccountID(ctx, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movement history: %w", err)
	}

	totalCredits, totalDebits, closingBalance := accounting.Summarize(account.InitialBalance, movements)

	// History loads oldest first for aggregation; statements read newest first.
	for i, j := 0, len(movements)-1; i < j; i, j = i+1, j-1 {
		movements[i], movements[j] = movements[j], movements[i]
	}

	if !closingBalance.Equal(account.CurrentBalance) {
		logger.Error("Statement balance mismatch",
			slog.String("account_id", account.AccountID),
			slog.String("stored_balance", account.CurrentBalance.String()),
			slog.String("computed_balance", closingBalance.String()),
		)
	}

	return &domain.Statement{
		Account:        *account,
		Client:         *client,
		OpeningBalance: account.InitialBalance,
		TotalCredits:   totalCredits,
		TotalDebits:    totalDebits,
		ClosingBalance: closingBalance,
		Movements:      movements,
	}, nil
}
