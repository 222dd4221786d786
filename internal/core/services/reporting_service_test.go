package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/core/services"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByIBAN(ctx context.Context, iban string) (*domain.Account, error) {
	args := m.Called(ctx, iban)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByClientID(ctx context.Context, clientID string) ([]domain.Account, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccountByIBAN(ctx context.Context, iban string) error {
	args := m.Called(ctx, iban)
	return args.Error(0)
}

// --- Mock ClientRepository ---

type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepository = (*MockClientRepository)(nil)

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByNationalIDOrEmail(ctx context.Context, nationalID, email string) (*domain.Client, error) {
	args := m.Called(ctx, nationalID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) DeleteClientCascade(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// --- Mock MovementReader ---

type MockMovementReader struct {
	mock.Mock
}

var _ portsrepo.MovementReader = (*MockMovementReader)(nil)

func (m *MockMovementReader) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementReader) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Movement), nil, args.Error(2)
}

func (m *MockMovementReader) FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

// --- Test Suite ---

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	accountRepo *MockAccountRepository
	clientRepo  *MockClientRepository
	movements   *MockMovementReader
	service     portssvc.ReportingSvcFacade

	client  domain.Client
	account domain.Account
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.accountRepo = new(MockAccountRepository)
	s.clientRepo = new(MockClientRepository)
	s.movements = new(MockMovementReader)
	s.service = services.NewReportingService(s.accountRepo, s.clientRepo, s.movements)

	s.client = domain.Client{
		ClientID:   uuid.NewString(),
		Name:       "Lucia Mora",
		NationalID: "1-1111-1111",
		Email:      "lucia@example.com",
	}
	s.account = domain.Account{
		AccountID:      uuid.NewString(),
		ClientID:       s.client.ClientID,
		IBAN:           "CR05015202001026284066",
		Currency:       "CRC",
		InitialBalance: decimal.RequireFromString("1000"),
		CurrentBalance: decimal.RequireFromString("451000"),
	}
}

func (s *ReportingServiceTestSuite) TestGetStatementAggregatesHistory() {
	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	history := []domain.Movement{
		{MovementID: uuid.NewString(), AccountID: s.account.AccountID, Operation: domain.Credit, Amount: decimal.RequireFromString("500000"), MovementDate: date},
		{MovementID: uuid.NewString(), AccountID: s.account.AccountID, Operation: domain.Debit, Amount: decimal.RequireFromString("50000"), MovementDate: date},
	}

	s.accountRepo.On("FindAccountByIBAN", s.ctx, s.account.IBAN).Return(&s.account, nil)
	s.clientRepo.On("FindClientByID", s.ctx, s.client.ClientID).Return(&s.client, nil)
	s.movements.On("FindMovementsByAccountID", s.ctx, s.account.AccountID).Return(history, nil)

	statement, err := s.service.GetStatement(s.ctx, s.account.IBAN)
	s.Require().NoError(err)

	s.True(statement.OpeningBalance.Equal(decimal.RequireFromString("1000")))
	s.True(statement.TotalCredits.Equal(decimal.RequireFromString("500000")))
	s.True(statement.TotalDebits.Equal(decimal.RequireFromString("50000")))
	s.True(statement.ClosingBalance.Equal(decimal.RequireFromString("451000")))
	s.True(statement.ClosingBalance.Equal(s.account.CurrentBalance), "statement must reconcile with the stored balance")
	s.Len(statement.Movements, 2)
	s.Equal(s.client.Name, statement.Client.Name)
}

func (s *ReportingServiceTestSuite) TestGetStatementEmptyHistory() {
	account := s.account
	account.CurrentBalance = account.InitialBalance

	s.accountRepo.On("FindAccountByIBAN", s.ctx, account.IBAN).Return(&account, nil)
	s.clientRepo.On("FindClientByID", s.ctx, s.client.ClientID).Return(&s.client, nil)
	s.movements.On("FindMovementsByAccountID", s.ctx, account.AccountID).Return([]domain.Movement{}, nil)

	statement, err := s.service.GetStatement(s.ctx, account.IBAN)
	s.Require().NoError(err)
	s.True(statement.TotalCredits.IsZero())
	s.True(statement.TotalDebits.IsZero())
	s.True(statement.ClosingBalance.Equal(account.InitialBalance))
}

func (s *ReportingServiceTestSuite) TestGetStatementUnknownIBAN() {
	s.accountRepo.On("FindAccountByIBAN", s.ctx, "CR00-missing").Return(nil, apperrors.ErrNotFound)

	_, err := s.service.GetStatement(s.ctx, "CR00-missing")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
