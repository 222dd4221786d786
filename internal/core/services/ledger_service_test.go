package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/bankpro/bankpro_backend/internal/apperrors"
	"github.com/bankpro/bankpro_backend/internal/core/domain"
	portsrepo "github.com/bankpro/bankpro_backend/internal/core/ports/repositories"
	portssvc "github.com/bankpro/bankpro_backend/internal/core/ports/services"
	"github.com/bankpro/bankpro_backend/internal/core/services"
	"github.com/bankpro/bankpro_backend/internal/dto"
)

// --- In-memory LedgerRepository ---
//
// A stateful fake backs these tests instead of a call-expectation mock: the
// interesting assertions are about the state after a sequence of mutations,
// and WithTx must roll everything back when the callback fails.

type fakeLedgerRepo struct {
	accounts  map[string]*domain.Account // keyed by account ID
	ibanIndex map[string]string          // IBAN -> account ID
	movements map[string]*domain.Movement
	docTypes  map[string]*domain.DocumentType
}

var _ portsrepo.LedgerRepository = (*fakeLedgerRepo)(nil)
var _ portsrepo.LedgerTx = (*fakeLedgerRepo)(nil)

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		accounts:  make(map[string]*domain.Account),
		ibanIndex: make(map[string]string),
		movements: make(map[string]*domain.Movement),
		docTypes:  make(map[string]*domain.DocumentType),
	}
}

func (f *fakeLedgerRepo) snapshot() *fakeLedgerRepo {
	clone := newFakeLedgerRepo()
	for id, a := range f.accounts {
		c := *a
		clone.accounts[id] = &c
	}
	for iban, id := range f.ibanIndex {
		clone.ibanIndex[iban] = id
	}
	for id, m := range f.movements {
		c := *m
		clone.movements[id] = &c
	}
	for id, dt := range f.docTypes {
		c := *dt
		clone.docTypes[id] = &c
	}
	return clone
}

func (f *fakeLedgerRepo) restore(snap *fakeLedgerRepo) {
	f.accounts = snap.accounts
	f.ibanIndex = snap.ibanIndex
	f.movements = snap.movements
	f.docTypes = snap.docTypes
}

// WithTx runs fn against the fake itself and restores the snapshot when fn
// fails, mirroring a rolled back transaction.
func (f *fakeLedgerRepo) WithTx(ctx context.Context, fn func(tx portsrepo.LedgerTx) error) error {
	snap := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeLedgerRepo) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	m, ok := f.movements[movementID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (f *fakeLedgerRepo) FindAccountByIBANForUpdate(ctx context.Context, iban string) (*domain.Account, error) {
	id, ok := f.ibanIndex[iban]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := *f.accounts[id]
	return &c, nil
}

func (f *fakeLedgerRepo) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeLedgerRepo) DocumentNumberExists(ctx context.Context, documentTypeID, documentNumber, excludeMovementID string) (bool, error) {
	for _, m := range f.movements {
		if m.MovementID == excludeMovementID {
			continue
		}
		if m.DocumentTypeID == documentTypeID && m.DocumentNumber == documentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedgerRepo) InsertMovement(ctx context.Context, movement domain.Movement) error {
	c := movement
	f.movements[movement.MovementID] = &c
	return nil
}

func (f *fakeLedgerRepo) UpdateMovement(ctx context.Context, movement domain.Movement) error {
	if _, ok := f.movements[movement.MovementID]; !ok {
		return apperrors.ErrNotFound
	}
	c := movement
	f.movements[movement.MovementID] = &c
	return nil
}

func (f *fakeLedgerRepo) DeleteMovement(ctx context.Context, movementID string) error {
	if _, ok := f.movements[movementID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.movements, movementID)
	return nil
}

func (f *fakeLedgerRepo) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	a, ok := f.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.CurrentBalance = balance
	a.LastUpdatedAt = now
	return nil
}

func (f *fakeLedgerRepo) FindDocumentTypeByID(ctx context.Context, documentTypeID string) (*domain.DocumentType, error) {
	dt, ok := f.docTypes[documentTypeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := *dt
	return &c, nil
}

func (f *fakeLedgerRepo) AdvanceConsecutive(ctx context.Context, documentTypeID string, candidate int64) error {
	dt, ok := f.docTypes[documentTypeID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if candidate > dt.CurrentConsecutive {
		dt.CurrentConsecutive = candidate
	}
	return nil
}

func (f *fakeLedgerRepo) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	all, err := f.FindMovementsByAccountID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil, nil
}

func (f *fakeLedgerRepo) FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error) {
	var result []domain.Movement
	for _, m := range f.movements {
		if m.AccountID == accountID {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MovementDate.After(result[j].MovementDate)
	})
	return result, nil
}

// --- Test Suite ---

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *fakeLedgerRepo
	service portssvc.LedgerSvcFacade

	account   domain.Account
	depTypeID string
	retTypeID string
	conceptID string
	baseDate  time.Time
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = newFakeLedgerRepo()
	s.service = services.NewLedgerService(s.repo)

	s.baseDate = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	s.conceptID = uuid.NewString()

	s.depTypeID = uuid.NewString()
	s.repo.docTypes[s.depTypeID] = &domain.DocumentType{
		DocumentTypeID:     s.depTypeID,
		Code:               "DEP",
		Description:        "Deposit",
		CurrentConsecutive: 1004,
	}
	s.retTypeID = uuid.NewString()
	s.repo.docTypes[s.retTypeID] = &domain.DocumentType{
		DocumentTypeID:     s.retTypeID,
		Code:               "RET",
		Description:        "Withdrawal",
		CurrentConsecutive: 0,
	}

	s.account = domain.Account{
		AccountID:      uuid.NewString(),
		ClientID:       uuid.NewString(),
		IBAN:           "CR05015202001026284066",
		AccountNumber:  "100-02-028-000123-4",
		AccountType:    "CHECKING",
		Currency:       "CRC",
		InitialBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
	}
	acct := s.account
	s.repo.accounts[acct.AccountID] = &acct
	s.repo.ibanIndex[acct.IBAN] = acct.AccountID
}

// requireBalanceInvariant recomputes the balance from the stored history and
// compares it to the account's current balance.
func (s *LedgerServiceTestSuite) requireBalanceInvariant() {
	acct := s.repo.accounts[s.account.AccountID]
	expected := acct.InitialBalance
	for _, m := range s.repo.movements {
		if m.AccountID != acct.AccountID {
			continue
		}
		if m.Operation == domain.Debit {
			expected = expected.Sub(m.Amount)
		} else {
			expected = expected.Add(m.Amount)
		}
	}
	s.Require().True(expected.Equal(acct.CurrentBalance),
		"balance invariant broken: history says %s, account says %s", expected, acct.CurrentBalance)
}

func (s *LedgerServiceTestSuite) createReq(op string, amount, docNumber string) dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		IBAN:           s.account.IBAN,
		DocumentTypeID: s.depTypeID,
		ConceptID:      s.conceptID,
		Operation:      op,
		Amount:         decimal.RequireFromString(amount),
		DocumentNumber: docNumber,
		MovementDate:   s.baseDate,
		AccountingDate: s.baseDate,
	}
}

func (s *LedgerServiceTestSuite) balance() decimal.Decimal {
	return s.repo.accounts[s.account.AccountID].CurrentBalance
}

func (s *LedgerServiceTestSuite) TestCreateCreditIncreasesBalance() {
	movement, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "450000", "1005"))
	s.Require().NoError(err)
	s.Require().NotNil(movement)
	s.Equal(s.account.AccountID, movement.AccountID)
	s.True(s.balance().Equal(decimal.RequireFromString("450000")))
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestCreateDebitRefusedWhenInsufficient() {
	_, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1005"))
	s.Require().NoError(err)

	// A debit past the balance is refused and leaves no trace.
	_, err = s.service.CreateMovement(s.ctx, s.createReq("DEBIT", "100.01", "1006"))
	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Len(s.repo.movements, 1)
	s.True(s.balance().Equal(decimal.RequireFromString("100")))
	s.requireBalanceInvariant()

	// Debiting the exact balance is allowed and lands on zero.
	_, err = s.service.CreateMovement(s.ctx, s.createReq("DEBIT", "100", "1006"))
	s.Require().NoError(err)
	s.True(s.balance().IsZero())
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestCreateDuplicateDocumentNumber() {
	_, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1005"))
	s.Require().NoError(err)

	_, err = s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "200", "1005"))
	s.Require().ErrorIs(err, apperrors.ErrDuplicateDocument)
	s.Len(s.repo.movements, 1)
	s.True(s.balance().Equal(decimal.RequireFromString("100")), "failed create must not move the balance")

	// The same number under a different document type is fine.
	req := s.createReq("CREDIT", "200", "1005")
	req.DocumentTypeID = s.retTypeID
	_, err = s.service.CreateMovement(s.ctx, req)
	s.Require().NoError(err)
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestCreateAdvancesConsecutiveOnlyForNumeric() {
	_, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1005"))
	s.Require().NoError(err)
	s.Equal(int64(1005), s.repo.docTypes[s.depTypeID].CurrentConsecutive)

	next, err := s.service.PeekNextDocumentNumber(s.ctx, s.depTypeID)
	s.Require().NoError(err)
	s.Equal(int64(1006), next)

	// Non-numeric document numbers never move the sequence.
	_, err = s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "AB-77"))
	s.Require().NoError(err)
	s.Equal(int64(1005), s.repo.docTypes[s.depTypeID].CurrentConsecutive)

	// A numeric number below the sequence does not move it backwards.
	_, err = s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "42"))
	s.Require().NoError(err)
	s.Equal(int64(1005), s.repo.docTypes[s.depTypeID].CurrentConsecutive)
}

func (s *LedgerServiceTestSuite) TestCreateValidation() {
	req := s.createReq("TRANSFER", "100", "1005")
	_, err := s.service.CreateMovement(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	req = s.createReq("CREDIT", "0", "1005")
	_, err = s.service.CreateMovement(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	req = s.createReq("CREDIT", "-5", "1005")
	_, err = s.service.CreateMovement(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	req = s.createReq("CREDIT", "100", "1005")
	req.AccountingDate = s.baseDate.AddDate(0, 0, -1)
	_, err = s.service.CreateMovement(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrValidation)

	s.Empty(s.repo.movements)
}

func (s *LedgerServiceTestSuite) TestCreateUnknownAccountOrDocumentType() {
	req := s.createReq("CREDIT", "100", "1005")
	req.IBAN = "CR000000000000000000"
	_, err := s.service.CreateMovement(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)

	req = s.createReq("CREDIT", "100", "1005")
	req.DocumentTypeID = uuid.NewString()
	_, err = s.service.CreateMovement(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) updateReq(op string, amount, docNumber string) dto.UpdateMovementRequest {
	return dto.UpdateMovementRequest{
		DocumentTypeID: s.depTypeID,
		ConceptID:      s.conceptID,
		Operation:      op,
		Amount:         decimal.RequireFromString(amount),
		DocumentNumber: docNumber,
		MovementDate:   s.baseDate,
		AccountingDate: s.baseDate,
	}
}

func (s *LedgerServiceTestSuite) TestEditReversesOriginalEffect() {
	movement, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "450000", "1005"))
	s.Require().NoError(err)

	// Shrink the credit; balance must follow.
	updated, err := s.service.EditMovement(s.ctx, movement.MovementID, s.updateReq("CREDIT", "400000", "1005"))
	s.Require().NoError(err)
	s.True(updated.Amount.Equal(decimal.RequireFromString("400000")))
	s.True(s.balance().Equal(decimal.RequireFromString("400000")))
	s.requireBalanceInvariant()

	// Flip it to a debit of the full balance; lands on zero... but the
	// reversal happens first, so the debit draws from 0 + nothing = refused.
	_, err = s.service.EditMovement(s.ctx, movement.MovementID, s.updateReq("DEBIT", "400000", "1005"))
	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.True(s.balance().Equal(decimal.RequireFromString("400000")), "failed edit must not move the balance")
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestEditRoundTripLeavesNoDrift() {
	movement, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "1000.10", "1005"))
	s.Require().NoError(err)
	before := s.balance()

	_, err = s.service.EditMovement(s.ctx, movement.MovementID, s.updateReq("CREDIT", "2500.55", "1006"))
	s.Require().NoError(err)
	_, err = s.service.EditMovement(s.ctx, movement.MovementID, s.updateReq("CREDIT", "1000.10", "1005"))
	s.Require().NoError(err)

	s.True(s.balance().Equal(before), "editing back to the original values must restore the balance exactly")
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestEditKeepingDocumentNumberIsNotADuplicate() {
	movement, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1005"))
	s.Require().NoError(err)

	_, err = s.service.EditMovement(s.ctx, movement.MovementID, s.updateReq("CREDIT", "300", "1005"))
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.RequireFromString("300")))
}

func (s *LedgerServiceTestSuite) TestEditToDuplicateOfOtherMovement() {
	first, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1005"))
	s.Require().NoError(err)
	_, err = s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1006"))
	s.Require().NoError(err)

	_, err = s.service.EditMovement(s.ctx, first.MovementID, s.updateReq("CREDIT", "100", "1006"))
	s.Require().ErrorIs(err, apperrors.ErrDuplicateDocument)
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestEditUnknownMovement() {
	_, err := s.service.EditMovement(s.ctx, uuid.NewString(), s.updateReq("CREDIT", "100", "1005"))
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestDeleteReversesEffect() {
	credit, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "500", "1005"))
	s.Require().NoError(err)
	debit, err := s.service.CreateMovement(s.ctx, s.createReq("DEBIT", "200", "1006"))
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.RequireFromString("300")))

	s.Require().NoError(s.service.DeleteMovement(s.ctx, debit.MovementID))
	s.True(s.balance().Equal(decimal.RequireFromString("500")))
	s.requireBalanceInvariant()

	s.Require().NoError(s.service.DeleteMovement(s.ctx, credit.MovementID))
	s.True(s.balance().IsZero())
	s.Empty(s.repo.movements)
}

func (s *LedgerServiceTestSuite) TestDeleteCreditRefusedWhenFundsAlreadySpent() {
	credit, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "500", "1005"))
	s.Require().NoError(err)
	_, err = s.service.CreateMovement(s.ctx, s.createReq("DEBIT", "400", "1006"))
	s.Require().NoError(err)

	// Removing the credit would leave the balance at -400.
	err = s.service.DeleteMovement(s.ctx, credit.MovementID)
	s.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Len(s.repo.movements, 2)
	s.True(s.balance().Equal(decimal.RequireFromString("100")))
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestDeleteThenRecreateSameDocumentNumber() {
	movement, err := s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1005"))
	s.Require().NoError(err)
	s.Require().NoError(s.service.DeleteMovement(s.ctx, movement.MovementID))

	// The document number is free again once the movement is gone.
	_, err = s.service.CreateMovement(s.ctx, s.createReq("CREDIT", "100", "1005"))
	s.Require().NoError(err)
	s.requireBalanceInvariant()
}

func (s *LedgerServiceTestSuite) TestDeleteUnknownMovement() {
	err := s.service.DeleteMovement(s.ctx, uuid.NewString())
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerServiceTestSuite) TestListMovementsClampsLimit() {
	for i := 0; i < 5; i++ {
		req := s.createReq("CREDIT", "10", uuid.NewString())
		req.MovementDate = s.baseDate.AddDate(0, 0, i)
		req.AccountingDate = req.MovementDate
		_, err := s.service.CreateMovement(s.ctx, req)
		s.Require().NoError(err)
	}

	movements, _, err := s.service.ListMovements(s.ctx, s.account.AccountID, 3, nil)
	s.Require().NoError(err)
	s.Len(movements, 3)

	// A non-positive limit falls back to the default.
	movements, _, err = s.service.ListMovements(s.ctx, s.account.AccountID, 0, nil)
	s.Require().NoError(err)
	s.Len(movements, 5)
}

func (s *LedgerServiceTestSuite) TestPeekNextDocumentNumberUnknownType() {
	_, err := s.service.PeekNextDocumentNumber(s.ctx, uuid.NewString())
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
