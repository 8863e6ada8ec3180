package services_test

import (
	"context"
	"testing"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portsrepo "github.com/coopsoc/backoffice_app/internal/core/ports/repositories"
	"github.com/coopsoc/backoffice_app/internal/core/services"
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) CreateEntryWithShadowAccount(ctx context.Context, entry domain.LedgerEntry, account domain.Account) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ApplyEntryToAccount(ctx context.Context, entry domain.LedgerEntry, accountID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ApplyAccrual(ctx context.Context, accountID string, interest decimal.Decimal, entry domain.LedgerEntry, period string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, interest, entry, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, ledgerID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, ledgerID string) error {
	args := m.Called(ctx, ledgerID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	service         *services.LedgerService
	ctx             context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	// The real account service supplies the number allocator for shadow
	// account creation, backed by the same mocked repository.
	accountSvc := services.NewAccountService(suite.mockAccountRepo)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo, accountSvc)
	suite.ctx = context.Background()
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestUpsertEntry_ExistingAccountAppliesDelta() {
	account := &domain.Account{
		AccountID:     "acc-1",
		AccountNumber: "10500801",
		HolderName:    "Asha Verma",
		Balance:       decimal.NewFromInt(1000),
	}
	suite.mockAccountRepo.On("FindAccountByHolderName", suite.ctx, "Asha Verma").Return(account, nil).Once()

	suite.mockLedgerRepo.On("ApplyEntryToAccount", suite.ctx,
		mock.MatchedBy(func(entry domain.LedgerEntry) bool {
			return entry.AccountID == "acc-1" &&
				entry.Particulars == "Asha Verma" &&
				entry.TransactionType == domain.EntryDebit &&
				entry.Amount.Equal(decimal.NewFromInt(300))
		}),
		"acc-1",
	).Return(&domain.LedgerEntry{LedgerID: "led-1", Balance: decimal.NewFromInt(1300)}, nil).Once()

	saved, err := suite.service.UpsertEntry(suite.ctx, dto.UpsertLedgerRequest{
		Particulars:     "Asha Verma",
		TransactionType: domain.EntryDebit,
		Amount:          decimal.NewFromInt(300),
	}, "tester")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "led-1", saved.LedgerID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpsertEntry_DebitUnknownParticularCreatesShadowAccount() {
	suite.mockAccountRepo.On("FindAccountByHolderName", suite.ctx, "Rent").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("MaxAccountNumber", suite.ctx).Return(int64(10500810), nil).Once()

	suite.mockLedgerRepo.On("CreateEntryWithShadowAccount", suite.ctx,
		mock.MatchedBy(func(entry domain.LedgerEntry) bool {
			// The entry snapshot equals the shadow account's opening balance.
			return entry.Particulars == "Rent" &&
				entry.TransactionType == domain.EntryDebit &&
				entry.Balance.Equal(decimal.NewFromInt(1500))
		}),
		mock.MatchedBy(func(account domain.Account) bool {
			return account.AccountType == domain.AutoCreated &&
				account.HolderName == "Rent" &&
				account.AccountNumber == "10500811" &&
				account.Balance.Equal(decimal.NewFromInt(1500))
		}),
	).Return(&domain.LedgerEntry{LedgerID: "led-1", Particulars: "Rent", Balance: decimal.NewFromInt(1500)}, nil).Once()

	saved, err := suite.service.UpsertEntry(suite.ctx, dto.UpsertLedgerRequest{
		Particulars:     "Rent",
		TransactionType: domain.EntryDebit,
		Amount:          decimal.NewFromInt(1500),
	}, "tester")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), saved.Balance.Equal(decimal.NewFromInt(1500)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpsertEntry_CreditUnknownParticularFails() {
	suite.mockAccountRepo.On("FindAccountByHolderName", suite.ctx, "Nobody").
		Return(nil, apperrors.ErrNotFound).Once()

	saved, err := suite.service.UpsertEntry(suite.ctx, dto.UpsertLedgerRequest{
		Particulars:     "Nobody",
		TransactionType: domain.EntryCredit,
		Amount:          decimal.NewFromInt(100),
	}, "tester")

	assert.Nil(suite.T(), saved)
	assert.True(suite.T(), apperrors.IsInsufficientFunds(err))

	var insufficientErr *apperrors.InsufficientFundsError
	assert.ErrorAs(suite.T(), err, &insufficientErr)
	assert.True(suite.T(), insufficientErr.Balance.IsZero())
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CreateEntryWithShadowAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpsertEntry_RejectsNonOfficeTypes() {
	saved, err := suite.service.UpsertEntry(suite.ctx, dto.UpsertLedgerRequest{
		Particulars:     "Asha Verma",
		TransactionType: domain.EntryInterest,
		Amount:          decimal.NewFromInt(100),
	}, "tester")

	assert.Nil(suite.T(), saved)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestUpsertEntry_UpdateWithUnknownParticular() {
	suite.mockAccountRepo.On("FindAccountByHolderName", suite.ctx, "Ghost").
		Return(nil, apperrors.ErrNotFound).Once()

	saved, err := suite.service.UpsertEntry(suite.ctx, dto.UpsertLedgerRequest{
		LedgerID:        "led-9",
		Particulars:     "Ghost",
		TransactionType: domain.EntryDebit,
		Amount:          decimal.NewFromInt(100),
	}, "tester")

	assert.Nil(suite.T(), saved)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_LeavesBalanceAlone() {
	entry := &domain.LedgerEntry{LedgerID: "led-1", AccountID: "acc-1"}
	suite.mockLedgerRepo.On("FindEntryByID", suite.ctx, "led-1").Return(entry, nil).Once()
	suite.mockLedgerRepo.On("DeleteEntry", suite.ctx, "led-1").Return(nil).Once()

	err := suite.service.DeleteEntry(suite.ctx, "led-1")

	assert.NoError(suite.T(), err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListEntries_NilBecomesEmptySlice() {
	filter := domain.LedgerFilter{Limit: 50}
	suite.mockLedgerRepo.On("ListEntries", suite.ctx, filter).Return(nil, nil).Once()

	entries, err := suite.service.ListEntries(suite.ctx, filter)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), entries)
	assert.Len(suite.T(), entries, 0)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
