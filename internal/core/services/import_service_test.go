package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/coopsoc/backoffice_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ImportServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         *services.ImportService
	ctx             context.Context
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	accountSvc := services.NewAccountService(suite.mockAccountRepo)
	suite.service = services.NewImportService(accountSvc, suite.mockAccountRepo)
	suite.ctx = context.Background()
}

// --- Test Cases ---

func (suite *ImportServiceTestSuite) TestImportAccounts_MixedRows() {
	csv := strings.Join([]string{
		"AccountNumber,Name,Type,Deposit,Phone",
		"20001,Asha Verma,Savings,500,9876543210",
		",Ravi Kumar,,250,",
		"20003,Broken Row,Savings,abc,",
		"20004,Meena Devi,Savings,100,",
		"20005,Sita Devi,Fixed,300,",
	}, "\n")

	// Row 1: number unused, account created with it.
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, "20001").
		Return(nil, apperrors.ErrNotFound).Once()
	// Row 3: number unused, but the deposit value fails to parse.
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, "20003").
		Return(nil, apperrors.ErrNotFound).Once()
	// Row 4: number already present, so the row is skipped untouched.
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, "20004").
		Return(&domain.Account{AccountID: "acc-4", AccountNumber: "20004"}, nil).Once()
	// Row 5: number unused, account created with it.
	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, "20005").
		Return(nil, apperrors.ErrNotFound).Once()

	// Row 2 carries no number and goes through the allocator.
	suite.mockAccountRepo.On("MaxAccountNumber", suite.ctx).Return(int64(10500801), nil).Once()

	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountNumber == "20001" && a.HolderName == "Asha Verma" && a.AccountType == domain.Savings
	})).Return(nil).Once()
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		// Missing type defaults to Savings.
		return a.AccountNumber == "10500802" && a.HolderName == "Ravi Kumar" && a.AccountType == domain.Savings
	})).Return(nil).Once()
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountNumber == "20005" && a.AccountType == domain.Fixed
	})).Return(nil).Once()

	result, err := suite.service.ImportAccounts(suite.ctx, strings.NewReader(csv), "importer")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, result.ImportedCount)
	assert.Equal(suite.T(), []string{"20001", "10500802", "20005"}, result.Imported)
	assert.Equal(suite.T(), 1, result.SkippedCount)
	assert.Equal(suite.T(), []string{"20004"}, result.Skipped)
	assert.Equal(suite.T(), 1, result.FailedCount)
	assert.Len(suite.T(), result.FailedRows, 1)
	assert.Equal(suite.T(), 3, result.FailedRows[0].RowNumber)
	assert.Contains(suite.T(), result.FailedRows[0].Reason, "deposit")
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportAccounts_BadRowDoesNotAbortImport() {
	csv := strings.Join([]string{
		"Name,Type",
		"Asha Verma,NotAType",
		"Ravi Kumar,Savings",
	}, "\n")

	suite.mockAccountRepo.On("MaxAccountNumber", suite.ctx).Return(int64(10500801), nil).Once()
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.HolderName == "Ravi Kumar"
	})).Return(nil).Once()

	result, err := suite.service.ImportAccounts(suite.ctx, strings.NewReader(csv), "importer")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.ImportedCount)
	assert.Equal(suite.T(), 1, result.FailedCount)
	assert.Equal(suite.T(), 1, result.FailedRows[0].RowNumber)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportAccounts_NonDigitAccountNumberFails() {
	csv := strings.Join([]string{
		"AccountNumber,Name",
		"AB-12X,Asha Verma",
	}, "\n")

	suite.mockAccountRepo.On("FindAccountByNumber", suite.ctx, "AB-12X").
		Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ImportAccounts(suite.ctx, strings.NewReader(csv), "importer")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, result.ImportedCount)
	assert.Equal(suite.T(), 1, result.FailedCount)
	assert.Equal(suite.T(), 1, result.FailedRows[0].RowNumber)
	assert.Contains(suite.T(), result.FailedRows[0].Reason, "digits")
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ImportServiceTestSuite) TestImportAccounts_MissingHolderNameColumn() {
	csv := "AccountNumber,Deposit\n20001,500\n"

	result, err := suite.service.ImportAccounts(suite.ctx, strings.NewReader(csv), "importer")

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *ImportServiceTestSuite) TestImportAccounts_EmptyBody() {
	result, err := suite.service.ImportAccounts(suite.ctx, strings.NewReader(""), "importer")

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
