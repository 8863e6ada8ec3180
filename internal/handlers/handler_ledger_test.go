package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/coopsoc/backoffice_app/internal/handlers"
	"github.com/coopsoc/backoffice_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

func (m *MockLedgerService) UpsertEntry(ctx context.Context, req dto.UpsertLedgerRequest, actor string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, ledgerID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, ledgerID string) error {
	args := m.Called(ctx, ledgerID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type LedgerHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtSecret  string
	mockLedger *MockLedgerService
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockLedger = new(MockLedgerService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Ledger: suite.mockLedger,
	})
}

func (suite *LedgerHandlerTestSuite) generateTestToken(subject, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *LedgerHandlerTestSuite) doGet(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("user-1", "viewer"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestListEntries_DateRangeCoversWholeToDay() {
	var got domain.LedgerFilter
	suite.mockLedger.On("ListEntries", mock.Anything, mock.MatchedBy(func(f domain.LedgerFilter) bool {
		got = f
		return true
	})).Return([]domain.LedgerEntry{}, nil).Once()

	w := suite.doGet("/api/v1/ledger?from=2026-08-01&to=2026-08-15")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.Require().NotNil(got.From)
	suite.Require().NotNil(got.To)
	// From stays at midnight of the requested day; To advances to the next
	// midnight so an entry late on the 15th still falls inside the range.
	assert.Equal(suite.T(), time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), got.From.UTC())
	assert.Equal(suite.T(), time.Date(2026, time.August, 16, 0, 0, 0, 0, time.UTC), got.To.UTC())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListEntries_NoDatesLeavesBoundsNil() {
	suite.mockLedger.On("ListEntries", mock.Anything, mock.MatchedBy(func(f domain.LedgerFilter) bool {
		return f.From == nil && f.To == nil && f.AccountID == "acc-1" && f.Type == domain.EntryDebit
	})).Return([]domain.LedgerEntry{}, nil).Once()

	w := suite.doGet("/api/v1/ledger?accountID=acc-1&type=debit")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestSummarize_SameExclusiveBound() {
	suite.mockLedger.On("Summarize", mock.Anything, mock.MatchedBy(func(f domain.LedgerFilter) bool {
		return f.To != nil && f.To.UTC().Equal(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&domain.LedgerSummary{}, nil).Once()

	w := suite.doGet("/api/v1/ledger/summary?to=2026-08-31")

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
