package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portsrepo "github.com/coopsoc/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/coopsoc/backoffice_app/internal/utils"
	"github.com/google/uuid"
)

// allocateRetries bounds re-allocation attempts when two near-simultaneous
// creates race to the same account number. The unique constraint is the
// backstop; a retry re-reads the new maximum.
const allocateRetries = 3

// AccountService owns the account store and the number allocator.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: repo}
}

var _ portssvc.AccountSvc = (*AccountService)(nil)

// validAccountNumber reports whether an explicitly supplied number is a digit
// string that fits in int64. The store compares and allocates numbers through
// a bigint cast, so one non-numeric value would poison every cast after it.
func validAccountNumber(number string) bool {
	for i := 0; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	_, err := strconv.ParseInt(number, 10, 64)
	return err == nil
}

// NextAccountNumber returns max(existing)+1 as a digit string, or the seed
// value when the store is empty. Comparison is numeric, never lexicographic.
func (s *AccountService) NextAccountNumber(ctx context.Context) (string, error) {
	max, err := s.accountRepo.MaxAccountNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read max account number")
		return "", fmt.Errorf("failed to allocate account number: %w", err)
	}
	if max == 0 {
		return domain.SeedAccountNumber, nil
	}
	return strconv.FormatInt(max+1, 10), nil
}

// CreateAccount opens a new account. When the request carries no account
// number, one is allocated; a duplicate-number collision re-allocates and
// retries a bounded number of times.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}
	if req.AccountNumber != "" && !validAccountNumber(req.AccountNumber) {
		return nil, fmt.Errorf("%w: account number must be a string of digits", apperrors.ErrValidation)
	}
	if req.AccountType == domain.Recurring && req.TenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure is required for recurring accounts", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	openedAt := now
	if req.OpenedAt != nil {
		openedAt = *req.OpenedAt
	}
	formDate := openedAt
	if req.FormDate != nil {
		formDate = *req.FormDate
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		TenureMonths:  req.TenureMonths,
		HolderName:    req.HolderName,
		FatherName:    req.FatherName,
		Address:       req.Address,
		Phone:         utils.NormalizePhone(req.Phone),
		Balance:       req.OpeningBalance,
		OpenedAt:      openedAt,
		FormDate:      formDate,
		SignaturePath: req.SignaturePath,
		PhotoPath:     req.PhotoPath,
		NomineeName:   req.NomineeName,
		NomineeAge:    req.NomineeAge,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	explicitNumber := req.AccountNumber != ""
	for attempt := 0; attempt < allocateRetries; attempt++ {
		if account.AccountNumber == "" {
			number, err := s.NextAccountNumber(ctx)
			if err != nil {
				return nil, err
			}
			account.AccountNumber = number
		}

		err := s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			s.LogInfo(ctx, "Account created",
				slog.String("account_id", account.AccountID),
				slog.String("account_number", account.AccountNumber))
			return &account, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) && !explicitNumber {
			s.LogDebug(ctx, "Account number collision, re-allocating",
				slog.String("account_number", account.AccountNumber))
			account.AccountNumber = ""
			continue
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_number", account.AccountNumber))
		return nil, err
	}

	return nil, fmt.Errorf("%w: account number allocation kept colliding", apperrors.ErrDuplicate)
}

// GetAccountByID fetches one account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts pages through the account store.
func (s *AccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// DeleteAccount removes an account. Deletion is blocked while transactions or
// ledger entries still reference it.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	hasDeps, err := s.accountRepo.HasDependents(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account dependents", slog.String("account_id", accountID))
		return err
	}
	if hasDeps {
		return fmt.Errorf("%w: account has transactions or ledger entries", apperrors.ErrValidation)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
