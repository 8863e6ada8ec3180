package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portsrepo "github.com/coopsoc/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accrualPageSize bounds how many accounts are loaded per batch page.
const accrualPageSize = 500

// InterestService runs the monthly accrual batch. Each account is processed
// in its own database transaction; one failure never aborts the rest, and the
// per-account accrual-period marker makes re-running within a period a no-op.
type InterestService struct {
	BaseService
	rateRepo    portsrepo.InterestRateRepository
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
}

// NewInterestService creates a new InterestService.
func NewInterestService(rateRepo portsrepo.InterestRateRepository, accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository) *InterestService {
	return &InterestService{rateRepo: rateRepo, accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.InterestSvc = (*InterestService)(nil)

// ApplyMonthlyInterest accrues interest for every eligible account for the
// given period. An empty period defaults to the current month.
func (s *InterestService) ApplyMonthlyInterest(ctx context.Context, period string) (*domain.AccrualResult, error) {
	if period == "" {
		period = domain.AccrualPeriod(time.Now())
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return nil, fmt.Errorf("%w: period must be YYYY-MM", apperrors.ErrValidation)
	}

	rates, err := s.rateRepo.ListRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load interest rates")
		return nil, fmt.Errorf("failed to load interest rates: %w", err)
	}
	rateByType := make(map[domain.AccountType]domain.InterestRate, len(rates))
	for _, r := range rates {
		rateByType[r.AccountType] = r
	}

	result := &domain.AccrualResult{Period: period, Failures: []domain.AccrualFailure{}}
	now := time.Now().UTC()

	for offset := 0; ; offset += accrualPageSize {
		accounts, err := s.accountRepo.ListAccounts(ctx, accrualPageSize, offset)
		if err != nil {
			s.LogError(ctx, err, "Failed to page accounts for accrual", slog.Int("offset", offset))
			return nil, fmt.Errorf("failed to load accounts: %w", err)
		}
		if len(accounts) == 0 {
			break
		}

		for i := range accounts {
			account := &accounts[i]
			if s.accrueOne(ctx, account, rateByType, period, now, result) {
				result.AppliedTo++
			}
		}

		if len(accounts) < accrualPageSize {
			break
		}
	}

	s.LogInfo(ctx, "Interest accrual finished",
		slog.String("period", period),
		slog.Int("applied_to", result.AppliedTo),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", len(result.Failures)))
	return result, nil
}

// accrueOne applies interest to a single account, reporting true when an
// accrual was committed.
func (s *InterestService) accrueOne(ctx context.Context, account *domain.Account, rateByType map[domain.AccountType]domain.InterestRate, period string, now time.Time, result *domain.AccrualResult) bool {
	if account.IsShadow() || account.LastAccrualPeriod == period {
		result.Skipped++
		return false
	}

	rate, ok := rateByType[account.AccountType]
	if !ok || rate.RatePercent.IsZero() {
		result.Skipped++
		return false
	}

	interest := account.Balance.Mul(rate.RatePercent).Div(decimal.NewFromInt(100)).Round(2)
	if interest.LessThanOrEqual(decimal.Zero) {
		result.Skipped++
		return false
	}

	entry := domain.LedgerEntry{
		LedgerID:        uuid.NewString(),
		AccountID:       account.AccountID,
		Particulars:     account.HolderName,
		TransactionType: domain.EntryInterest,
		Amount:          interest,
		Description:     fmt.Sprintf("Monthly interest %s @%s%%", period, rate.RatePercent.String()),
		EntryDate:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.InterestActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.InterestActor,
		},
	}

	if _, err := s.ledgerRepo.ApplyAccrual(ctx, account.AccountID, interest, entry, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another runner marked the period first; count as skipped.
			result.Skipped++
			return false
		}
		s.LogError(ctx, err, "Accrual failed for account",
			slog.String("account_number", account.AccountNumber))
		result.Failures = append(result.Failures, domain.AccrualFailure{
			AccountNumber: account.AccountNumber,
			Reason:        err.Error(),
		})
		return false
	}
	return true
}
