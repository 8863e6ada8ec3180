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
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService covers ledger reads, the summary aggregation and the
// office-ledger upsert reconciler. The upsert path joins entries to accounts
// by particulars == holder name and auto-creates a shadow account per distinct
// particular, so office categories like "Rent" carry a running balance too.
type LedgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepository
	accountSvc  portssvc.AccountSvc
}

// NewLedgerService creates a new LedgerService. accountSvc is used for number
// allocation when a shadow account must be created.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository, accountSvc portssvc.AccountSvc) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo, accountSvc: accountSvc}
}

var _ portssvc.LedgerSvc = (*LedgerService)(nil)

// UpsertEntry creates or updates an office-ledger entry and adjusts the
// backing account with cash-book polarity: debit adds, credit subtracts.
func (s *LedgerService) UpsertEntry(ctx context.Context, req dto.UpsertLedgerRequest, actor string) (*domain.LedgerEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if _, ok := req.TransactionType.OfficeDelta(req.Amount); !ok {
		return nil, fmt.Errorf("%w: transaction type must be debit or credit", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entry := domain.LedgerEntry{
		LedgerID:        req.LedgerID,
		Particulars:     req.Particulars,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		Description:     req.Description,
		EntryDate:       entryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	account, err := s.accountRepo.FindAccountByHolderName(ctx, req.Particulars)
	switch {
	case err == nil:
		// Existing account: apply the delta under the row lock; the credit
		// sufficiency check happens there too.
		entry.AccountID = account.AccountID
		saved, err := s.ledgerRepo.ApplyEntryToAccount(ctx, entry, account.AccountID)
		if err != nil {
			if !apperrors.IsInsufficientFunds(err) {
				s.LogError(ctx, err, "Failed to apply ledger entry",
					slog.String("particulars", req.Particulars))
			}
			return nil, err
		}
		s.LogInfo(ctx, "Ledger entry applied",
			slog.String("ledger_id", saved.LedgerID),
			slog.String("particulars", saved.Particulars),
			slog.String("type", string(saved.TransactionType)))
		return saved, nil

	case errors.Is(err, apperrors.ErrNotFound):
		// A credit against a particular with no account means money out of a
		// pocket that was never funded.
		if req.TransactionType == domain.EntryCredit {
			return nil, apperrors.NewInsufficientFunds(req.Particulars, decimal.Zero, req.Amount)
		}
		if req.LedgerID != "" {
			return nil, fmt.Errorf("%w: ledger entry %s references an unknown particular", apperrors.ErrNotFound, req.LedgerID)
		}

		number, err := s.accountSvc.NextAccountNumber(ctx)
		if err != nil {
			return nil, err
		}
		shadow := domain.Account{
			AccountID:     uuid.NewString(),
			AccountNumber: number,
			AccountType:   domain.AutoCreated,
			HolderName:    req.Particulars,
			Balance:       req.Amount, // debit opens the shadow account funded
			OpenedAt:      entryDate,
			FormDate:      entryDate,
			AuditFields:   entry.AuditFields,
		}
		entry.LedgerID = uuid.NewString()
		entry.AccountID = shadow.AccountID
		entry.Balance = shadow.Balance

		saved, err := s.ledgerRepo.CreateEntryWithShadowAccount(ctx, entry, shadow)
		if err != nil {
			s.LogError(ctx, err, "Failed to create ledger entry with shadow account",
				slog.String("particulars", req.Particulars))
			return nil, err
		}
		s.LogInfo(ctx, "Shadow account created for particular",
			slog.String("account_number", shadow.AccountNumber),
			slog.String("particulars", req.Particulars))
		return saved, nil

	default:
		s.LogError(ctx, err, "Failed to resolve account for particulars",
			slog.String("particulars", req.Particulars))
		return nil, err
	}
}

// GetEntryByID fetches a single ledger entry.
func (s *LedgerService) GetEntryByID(ctx context.Context, ledgerID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, ledgerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger entry", slog.String("ledger_id", ledgerID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries returns ledger entries matching the filter.
func (s *LedgerService) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

// Summarize aggregates debits, credits and interest over the filtered window.
func (s *LedgerService) Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error) {
	summary, err := s.ledgerRepo.Summarize(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize ledger")
		return nil, fmt.Errorf("failed to summarize ledger: %w", err)
	}
	return summary, nil
}

// DeleteEntry removes a ledger entry. The associated account balance is not
// re-derived; the entry's balance snapshot was true when written and deleting
// the record does not rewrite history.
func (s *LedgerService) DeleteEntry(ctx context.Context, ledgerID string) error {
	if _, err := s.ledgerRepo.FindEntryByID(ctx, ledgerID); err != nil {
		return err
	}
	if err := s.ledgerRepo.DeleteEntry(ctx, ledgerID); err != nil {
		s.LogError(ctx, err, "Failed to delete ledger entry", slog.String("ledger_id", ledgerID))
		return err
	}
	s.LogInfo(ctx, "Ledger entry deleted", slog.String("ledger_id", ledgerID))
	return nil
}
