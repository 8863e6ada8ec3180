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

// TransactionService is the transaction recorder: it creates the transaction
// row, moves the account balance and mirrors the effect into the ledger as one
// unit. The repository performs the balance mutation under a row lock, so the
// sufficiency check cannot pass against a stale balance.
type TransactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepository
	accountRepo portsrepo.AccountRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository) *TransactionService {
	return &TransactionService{txnRepo: txnRepo, accountRepo: accountRepo}
}

var _ portssvc.TransactionSvc = (*TransactionService)(nil)

// RecordTransaction validates and applies one deposit/withdrawal/transfer.
func (s *TransactionService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for transaction", slog.String("account_id", req.AccountID))
		}
		return nil, err
	}

	// Early, user-facing sufficiency check. The repository re-checks under
	// the row lock; this one just fails fast with the current balance.
	if req.Type.Decreases() && account.Balance.LessThan(req.Amount) {
		return nil, apperrors.NewInsufficientFunds(account.AccountNumber, account.Balance, req.Amount)
	}

	now := time.Now().UTC()
	txnDate := now
	if req.TxnDate != nil {
		txnDate = *req.TxnDate
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		TxnDate:       txnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	entry := domain.LedgerEntry{
		LedgerID:        uuid.NewString(),
		AccountID:       account.AccountID,
		Particulars:     account.HolderName,
		TransactionType: txn.LedgerEntryType(),
		Amount:          req.Amount,
		Description:     req.Description,
		EntryDate:       txnDate,
		AuditFields:     txn.AuditFields,
		// Balance snapshot is stamped by the repository after the mutation.
	}

	saved, _, err := s.txnRepo.SaveTransactionWithLedger(ctx, txn, entry)
	if err != nil {
		if !apperrors.IsInsufficientFunds(err) {
			s.LogError(ctx, err, "Failed to record transaction",
				slog.String("account_id", account.AccountID),
				slog.String("type", string(req.Type)))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("account_number", account.AccountNumber),
		slog.String("type", string(saved.Type)),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// UpdateTransaction reverses the old effect, re-validates sufficiency for the
// new type/amount and applies it. The ledger entry created with the original
// transaction is not corrected; the ledger records history as it happened.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor string) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}

	old, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	updated := *old
	updated.Type = req.Type
	updated.Amount = req.Amount
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.TxnDate != nil {
		updated.TxnDate = *req.TxnDate
	}
	updated.LastUpdatedAt = time.Now().UTC()
	updated.LastUpdatedBy = actor

	if err := s.txnRepo.UpdateTransactionWithBalance(ctx, *old, updated); err != nil {
		if !apperrors.IsInsufficientFunds(err) {
			s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("type", string(updated.Type)),
		slog.String("amount", updated.Amount.String()))
	return &updated, nil
}

// DeleteTransaction reverses the transaction's effect on the account balance
// and removes the record. The ledger entry is left as-is.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}

	if err := s.txnRepo.DeleteTransactionWithBalance(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// ListTransactions pages transactions, optionally filtered by account.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, accountID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}
