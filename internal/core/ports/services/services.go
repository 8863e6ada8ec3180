package services

import (
	"context"
	"io"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/coopsoc/backoffice_app/internal/dto"
)

// AccountSvc exposes account store operations and the number allocator.
type AccountSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	// NextAccountNumber returns max(existing)+1 as a digit string, or the seed
	// value when the store is empty.
	NextAccountNumber(ctx context.Context) (string, error)
}

// TransactionSvc is the transaction recorder.
type TransactionSvc interface {
	RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor string) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)
}

// LedgerSvc covers ledger reads, the summary aggregation and the office-ledger
// upsert reconciler.
type LedgerSvc interface {
	UpsertEntry(ctx context.Context, req dto.UpsertLedgerRequest, actor string) (*domain.LedgerEntry, error)
	GetEntryByID(ctx context.Context, ledgerID string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
	Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error)
	DeleteEntry(ctx context.Context, ledgerID string) error
}

// InterestSvc runs the monthly accrual batch.
type InterestSvc interface {
	// ApplyMonthlyInterest accrues interest for every eligible account for the
	// given period ("YYYY-MM"). Re-running within the same period is a no-op
	// per account. A single account failure never aborts the batch.
	ApplyMonthlyInterest(ctx context.Context, period string) (*domain.AccrualResult, error)
}

// ImportSvc is the CSV import reconciler.
type ImportSvc interface {
	ImportAccounts(ctx context.Context, r io.Reader, actor string) (*dto.ImportResult, error)
}

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Account     AccountSvc
	Transaction TransactionSvc
	Ledger      LedgerSvc
	Interest    InterestSvc
	Import      ImportSvc
}
