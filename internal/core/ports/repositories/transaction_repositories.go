package repositories

import (
	"context"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
)

// TransactionRepository persists member transactions. The balance-affecting
// methods run inside a single database transaction that locks the owning
// account row, so the sufficiency check and the balance write cannot race with
// a concurrent writer, and the account and ledger never diverge on partial
// failure.
type TransactionRepository interface {
	// SaveTransactionWithLedger locks the account, re-validates sufficiency
	// for balance-decreasing types, applies the delta, inserts the transaction
	// and appends the paired ledger entry with the post-mutation balance
	// snapshot. Returns the stored transaction and entry.
	SaveTransactionWithLedger(ctx context.Context, txn domain.Transaction, entry domain.LedgerEntry) (*domain.Transaction, *domain.LedgerEntry, error)
	// UpdateTransactionWithBalance reverses the effect of old, applies the
	// effect of updated and persists both the row and the account balance.
	// The original ledger entry is deliberately left untouched.
	UpdateTransactionWithBalance(ctx context.Context, old domain.Transaction, updated domain.Transaction) error
	// DeleteTransactionWithBalance reverses the transaction's effect on the
	// account and removes the row. The ledger entry is left untouched.
	DeleteTransactionWithBalance(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error)
}
