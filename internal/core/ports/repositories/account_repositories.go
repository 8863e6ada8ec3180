package repositories

import (
	"context"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. A duplicate account number surfaces
	// as apperrors.ErrDuplicate so callers can re-allocate and retry.
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	// FindAccountByHolderName resolves the office-ledger name join
	// (particulars == holder name). Returns apperrors.ErrNotFound when absent.
	FindAccountByHolderName(ctx context.Context, name string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	// MaxAccountNumber returns the numerically largest account number in the
	// store, or 0 when the store is empty.
	MaxAccountNumber(ctx context.Context) (int64, error)
	// HasDependents reports whether transactions or ledger entries reference
	// the account; deletion is blocked while any exist.
	HasDependents(ctx context.Context, accountID string) (bool, error)
	DeleteAccount(ctx context.Context, accountID string) error
}
