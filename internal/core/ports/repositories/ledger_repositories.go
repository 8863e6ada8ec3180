package repositories

import (
	"context"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository persists ledger entries and the office-ledger balance
// adjustments that accompany them.
type LedgerRepository interface {
	// CreateEntryWithShadowAccount inserts a freshly built shadow account and
	// the entry referencing it in one database transaction. The entry balance
	// must already equal the shadow account's opening balance.
	CreateEntryWithShadowAccount(ctx context.Context, entry domain.LedgerEntry, account domain.Account) (*domain.LedgerEntry, error)
	// ApplyEntryToAccount locks the account, applies the office-cash delta for
	// the entry type (debit adds, credit subtracts after the sufficiency
	// check), stamps the entry with the post-mutation balance and inserts it,
	// or updates it in place when entry.LedgerID is already set.
	ApplyEntryToAccount(ctx context.Context, entry domain.LedgerEntry, accountID string) (*domain.LedgerEntry, error)
	// ApplyAccrual adds interest to the account, advances its accrual-period
	// marker and appends the interest entry, all under the account row lock.
	// Returns apperrors.ErrDuplicate when the account is already marked for
	// the period.
	ApplyAccrual(ctx context.Context, accountID string, interest decimal.Decimal, entry domain.LedgerEntry, period string) (*domain.LedgerEntry, error)
	FindEntryByID(ctx context.Context, ledgerID string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
	Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error)
	// DeleteEntry removes the entry only. The associated account balance is
	// not re-derived; the snapshot convention makes this a record edit.
	DeleteEntry(ctx context.Context, ledgerID string) error
}

// InterestRateRepository reads the externally seeded per-type rates.
type InterestRateRepository interface {
	ListRates(ctx context.Context) ([]domain.InterestRate, error)
}
