package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the transaction-type label stored on a ledger entry.
//
// Two vocabularies coexist and must not be conflated:
//
//   - Transaction-sourced entries store the member transaction type literally
//     (Deposit, Withdrawal, Transfer). Deposit increases the account balance,
//     Withdrawal and Transfer decrease it.
//   - Office-ledger entries use Debit/Credit with cash-book polarity: Debit is
//     money INTO the office (balance increases), Credit is money OUT (balance
//     decreases). This is the opposite of conventional bookkeeping and is kept
//     to match existing summaries.
//   - Interest is appended by the accrual job only.
type EntryType string

const (
	EntryDebit      EntryType = "debit"
	EntryCredit     EntryType = "credit"
	EntryInterest   EntryType = "interest"
	EntryDeposit    EntryType = "deposit"
	EntryWithdrawal EntryType = "withdrawal"
	EntryTransfer   EntryType = "transfer"
)

// OfficeDelta returns the signed effect of an office-ledger entry type on its
// account balance, or ok=false for types that are not office-ledger vocabulary.
func (t EntryType) OfficeDelta(amount decimal.Decimal) (decimal.Decimal, bool) {
	switch t {
	case EntryDebit:
		return amount, true
	case EntryCredit:
		return amount.Neg(), true
	default:
		return decimal.Zero, false
	}
}

// LedgerEntry records one financial event and the balance of the associated
// account immediately after it. The balance snapshot is authoritative at the
// moment of creation and is never recomputed when later entries are added,
// edited or deleted.
type LedgerEntry struct {
	LedgerID string `json:"ledgerID"`
	// AccountID links the entry to the account it was generated from.
	// Particulars stays a display label (holder name or office category).
	AccountID       string          `json:"accountID"`
	Particulars     string          `json:"particulars"`
	TransactionType EntryType       `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	Description     string          `json:"description"`
	EntryDate       time.Time       `json:"entryDate"`
	AuditFields
}

// LedgerFilter narrows ledger queries and summaries.
// From is inclusive and To is exclusive, so a date-only upper bound covers
// the whole day when advanced to the next midnight.
type LedgerFilter struct {
	AccountID string
	Type      EntryType // empty means all types
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// LedgerSummary aggregates the ledger over a queried window.
type LedgerSummary struct {
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	Net           decimal.Decimal `json:"net"`
	EntryCount    int             `json:"entryCount"`
}
