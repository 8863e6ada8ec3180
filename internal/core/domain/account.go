package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedAccountNumber is the account number issued when the store is empty.
// Subsequent numbers are max(existing)+1, compared numerically.
const SeedAccountNumber = "10500801"

// AccountType classifies an account by its product.
type AccountType string

const (
	Savings   AccountType = "Savings"
	Recurring AccountType = "Recurring"
	Fixed     AccountType = "Fixed"
	Mis       AccountType = "Mis"
	Loan      AccountType = "Loan"
	// AutoCreated marks shadow accounts backing office-ledger particulars
	// (e.g. "Rent"). They are excluded from interest accrual.
	AutoCreated AccountType = "Auto-Created"
)

// Account is the balance-bearing record for one opened account.
// Balance is the single mutable scalar shared across the core: every
// balance-affecting path reads it, validates, applies a delta and persists it
// under a row lock. The ledger is the record; this is the current state.
type Account struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"` // unique, immutable after creation
	AccountType   AccountType     `json:"accountType"`
	TenureMonths  int             `json:"tenureMonths"` // meaningful for Recurring only
	HolderName    string          `json:"holderName"`
	FatherName    string          `json:"fatherName"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	Balance       decimal.Decimal `json:"balance"`
	OpenedAt      time.Time       `json:"openedAt"`
	FormDate      time.Time       `json:"formDate"`
	SignaturePath string          `json:"signaturePath"`
	PhotoPath     string          `json:"photoPath"`
	NomineeName   string          `json:"nomineeName"`
	NomineeAge    int             `json:"nomineeAge"`
	// LastAccrualPeriod is the "YYYY-MM" period of the most recent interest
	// accrual; empty until the first run. Guards against double accrual.
	LastAccrualPeriod string `json:"lastAccrualPeriod"`
	AuditFields
}

// IsShadow reports whether the account was auto-created for an office-ledger
// particular rather than opened for a member.
func (a *Account) IsShadow() bool {
	return a.AccountType == AutoCreated
}
