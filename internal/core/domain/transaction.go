package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the direction of a member transaction.
type TransactionType string

const (
	Deposit TransactionType = "deposit"
	// Withdrawal and Transfer both move money out of the account and are
	// subject to the sufficiency check.
	Withdrawal TransactionType = "withdrawal"
	Transfer   TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	}
	return false
}

// Decreases reports whether the type reduces the account balance.
func (t TransactionType) Decreases() bool {
	return t == Withdrawal || t == Transfer
}

// Transaction is one deposit/withdrawal/transfer against a single account.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	TxnDate       time.Time       `json:"txnDate"`
	AuditFields
}

// SignedEffect returns the delta this transaction applies to its account
// balance: +amount for a deposit, -amount for a withdrawal or transfer.
func (t *Transaction) SignedEffect() decimal.Decimal {
	if t.Type.Decreases() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LedgerEntryType is the literal label stored on the paired ledger entry.
// The transaction type is not translated to debit/credit on purpose; the
// office cash-book and the member passbook keep separate vocabularies.
func (t *Transaction) LedgerEntryType() EntryType {
	return EntryType(t.Type)
}
