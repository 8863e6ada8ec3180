package dto

import (
	"time"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertLedgerRequest creates or updates an office-ledger entry. LedgerID is
// set only on update. TransactionType follows cash-book polarity: debit is
// money in, credit is money out.
type UpsertLedgerRequest struct {
	LedgerID        string           `json:"ledgerID"`
	Particulars     string           `json:"particulars" binding:"required"`
	TransactionType domain.EntryType `json:"transactionType" binding:"required,oneof=debit credit"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	Description     string           `json:"description"`
	EntryDate       *time.Time       `json:"entryDate"`
}

// LedgerEntryResponse mirrors domain.LedgerEntry for API output.
type LedgerEntryResponse struct {
	LedgerID        string           `json:"ledgerID"`
	AccountID       string           `json:"accountID"`
	Particulars     string           `json:"particulars"`
	TransactionType domain.EntryType `json:"transactionType"`
	Amount          decimal.Decimal  `json:"amount"`
	Balance         decimal.Decimal  `json:"balance"`
	Description     string           `json:"description"`
	EntryDate       time.Time        `json:"entryDate"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       string           `json:"createdBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		LedgerID:        e.LedgerID,
		AccountID:       e.AccountID,
		Particulars:     e.Particulars,
		TransactionType: e.TransactionType,
		Amount:          e.Amount,
		Balance:         e.Balance,
		Description:     e.Description,
		EntryDate:       e.EntryDate,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToLedgerEntryResponses maps a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}
