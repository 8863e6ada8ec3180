package dto

import (
	"time"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records one deposit/withdrawal/transfer.
type CreateTransactionRequest struct {
	AccountID   string                 `json:"accountID" binding:"required"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=deposit withdrawal transfer"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Description string                 `json:"description"`
	TxnDate     *time.Time             `json:"txnDate"`
}

// UpdateTransactionRequest replaces the type/amount of an existing
// transaction. The old effect is reversed before the new one is applied.
type UpdateTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=deposit withdrawal transfer"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Description *string                `json:"description"`
	TxnDate     *time.Time             `json:"txnDate"`
}

// TransactionResponse mirrors domain.Transaction for API output.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Description   string                 `json:"description"`
	TxnDate       time.Time              `json:"txnDate"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		TxnDate:       t.TxnDate,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}

// ToTransactionResponses maps a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
