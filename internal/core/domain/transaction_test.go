package domain_test

import (
	"testing"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_Decreases(t *testing.T) {
	tests := []struct {
		name string
		typ  domain.TransactionType
		want bool
	}{
		{name: "deposit increases", typ: domain.Deposit, want: false},
		{name: "withdrawal decreases", typ: domain.Withdrawal, want: true},
		{name: "transfer decreases", typ: domain.Transfer, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Decreases())
		})
	}
}

func TestTransaction_SignedEffect(t *testing.T) {
	amount := decimal.NewFromInt(250)

	tests := []struct {
		name string
		typ  domain.TransactionType
		want decimal.Decimal
	}{
		{name: "deposit adds the amount", typ: domain.Deposit, want: amount},
		{name: "withdrawal subtracts the amount", typ: domain.Withdrawal, want: amount.Neg()},
		{name: "transfer subtracts the amount", typ: domain.Transfer, want: amount.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Type: tt.typ, Amount: amount}
			assert.True(t, txn.SignedEffect().Equal(tt.want))
		})
	}
}

func TestTransaction_LedgerEntryType(t *testing.T) {
	// The ledger stores the transaction type literally; it is never translated
	// to debit/credit.
	txn := domain.Transaction{Type: domain.Withdrawal}
	assert.Equal(t, domain.EntryWithdrawal, txn.LedgerEntryType())
}

func TestEntryType_OfficeDelta(t *testing.T) {
	amount := decimal.NewFromInt(100)

	delta, ok := domain.EntryDebit.OfficeDelta(amount)
	assert.True(t, ok)
	assert.True(t, delta.Equal(amount), "debit is money into the office")

	delta, ok = domain.EntryCredit.OfficeDelta(amount)
	assert.True(t, ok)
	assert.True(t, delta.Equal(amount.Neg()), "credit is money out of the office")

	_, ok = domain.EntryInterest.OfficeDelta(amount)
	assert.False(t, ok)
	_, ok = domain.EntryDeposit.OfficeDelta(amount)
	assert.False(t, ok)
}
