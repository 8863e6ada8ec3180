package pgsql

import (
	"testing"
	"time"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func memberAccount(balance int64) *domain.Account {
	return &domain.Account{
		AccountID:     "acc-1",
		AccountNumber: "10500801",
		Balance:       decimal.NewFromInt(balance),
	}
}

func TestSettleTransaction_StampsEntryWithPostMutationBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		typ     domain.TransactionType
		amount  int64
		want    int64
	}{
		{name: "deposit adds", balance: 100, typ: domain.Deposit, amount: 250, want: 350},
		{name: "withdrawal subtracts", balance: 100, typ: domain.Withdrawal, amount: 40, want: 60},
		{name: "transfer subtracts", balance: 100, typ: domain.Transfer, amount: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := memberAccount(tt.balance)
			txn := domain.Transaction{Type: tt.typ, Amount: decimal.NewFromInt(tt.amount)}
			entry := domain.LedgerEntry{}

			newBalance, err := settleTransaction(account, txn, &entry)

			assert.NoError(t, err)
			assert.True(t, newBalance.Equal(decimal.NewFromInt(tt.want)))
			// The entry snapshot must equal the balance the account is left
			// with, never the pre-mutation value.
			assert.True(t, entry.Balance.Equal(newBalance))
		})
	}
}

func TestSettleTransaction_RejectsOverdraw(t *testing.T) {
	account := memberAccount(100)
	txn := domain.Transaction{Type: domain.Withdrawal, Amount: decimal.NewFromInt(150)}
	entry := domain.LedgerEntry{}

	_, err := settleTransaction(account, txn, &entry)

	assert.True(t, apperrors.IsInsufficientFunds(err))
	var insufficientErr *apperrors.InsufficientFundsError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "10500801", insufficientErr.AccountNumber)
	assert.True(t, insufficientErr.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, insufficientErr.Requested.Equal(decimal.NewFromInt(150)))
	// No snapshot is stamped on a rejected settlement.
	assert.True(t, entry.Balance.IsZero())
}

func TestResettleTransaction_ReversesOldAndAppliesNew(t *testing.T) {
	// Balance 300 includes an old 200 deposit. Rewriting it to a 50
	// withdrawal must land on 300 - 200 - 50 = 50.
	account := memberAccount(300)
	old := domain.Transaction{Type: domain.Deposit, Amount: decimal.NewFromInt(200)}
	updated := domain.Transaction{Type: domain.Withdrawal, Amount: decimal.NewFromInt(50)}

	newBalance, err := resettleTransaction(account, old, updated)

	assert.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.NewFromInt(50)))
}

func TestResettleTransaction_RejectsNegativeEndState(t *testing.T) {
	// Reversing the old 200 deposit leaves 100; the new 150 withdrawal
	// would end negative and must be rejected against the reversed balance.
	account := memberAccount(300)
	old := domain.Transaction{Type: domain.Deposit, Amount: decimal.NewFromInt(200)}
	updated := domain.Transaction{Type: domain.Withdrawal, Amount: decimal.NewFromInt(150)}

	_, err := resettleTransaction(account, old, updated)

	assert.True(t, apperrors.IsInsufficientFunds(err))
	var insufficientErr *apperrors.InsufficientFundsError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Balance.Equal(decimal.NewFromInt(100)))
}

func TestResettleTransaction_AllowsTransientExcess(t *testing.T) {
	// Reversing an old withdrawal exceeds the current balance mid-way; only
	// the end state matters.
	account := memberAccount(10)
	old := domain.Transaction{Type: domain.Withdrawal, Amount: decimal.NewFromInt(50)}
	updated := domain.Transaction{Type: domain.Withdrawal, Amount: decimal.NewFromInt(20)}

	newBalance, err := resettleTransaction(account, old, updated)

	assert.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.NewFromInt(40)))
}

func TestSettleOfficeEntry_DebitAddsCreditSubtracts(t *testing.T) {
	account := memberAccount(1000)
	debit := domain.LedgerEntry{TransactionType: domain.EntryDebit, Amount: decimal.NewFromInt(300)}

	newBalance, err := settleOfficeEntry(account, &debit)
	assert.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.NewFromInt(1300)))
	assert.True(t, debit.Balance.Equal(newBalance))
	assert.Equal(t, "acc-1", debit.AccountID)

	credit := domain.LedgerEntry{TransactionType: domain.EntryCredit, Amount: decimal.NewFromInt(400)}
	newBalance, err = settleOfficeEntry(account, &credit)
	assert.NoError(t, err)
	assert.True(t, newBalance.Equal(decimal.NewFromInt(600)))
	assert.True(t, credit.Balance.Equal(newBalance))
}

func TestSettleOfficeEntry_CreditRequiresCoverage(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
	}{
		{name: "zero balance", balance: 0},
		{name: "partial coverage", balance: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := memberAccount(tt.balance)
			entry := domain.LedgerEntry{TransactionType: domain.EntryCredit, Amount: decimal.NewFromInt(100)}

			_, err := settleOfficeEntry(account, &entry)

			assert.True(t, apperrors.IsInsufficientFunds(err))
		})
	}
}

func TestSettleOfficeEntry_RejectsNonOfficeTypes(t *testing.T) {
	account := memberAccount(1000)
	entry := domain.LedgerEntry{TransactionType: domain.EntryDeposit, Amount: decimal.NewFromInt(100)}

	_, err := settleOfficeEntry(account, &entry)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuildFilter_ToBoundIsExclusive(t *testing.T) {
	from := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 16, 0, 0, 0, 0, time.UTC)

	where, args := buildFilter(domain.LedgerFilter{From: &from, To: &to})

	assert.Equal(t, " WHERE entry_date >= $1 AND entry_date < $2", where)
	assert.Equal(t, []any{from, to}, args)
}

func TestBuildFilter_NumbersPlaceholdersInOrder(t *testing.T) {
	where, args := buildFilter(domain.LedgerFilter{AccountID: "acc-1", Type: domain.EntryInterest})

	assert.Equal(t, " WHERE account_id = $1 AND txn_type = $2", where)
	assert.Equal(t, []any{"acc-1", domain.EntryInterest}, args)
}
