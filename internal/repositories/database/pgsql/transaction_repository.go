package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portsrepo "github.com/coopsoc/backoffice_app/internal/core/ports/repositories"
)

const transactionColumns = `
	transaction_id, account_id, txn_type, amount, description, txn_date,
	created_at, created_by, last_updated_at, last_updated_by`

type transactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &transactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*transactionRepository)(nil)

// settleTransaction computes the account balance after txn and stamps entry
// with the post-mutation snapshot. The caller must hold the account row lock;
// the sufficiency check here is the authoritative one, the service-level check
// only fails fast.
func settleTransaction(account *domain.Account, txn domain.Transaction, entry *domain.LedgerEntry) (decimal.Decimal, error) {
	newBalance := account.Balance.Add(txn.SignedEffect())
	if newBalance.IsNegative() {
		return decimal.Decimal{}, apperrors.NewInsufficientFunds(account.AccountNumber, account.Balance, txn.Amount)
	}
	entry.Balance = newBalance
	return newBalance, nil
}

// resettleTransaction reverses old and applies updated against the locked
// account. Only the end state matters; the reversal may transiently exceed
// the balance.
func resettleTransaction(account *domain.Account, old, updated domain.Transaction) (decimal.Decimal, error) {
	reversed := account.Balance.Sub(old.SignedEffect())
	newBalance := reversed.Add(updated.SignedEffect())
	if newBalance.IsNegative() {
		return decimal.Decimal{}, apperrors.NewInsufficientFunds(account.AccountNumber, reversed, updated.Amount)
	}
	return newBalance, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.AccountID,
		&txn.Type,
		&txn.Amount,
		&txn.Description,
		&txn.TxnDate,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}
	return &txn, nil
}

// SaveTransactionWithLedger applies one transaction as a single unit: lock the
// account, re-check sufficiency against the fresh balance, move the balance,
// insert the transaction and append the paired ledger entry carrying the
// post-mutation snapshot. A timeout or crash mid-way rolls everything back, so
// the account and the ledger never diverge.
func (r *transactionRepository) SaveTransactionWithLedger(ctx context.Context, txn domain.Transaction, entry domain.LedgerEntry) (*domain.Transaction, *domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := lockAccount(ctx, tx, txn.AccountID)
	if err != nil {
		return nil, nil, err
	}

	newBalance, err := settleTransaction(account, txn, &entry)
	if err != nil {
		return nil, nil, err
	}

	if err := setBalanceInTx(ctx, tx, account.AccountID, newBalance, txn.CreatedBy, txn.CreatedAt); err != nil {
		return nil, nil, err
	}

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, nil, err
	}

	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction %s: %w", txn.TransactionID, err)
	}
	return &txn, &entry, nil
}

// UpdateTransactionWithBalance reverses old and applies updated under one
// lock. The final balance must not go negative at the end state; transient
// arithmetic order does not matter since both deltas apply together.
func (r *transactionRepository) UpdateTransactionWithBalance(ctx context.Context, old domain.Transaction, updated domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	account, err := lockAccount(ctx, tx, old.AccountID)
	if err != nil {
		return err
	}

	newBalance, err := resettleTransaction(account, old, updated)
	if err != nil {
		return err
	}

	if err := setBalanceInTx(ctx, tx, account.AccountID, newBalance, updated.LastUpdatedBy, updated.LastUpdatedAt); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET txn_type = $2, amount = $3, description = $4, txn_date = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`
	ct, err := tx.Exec(ctx, query,
		updated.TransactionID,
		updated.Type,
		updated.Amount,
		updated.Description,
		updated.TxnDate,
		updated.LastUpdatedAt,
		updated.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", updated.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction update %s: %w", updated.TransactionID, err)
	}
	return nil
}

// DeleteTransactionWithBalance reverses the transaction's effect and removes
// the row. Reversal is unconditional; deleting a deposit can legitimately
// leave the balance lower than subsequent withdrawals assumed.
func (r *transactionRepository) DeleteTransactionWithBalance(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	account, err := lockAccount(ctx, tx, txn.AccountID)
	if err != nil {
		return err
	}

	newBalance := account.Balance.Sub(txn.SignedEffect())
	now := time.Now().UTC()
	if err := setBalanceInTx(ctx, tx, account.AccountID, newBalance, txn.LastUpdatedBy, now); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction delete %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
}

func (r *transactionRepository) ListTransactions(ctx context.Context, accountID string, limit int, offset int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	args := []any{}
	if accountID != "" {
		query += ` WHERE account_id = $1 ORDER BY txn_date DESC, created_at DESC LIMIT $2 OFFSET $3;`
		args = append(args, accountID, limit, offset)
	} else {
		query += ` ORDER BY txn_date DESC, created_at DESC LIMIT $1 OFFSET $2;`
		args = append(args, limit, offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func insertTransaction(ctx context.Context, q querier, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := q.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.Type,
		txn.Amount,
		txn.Description,
		txn.TxnDate,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, mapPgError(err))
	}
	return nil
}
