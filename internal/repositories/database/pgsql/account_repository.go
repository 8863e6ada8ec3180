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

const accountColumns = `
	account_id, account_number, account_type, tenure_months, holder_name,
	father_name, address, phone, balance, opened_at, form_date,
	signature_path, photo_path, nominee_name, nominee_age, last_accrual_period,
	created_at, created_by, last_updated_at, last_updated_by`

type accountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &accountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*accountRepository)(nil)

// scanAccount reads one account row in accountColumns order.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.AccountNumber,
		&acc.AccountType,
		&acc.TenureMonths,
		&acc.HolderName,
		&acc.FatherName,
		&acc.Address,
		&acc.Phone,
		&acc.Balance,
		&acc.OpenedAt,
		&acc.FormDate,
		&acc.SignaturePath,
		&acc.PhotoPath,
		&acc.NomineeName,
		&acc.NomineeAge,
		&acc.LastAccrualPeriod,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan account row: %w", err)
	}
	return &acc, nil
}

// insertAccount writes one account row; shared with the ledger repository for
// shadow-account creation inside its transaction.
func insertAccount(ctx context.Context, q querier, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := q.Exec(ctx, query,
		account.AccountID,
		account.AccountNumber,
		account.AccountType,
		account.TenureMonths,
		account.HolderName,
		account.FatherName,
		account.Address,
		account.Phone,
		account.Balance,
		account.OpenedAt,
		account.FormDate,
		account.SignaturePath,
		account.PhotoPath,
		account.NomineeName,
		account.NomineeAge,
		account.LastAccrualPeriod,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// lockAccount fetches an account row FOR UPDATE inside a transaction. Every
// balance mutation goes through this lock so read-modify-write pairs cannot
// interleave across concurrent requests.
func lockAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	return scanAccount(tx.QueryRow(ctx, query, accountID))
}

// setBalanceInTx writes the new balance (and audit stamp) under the lock taken
// by lockAccount.
func setBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	ct, err := tx.Exec(ctx, query, accountID, balance, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s vanished during balance update", apperrors.ErrNotFound, accountID)
	}
	return nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return insertAccount(ctx, r.Pool, account)
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

func (r *accountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
}

// FindAccountByHolderName backs the office-ledger name join. Holder names are
// not unique in general; the oldest match wins, matching the reconciler's
// one-shadow-account-per-particular behavior.
func (r *accountRepository) FindAccountByHolderName(ctx context.Context, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE holder_name = $1 ORDER BY created_at ASC LIMIT 1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, name))
}

func (r *accountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY account_number::bigint ASC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// MaxAccountNumber casts to bigint so ordering is numeric; "999" never sorts
// above "1000".
func (r *accountRepository) MaxAccountNumber(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(MAX(account_number::bigint), 0) FROM accounts;`
	var max int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read max account number: %w", err)
	}
	return max, nil
}

func (r *accountRepository) HasDependents(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE account_id = $1)
		    OR EXISTS (SELECT 1 FROM ledger_entries WHERE account_id = $1);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account dependents: %w", err)
	}
	return exists, nil
}

func (r *accountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
