package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portsrepo "github.com/coopsoc/backoffice_app/internal/core/ports/repositories"
)

const ledgerColumns = `
	ledger_id, account_id, particulars, txn_type, amount, balance, description,
	entry_date, created_at, created_by, last_updated_at, last_updated_by`

type ledgerRepository struct {
	BaseRepository
}

// NewLedgerRepository creates a new repository for ledger data.
func NewLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &ledgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	err := row.Scan(
		&e.LedgerID,
		&e.AccountID,
		&e.Particulars,
		&e.TransactionType,
		&e.Amount,
		&e.Balance,
		&e.Description,
		&e.EntryDate,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan ledger row: %w", err)
	}
	return &e, nil
}

func insertLedgerEntry(ctx context.Context, q querier, entry domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := q.Exec(ctx, query,
		entry.LedgerID,
		entry.AccountID,
		entry.Particulars,
		entry.TransactionType,
		entry.Amount,
		entry.Balance,
		entry.Description,
		entry.EntryDate,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", entry.LedgerID, mapPgError(err))
	}
	return nil
}

// settleOfficeEntry applies cash-book polarity to the locked account and
// stamps the entry with the post-mutation balance snapshot. A credit must be
// fully covered by a positive balance.
func settleOfficeEntry(account *domain.Account, entry *domain.LedgerEntry) (decimal.Decimal, error) {
	delta, ok := entry.TransactionType.OfficeDelta(entry.Amount)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: ledger entry type %q has no office polarity", apperrors.ErrValidation, entry.TransactionType)
	}
	if entry.TransactionType == domain.EntryCredit {
		if !account.Balance.IsPositive() || account.Balance.LessThan(entry.Amount) {
			return decimal.Decimal{}, apperrors.NewInsufficientFunds(account.AccountNumber, account.Balance, entry.Amount)
		}
	}
	newBalance := account.Balance.Add(delta)
	entry.AccountID = account.AccountID
	entry.Balance = newBalance
	return newBalance, nil
}

// CreateEntryWithShadowAccount inserts the shadow account and its first entry
// in one transaction, so a half-created particular can never exist.
func (r *ledgerRepository) CreateEntryWithShadowAccount(ctx context.Context, entry domain.LedgerEntry, account domain.Account) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := insertAccount(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit shadow account for %s: %w", entry.Particulars, err)
	}
	return &entry, nil
}

// ApplyEntryToAccount locks the account, applies the cash-book delta (debit
// adds, credit subtracts after the sufficiency check) and writes the entry
// with the post-mutation balance. With LedgerID set the entry is updated in
// place instead of inserted.
func (r *ledgerRepository) ApplyEntryToAccount(ctx context.Context, entry domain.LedgerEntry, accountID string) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := lockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	newBalance, err := settleOfficeEntry(account, &entry)
	if err != nil {
		return nil, err
	}

	if err := setBalanceInTx(ctx, tx, accountID, newBalance, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
		return nil, err
	}

	if entry.LedgerID == "" {
		entry.LedgerID = uuid.NewString()
		if err := insertLedgerEntry(ctx, tx, entry); err != nil {
			return nil, err
		}
	} else {
		// The stored creation columns are untouched; scan them back so the
		// returned entry reports who created it, not who updated it.
		query := `
			UPDATE ledger_entries
			SET particulars = $2, txn_type = $3, amount = $4, balance = $5,
			    description = $6, entry_date = $7, last_updated_at = $8, last_updated_by = $9
			WHERE ledger_id = $1
			RETURNING created_at, created_by;
		`
		err := tx.QueryRow(ctx, query,
			entry.LedgerID,
			entry.Particulars,
			entry.TransactionType,
			entry.Amount,
			entry.Balance,
			entry.Description,
			entry.EntryDate,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
		).Scan(&entry.CreatedAt, &entry.CreatedBy)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to update ledger entry %s: %w", entry.LedgerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit ledger entry %s: %w", entry.LedgerID, err)
	}
	return &entry, nil
}

// ApplyAccrual credits interest and marks the accrual period in one
// transaction. The period re-check under the lock makes concurrent batch runs
// safe: the second runner sees the marker and backs off.
func (r *ledgerRepository) ApplyAccrual(ctx context.Context, accountID string, interest decimal.Decimal, entry domain.LedgerEntry, period string) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	account, err := lockAccount(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if account.LastAccrualPeriod == period {
		return nil, fmt.Errorf("%w: interest already accrued for %s", apperrors.ErrDuplicate, period)
	}

	newBalance := account.Balance.Add(interest)
	query := `
		UPDATE accounts
		SET balance = $2, last_accrual_period = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, query, accountID, newBalance, period, entry.CreatedAt, entry.CreatedBy); err != nil {
		return nil, fmt.Errorf("failed to apply accrual to account %s: %w", accountID, err)
	}

	entry.Balance = newBalance
	if err := insertLedgerEntry(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit accrual for account %s: %w", accountID, err)
	}
	return &entry, nil
}

func (r *ledgerRepository) FindEntryByID(ctx context.Context, ledgerID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE ledger_id = $1;`
	return scanLedgerEntry(r.Pool.QueryRow(ctx, query, ledgerID))
}

// buildFilter renders the WHERE clause shared by ListEntries and Summarize.
func buildFilter(filter domain.LedgerFilter) (string, []any) {
	where := ""
	args := []any{}
	and := func(cond string, value any) {
		args = append(args, value)
		placeholder := "$" + strconv.Itoa(len(args))
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += cond + placeholder
	}

	if filter.AccountID != "" {
		and("account_id = ", filter.AccountID)
	}
	if filter.Type != "" {
		and("txn_type = ", filter.Type)
	}
	if filter.From != nil {
		and("entry_date >= ", *filter.From)
	}
	if filter.To != nil {
		and("entry_date < ", *filter.To)
	}
	return where, args
}

func (r *ledgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	where, args := buildFilter(filter)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries` + where +
		` ORDER BY entry_date DESC, created_at DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return entries, nil
}

// Summarize aggregates in SQL rather than paging rows through the service.
// Deposits count with debits (money in), withdrawals and transfers with
// credits (money out), so the net line reconciles across both vocabularies.
func (r *ledgerRepository) Summarize(ctx context.Context, filter domain.LedgerFilter) (*domain.LedgerSummary, error) {
	where, args := buildFilter(filter)
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE txn_type IN ('debit', 'deposit')), 0),
			COALESCE(SUM(amount) FILTER (WHERE txn_type IN ('credit', 'withdrawal', 'transfer')), 0),
			COALESCE(SUM(amount) FILTER (WHERE txn_type = 'interest'), 0),
			COUNT(*)
		FROM ledger_entries` + where + `;`

	var s domain.LedgerSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(&s.TotalDebit, &s.TotalCredit, &s.TotalInterest, &s.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ledger: %w", err)
	}
	s.Net = s.TotalDebit.Add(s.TotalInterest).Sub(s.TotalCredit)
	return &s, nil
}

func (r *ledgerRepository) DeleteEntry(ctx context.Context, ledgerID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE ledger_id = $1;`, ledgerID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", ledgerID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
