package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portsrepo "github.com/coopsoc/backoffice_app/internal/core/ports/repositories"
)

type interestRateRepository struct {
	BaseRepository
}

// NewInterestRateRepository creates a read-only repository for seeded rates.
func NewInterestRateRepository(pool *pgxpool.Pool) portsrepo.InterestRateRepository {
	return &interestRateRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InterestRateRepository = (*interestRateRepository)(nil)

func (r *interestRateRepository) ListRates(ctx context.Context) ([]domain.InterestRate, error) {
	query := `
		SELECT rate_id, account_type, rate_percent, created_at, created_by, last_updated_at, last_updated_by
		FROM interest_rates;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list interest rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.InterestRate
	for rows.Next() {
		var rate domain.InterestRate
		if err := rows.Scan(
			&rate.RateID,
			&rate.AccountType,
			&rate.RatePercent,
			&rate.CreatedAt,
			&rate.CreatedBy,
			&rate.LastUpdatedAt,
			&rate.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interest rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interest rate rows: %w", err)
	}
	return rates, nil
}
