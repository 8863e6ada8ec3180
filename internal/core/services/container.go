package services

import (
	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/repositories/database/pgsql"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewServiceContainer wires repositories and services onto the shared pool.
func NewServiceContainer(pool *pgxpool.Pool) *portssvc.ServiceContainer {
	accountRepo := pgsql.NewAccountRepository(pool)
	txnRepo := pgsql.NewTransactionRepository(pool)
	ledgerRepo := pgsql.NewLedgerRepository(pool)
	rateRepo := pgsql.NewInterestRateRepository(pool)

	accountSvc := NewAccountService(accountRepo)

	return &portssvc.ServiceContainer{
		Account:     accountSvc,
		Transaction: NewTransactionService(txnRepo, accountRepo),
		Ledger:      NewLedgerService(ledgerRepo, accountRepo, accountSvc),
		Interest:    NewInterestService(rateRepo, accountRepo, ledgerRepo),
		Import:      NewImportService(accountSvc, accountRepo),
	}
}
