package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestActor is recorded as the creator of accrual ledger entries.
const InterestActor = "Auto Interest"

// InterestRate is the per-account-type monthly percentage used by the accrual
// job. Rates are seeded externally; the core only reads them.
type InterestRate struct {
	RateID      string          `json:"rateID"`
	AccountType AccountType     `json:"accountType"`
	RatePercent decimal.Decimal `json:"ratePercent"`
	AuditFields
}

// AccrualPeriod formats t as the "YYYY-MM" accrual period marker.
func AccrualPeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// AccrualFailure describes one account the interest batch could not process.
type AccrualFailure struct {
	AccountNumber string `json:"accountNumber"`
	Reason        string `json:"reason"`
}

// AccrualResult summarizes one run of the interest batch.
type AccrualResult struct {
	Period    string           `json:"period"`
	AppliedTo int              `json:"appliedTo"`
	Skipped   int              `json:"skipped"`
	Failures  []AccrualFailure `json:"failures"`
}
