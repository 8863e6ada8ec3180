package dto

import (
	"time"

	"github.com/coopsoc/backoffice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open a new account.
// AccountNumber is optional; the allocator issues one when absent.
type CreateAccountRequest struct {
	AccountNumber  string             `json:"accountNumber"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=Savings Recurring Fixed Mis Loan"`
	TenureMonths   int                `json:"tenureMonths"`
	HolderName     string             `json:"holderName" binding:"required"`
	FatherName     string             `json:"fatherName"`
	Address        string             `json:"address"`
	Phone          string             `json:"phone"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	OpenedAt       *time.Time         `json:"openedAt"`
	FormDate       *time.Time         `json:"formDate"`
	SignaturePath  string             `json:"signaturePath"`
	PhotoPath      string             `json:"photoPath"`
	NomineeName    string             `json:"nomineeName"`
	NomineeAge     int                `json:"nomineeAge"`
}

// AccountResponse mirrors domain.Account for API output.
type AccountResponse struct {
	AccountID         string             `json:"accountID"`
	AccountNumber     string             `json:"accountNumber"`
	AccountType       domain.AccountType `json:"accountType"`
	TenureMonths      int                `json:"tenureMonths"`
	HolderName        string             `json:"holderName"`
	FatherName        string             `json:"fatherName"`
	Address           string             `json:"address"`
	Phone             string             `json:"phone"`
	Balance           decimal.Decimal    `json:"balance"`
	OpenedAt          time.Time          `json:"openedAt"`
	FormDate          time.Time          `json:"formDate"`
	SignaturePath     string             `json:"signaturePath"`
	PhotoPath         string             `json:"photoPath"`
	NomineeName       string             `json:"nomineeName"`
	NomineeAge        int                `json:"nomineeAge"`
	LastAccrualPeriod string             `json:"lastAccrualPeriod"`
	CreatedAt         time.Time          `json:"createdAt"`
	CreatedBy         string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to its API representation.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         acc.AccountID,
		AccountNumber:     acc.AccountNumber,
		AccountType:       acc.AccountType,
		TenureMonths:      acc.TenureMonths,
		HolderName:        acc.HolderName,
		FatherName:        acc.FatherName,
		Address:           acc.Address,
		Phone:             acc.Phone,
		Balance:           acc.Balance,
		OpenedAt:          acc.OpenedAt,
		FormDate:          acc.FormDate,
		SignaturePath:     acc.SignaturePath,
		PhotoPath:         acc.PhotoPath,
		NomineeName:       acc.NomineeName,
		NomineeAge:        acc.NomineeAge,
		LastAccrualPeriod: acc.LastAccrualPeriod,
		CreatedAt:         acc.CreatedAt,
		CreatedBy:         acc.CreatedBy,
	}
}

// ToAccountResponses maps a slice of accounts.
func ToAccountResponses(accs []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accs))
	for i := range accs {
		out[i] = ToAccountResponse(&accs[i])
	}
	return out
}
