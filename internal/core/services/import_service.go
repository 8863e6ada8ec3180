package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/coopsoc/backoffice_app/internal/apperrors"
	"github.com/coopsoc/backoffice_app/internal/core/domain"
	portsrepo "github.com/coopsoc/backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/coopsoc/backoffice_app/internal/dto"
	"github.com/coopsoc/backoffice_app/internal/utils"
	"github.com/shopspring/decimal"
)

// ImportService is the CSV import reconciler. Its only side effect is account
// creation: rows whose account number already exists are skipped, bad rows are
// reported per row and never abort the import, and existing balances are never
// touched.
type ImportService struct {
	BaseService
	accountSvc  portssvc.AccountSvc
	accountRepo portsrepo.AccountRepository
}

// NewImportService creates a new ImportService.
func NewImportService(accountSvc portssvc.AccountSvc, accountRepo portsrepo.AccountRepository) *ImportService {
	return &ImportService{accountSvc: accountSvc, accountRepo: accountRepo}
}

var _ portssvc.ImportSvc = (*ImportService)(nil)

// csvRow is one parsed data row, positions resolved through the header.
type csvRow struct {
	accountNumber string
	accountType   string
	tenure        string
	holderName    string
	fatherName    string
	address       string
	phone         string
	deposit       string
	openDate      string
	nomineeName   string
	nomineeAge    string
}

// ImportAccounts parses the whole CSV eagerly, then processes rows in order.
func (s *ImportService) ImportAccounts(ctx context.Context, r io.Reader, actor string) (*dto.ImportResult, error) {
	rows, err := parseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	result := &dto.ImportResult{
		Imported:   []string{},
		Skipped:    []string{},
		FailedRows: []dto.FailedRow{},
	}

	for i, row := range rows {
		rowNumber := i + 1 // 1-based, header excluded

		if row.accountNumber != "" {
			_, err := s.accountRepo.FindAccountByNumber(ctx, row.accountNumber)
			if err == nil {
				// Duplicate is a skip, not a failure.
				result.SkippedCount++
				result.Skipped = append(result.Skipped, row.accountNumber)
				continue
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				result.FailedCount++
				result.FailedRows = append(result.FailedRows, dto.FailedRow{RowNumber: rowNumber, Reason: err.Error()})
				continue
			}
		}

		req, err := buildAccountRequest(row)
		if err != nil {
			result.FailedCount++
			result.FailedRows = append(result.FailedRows, dto.FailedRow{RowNumber: rowNumber, Reason: err.Error()})
			continue
		}

		account, err := s.accountSvc.CreateAccount(ctx, *req, actor)
		if err != nil {
			result.FailedCount++
			result.FailedRows = append(result.FailedRows, dto.FailedRow{RowNumber: rowNumber, Reason: err.Error()})
			continue
		}

		result.ImportedCount++
		result.Imported = append(result.Imported, account.AccountNumber)
	}

	s.LogInfo(ctx, "CSV import finished",
		slog.Int("imported", result.ImportedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Int("failed", result.FailedCount))
	return result, nil
}

// headerAliases maps recognized column names to canonical fields.
var headerAliases = map[string]string{
	"accountnumber": "accountNumber", "account_number": "accountNumber", "account no": "accountNumber",
	"accounttype": "accountType", "account_type": "accountType", "type": "accountType",
	"tenure": "tenure", "tenure_months": "tenure",
	"holdername": "holderName", "holder_name": "holderName", "name": "holderName", "applicantname": "holderName",
	"fathername": "fatherName", "father_name": "fatherName",
	"address": "address",
	"phone":   "phone", "mobile": "phone",
	"deposit": "deposit", "depositamount": "deposit", "deposit_amount": "deposit", "balance": "deposit",
	"opendate": "openDate", "open_date": "openDate", "date": "openDate",
	"nomineename": "nomineeName", "nominee_name": "nomineeName",
	"nomineeage": "nomineeAge", "nominee_age": "nomineeAge",
}

// parseCSV buffers all rows up front; validation happens per row afterwards so
// one malformed value cannot abort the import.
func parseCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int)
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if canonical, ok := headerAliases[key]; ok {
			index[canonical] = i
		}
	}
	if _, ok := index["holderName"]; !ok {
		return nil, fmt.Errorf("CSV header is missing a holder name column")
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, csvRow{
			accountNumber: field(record, "accountNumber"),
			accountType:   field(record, "accountType"),
			tenure:        field(record, "tenure"),
			holderName:    field(record, "holderName"),
			fatherName:    field(record, "fatherName"),
			address:       field(record, "address"),
			phone:         field(record, "phone"),
			deposit:       field(record, "deposit"),
			openDate:      field(record, "openDate"),
			nomineeName:   field(record, "nomineeName"),
			nomineeAge:    field(record, "nomineeAge"),
		})
	}
	return rows, nil
}

// buildAccountRequest normalizes one row into a create request.
func buildAccountRequest(row csvRow) (*dto.CreateAccountRequest, error) {
	if row.holderName == "" {
		return nil, fmt.Errorf("holder name is required")
	}

	accountType := domain.AccountType(row.accountType)
	switch accountType {
	case domain.Savings, domain.Recurring, domain.Fixed, domain.Mis, domain.Loan:
	case "":
		accountType = domain.Savings
	default:
		return nil, fmt.Errorf("unknown account type %q", row.accountType)
	}

	req := &dto.CreateAccountRequest{
		AccountNumber: row.accountNumber,
		AccountType:   accountType,
		HolderName:    row.holderName,
		FatherName:    row.fatherName,
		Address:       row.address,
		Phone:         utils.NormalizePhone(row.phone),
		NomineeName:   row.nomineeName,
	}

	if row.tenure != "" {
		tenure, err := strconv.Atoi(row.tenure)
		if err != nil {
			return nil, fmt.Errorf("invalid tenure %q", row.tenure)
		}
		req.TenureMonths = tenure
	}

	if row.deposit != "" {
		amount, err := decimal.NewFromString(row.deposit)
		if err != nil {
			return nil, fmt.Errorf("invalid deposit amount %q", row.deposit)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("deposit amount must not be negative")
		}
		req.OpeningBalance = amount
	}

	if row.openDate != "" {
		opened, err := utils.ParseFlexibleDate(row.openDate)
		if err != nil {
			return nil, err
		}
		req.OpenedAt = &opened
	}

	if row.nomineeAge != "" {
		age, err := strconv.Atoi(row.nomineeAge)
		if err != nil {
			return nil, fmt.Errorf("invalid nominee age %q", row.nomineeAge)
		}
		req.NomineeAge = age
	}

	return req, nil
}
