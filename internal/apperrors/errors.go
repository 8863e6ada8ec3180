package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the actor is not allowed to perform the requested action.
var ErrForbidden = errors.New("action not permitted")

// InsufficientFundsError is returned when a balance-decreasing operation would
// drive an account balance negative. It carries the balance at the time of the
// check so handlers can surface the exact shortfall.
type InsufficientFundsError struct {
	AccountNumber string
	Balance       decimal.Decimal
	Requested     decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance on account %s: have %s, requested %s",
		e.AccountNumber, e.Balance.String(), e.Requested.String())
}

// NewInsufficientFunds builds an InsufficientFundsError.
func NewInsufficientFunds(accountNumber string, balance, requested decimal.Decimal) error {
	return &InsufficientFundsError{AccountNumber: accountNumber, Balance: balance, Requested: requested}
}

// IsInsufficientFunds reports whether err is an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}
