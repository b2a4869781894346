package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Book errors
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidBank     = errors.New("invalid bank code")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidBookName = errors.New("invalid book name")

	// Entry errors
	ErrInvalidEntryFields     = errors.New("incorrect data for entry")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrInsufficientBalance    = errors.New("insufficient balance")

	// Exchange rate errors
	ErrRateNotFound = errors.New("exchange rate not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailAlreadyTaken  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// InsufficientBalanceError reports a transfer that would overdraw the
// transfer-out book. It carries what was available against what was requested.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, requested %s",
		e.Available.String(), e.Requested.String())
}

// Is lets errors.Is match against ErrInsufficientBalance.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
