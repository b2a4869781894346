package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePair keys an exchange rate by the bank publishing it and the quoted
// currency.
type RatePair struct {
	Bank     string
	Currency string
}

// ExchangeRate is one bank's published rate for a currency against TWD.
// BuyingRate is what the bank pays for the foreign currency and is the rate
// used to value book balances in TWD.
type ExchangeRate struct {
	UpdatedAt   time.Time
	Bank        string
	Currency    string
	BuyingRate  decimal.Decimal
	SellingRate decimal.Decimal
}

// Pair returns the lookup key for the rate.
func (r *ExchangeRate) Pair() RatePair {
	return RatePair{Bank: r.Bank, Currency: r.Currency}
}
