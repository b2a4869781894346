package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book represents an account denominated in a foreign currency at a specific
// bank. Balance is kept in the book's own currency; RemainingTwdFund is the
// TWD cost basis still invested in the book.
type Book struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	TwdProfit        *int64
	ProfitRate       *decimal.Decimal
	ID               string
	Name             string
	Bank             string
	Currency         string
	Creator          string
	Balance          decimal.Decimal
	RemainingTwdFund int64
	BreakEvenPoint   decimal.Decimal
}

// RatePair returns the (bank, currency) key used for exchange rate lookups.
func (b *Book) RatePair() RatePair {
	return RatePair{Bank: b.Bank, Currency: b.Currency}
}

// TwdValue converts the current balance to TWD at the given buying rate,
// rounded to the nearest dollar.
func (b *Book) TwdValue(buyingRate decimal.Decimal) int64 {
	return b.Balance.Mul(buyingRate).Round(0).IntPart()
}

// RefreshProfit recomputes TwdProfit and ProfitRate against the given buying
// rate. Profit is the TWD value of the balance minus the remaining TWD fund;
// the rate is profit over fund. ProfitRate stays nil while no TWD fund is
// invested.
func (b *Book) RefreshProfit(buyingRate decimal.Decimal) {
	profit := b.TwdValue(buyingRate) - b.RemainingTwdFund
	b.TwdProfit = &profit

	if b.RemainingTwdFund == 0 {
		b.ProfitRate = nil
		return
	}

	rate := decimal.NewFromInt(profit).
		Div(decimal.NewFromInt(b.RemainingTwdFund)).
		Round(4)
	b.ProfitRate = &rate
}

// ClearProfit resets the derived profit fields to unknown.
func (b *Book) ClearProfit() {
	b.TwdProfit = nil
	b.ProfitRate = nil
}

func (b *Book) recomputeBreakEvenPoint() {
	if b.Balance.IsZero() {
		b.BreakEvenPoint = decimal.Zero
		return
	}

	b.BreakEvenPoint = decimal.NewFromInt(b.RemainingTwdFund).
		Div(b.Balance).
		Round(4)
}
