package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
)

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Bank             string           `json:"bank"`
	Currency         string           `json:"currency"`
	Balance          decimal.Decimal  `json:"balance"`
	RemainingTwdFund int64            `json:"remaining_twd_fund"`
	BreakEvenPoint   decimal.Decimal  `json:"break_even_point"`
	TwdProfit        *int64           `json:"twd_profit"`
	ProfitRate       *decimal.Decimal `json:"profit_rate"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// BookFromDomain converts a domain book to a response.
func BookFromDomain(b *domain.Book) *BookResponse {
	return &BookResponse{
		ID:               b.ID,
		Name:             b.Name,
		Bank:             b.Bank,
		Currency:         b.Currency,
		Balance:          b.Balance,
		RemainingTwdFund: b.RemainingTwdFund,
		BreakEvenPoint:   b.BreakEvenPoint,
		TwdProfit:        b.TwdProfit,
		ProfitRate:       b.ProfitRate,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// BookDetailResponse is a book valued at its bank's current buying rate.
type BookDetailResponse struct {
	BookResponse

	BuyingRate decimal.Decimal `json:"buying_rate"`
	TwdValue   int64           `json:"twd_value"`
}

// BookDetailFromUseCase converts a valued book to a response.
func BookDetailFromUseCase(d *usecase.BookDetail) *BookDetailResponse {
	return &BookDetailResponse{
		BookResponse: *BookFromDomain(d.Book),
		BuyingRate:   d.BuyingRate,
		TwdValue:     d.TwdValue,
	}
}

// BookDetailsFromUseCase converts valued books to responses.
func BookDetailsFromUseCase(details []*usecase.BookDetail) []*BookDetailResponse {
	result := make([]*BookDetailResponse, len(details))
	for i, d := range details {
		result[i] = BookDetailFromUseCase(d)
	}
	return result
}

// ListBooksResponse wraps a book listing.
type ListBooksResponse struct {
	Books []*BookDetailResponse `json:"books"`
	Total int64                 `json:"total"`
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID                       string           `json:"id"`
	BookID                   string           `json:"book_id"`
	TransactionType          string           `json:"transaction_type"`
	ForeignAmount            decimal.Decimal  `json:"foreign_amount"`
	TwdAmount                *int64           `json:"twd_amount"`
	RelatedBookID            *string          `json:"related_book_id"`
	RelatedBookForeignAmount *decimal.Decimal `json:"related_book_foreign_amount"`
	Creator                  string           `json:"creator"`
	CreatedAt                time.Time        `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:                       e.ID,
		BookID:                   e.BookID,
		TransactionType:          string(e.TransactionType),
		ForeignAmount:            e.ForeignAmount,
		TwdAmount:                e.TwdAmount,
		RelatedBookID:            e.RelatedBookID,
		RelatedBookForeignAmount: e.RelatedBookForeignAmount,
		Creator:                  e.Creator,
		CreatedAt:                e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps an entry listing.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// RateResponse represents an exchange rate in API responses.
type RateResponse struct {
	Bank        string          `json:"bank"`
	Currency    string          `json:"currency"`
	BuyingRate  decimal.Decimal `json:"buying_rate"`
	SellingRate decimal.Decimal `json:"selling_rate"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RateFromDomain converts a domain rate to a response.
func RateFromDomain(r *domain.ExchangeRate) *RateResponse {
	return &RateResponse{
		Bank:        r.Bank,
		Currency:    r.Currency,
		BuyingRate:  r.BuyingRate,
		SellingRate: r.SellingRate,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RatesFromDomain converts domain rates to responses.
func RatesFromDomain(rates []*domain.ExchangeRate) []*RateResponse {
	result := make([]*RateResponse, len(rates))
	for i, r := range rates {
		result[i] = RateFromDomain(r)
	}
	return result
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse represents a login response.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
