package dto

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
)

// CreateBookRequest represents a request to create a book.
type CreateBookRequest struct {
	Name     string `json:"name"`
	Bank     string `json:"bank"`
	Currency string `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBookRequest) ToUseCaseInput(creator string) usecase.CreateBookInput {
	return usecase.CreateBookInput{
		Name:     r.Name,
		Bank:     r.Bank,
		Currency: r.Currency,
		Creator:  creator,
	}
}

// CreateEntryRequest represents a request to record a money movement.
type CreateEntryRequest struct {
	BookID                   string           `json:"book_id"`
	TransactionType          string           `json:"transaction_type"`
	ForeignAmount            decimal.Decimal  `json:"foreign_amount"`
	TwdAmount                *int64           `json:"twd_amount,omitempty"`
	RelatedBookID            *string          `json:"related_book_id,omitempty"`
	RelatedBookForeignAmount *decimal.Decimal `json:"related_book_foreign_amount,omitempty"`
}

// Validate rejects requests that cannot possibly describe a movement before
// they reach the domain validator.
func (r *CreateEntryRequest) Validate() error {
	if r.BookID == "" {
		return errors.New("book_id is required")
	}

	if !domain.TransactionType(r.TransactionType).IsValid() {
		return errors.New("unknown transaction_type")
	}

	if !r.ForeignAmount.IsPositive() {
		return errors.New("foreign_amount must be positive")
	}

	return nil
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput(creator string) usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		BookID:                   r.BookID,
		TransactionType:          domain.TransactionType(r.TransactionType),
		ForeignAmount:            r.ForeignAmount,
		TwdAmount:                r.TwdAmount,
		RelatedBookID:            r.RelatedBookID,
		RelatedBookForeignAmount: r.RelatedBookForeignAmount,
		Creator:                  creator,
	}
}

// RegisterRequest represents a request to register a user.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
