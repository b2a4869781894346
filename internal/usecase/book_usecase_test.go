package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
	"github.com/vincent/forexledger/internal/usecase/mocks"
)

func TestBookUseCase_CreateBook(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateBookInput
		wantErr error
	}{
		{
			name:  "valid book",
			input: usecase.CreateBookInput{Name: "US dollar savings", Bank: "fubon", Currency: "usd", Creator: "user-1"},
		},
		{
			name:    "empty name",
			input:   usecase.CreateBookInput{Name: "   ", Bank: "FUBON", Currency: "USD", Creator: "user-1"},
			wantErr: domain.ErrInvalidBookName,
		},
		{
			name:    "unknown bank",
			input:   usecase.CreateBookInput{Name: "savings", Bank: "HSBC", Currency: "USD", Creator: "user-1"},
			wantErr: domain.ErrInvalidBank,
		},
		{
			name:    "twd is not a foreign currency",
			input:   usecase.CreateBookInput{Name: "savings", Bank: "FUBON", Currency: "TWD", Creator: "user-1"},
			wantErr: domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookRepo := mocks.NewMockBookRepository()
			uc := usecase.NewBookUseCase(bookRepo, mocks.NewMockExchangeRateRepository(), mocks.NewMockIDGenerator())

			book, err := uc.CreateBook(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if book.Bank != "FUBON" || book.Currency != "USD" {
				t.Errorf("expected normalized bank/currency, got %s/%s", book.Bank, book.Currency)
			}
			if !book.Balance.IsZero() {
				t.Errorf("new book must start empty, got balance %s", book.Balance)
			}

			stored, err := bookRepo.GetByID(context.Background(), book.ID)
			if err != nil {
				t.Fatalf("expected book persisted: %v", err)
			}
			if stored.Creator != "user-1" {
				t.Errorf("expected creator user-1, got %s", stored.Creator)
			}
		})
	}
}

func TestBookUseCase_GetBook_ValuesAtBuyingRate(t *testing.T) {
	bookRepo := mocks.NewMockBookRepository()
	rateRepo := mocks.NewMockExchangeRateRepository()
	uc := usecase.NewBookUseCase(bookRepo, rateRepo, mocks.NewMockIDGenerator())

	bookRepo.Add(&domain.Book{
		ID:               "book-a",
		Bank:             "FUBON",
		Currency:         "USD",
		Balance:          decimal.NewFromInt(100),
		RemainingTwdFund: 3000,
	})
	rateRepo.Add(&domain.ExchangeRate{
		Bank:       "FUBON",
		Currency:   "USD",
		BuyingRate: decimal.NewFromFloat(31.5),
	})

	detail, err := uc.GetBook(context.Background(), "book-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.TwdValue != 3150 {
		t.Errorf("expected twd value 3150, got %d", detail.TwdValue)
	}
	if detail.Book.TwdProfit == nil || *detail.Book.TwdProfit != 150 {
		t.Errorf("expected profit 150, got %v", detail.Book.TwdProfit)
	}
}

func TestBookUseCase_GetBook_MissingRate(t *testing.T) {
	bookRepo := mocks.NewMockBookRepository()
	uc := usecase.NewBookUseCase(bookRepo, mocks.NewMockExchangeRateRepository(), mocks.NewMockIDGenerator())

	profit := int64(999)
	bookRepo.Add(&domain.Book{
		ID:        "book-a",
		Bank:      "FUBON",
		Currency:  "USD",
		Balance:   decimal.NewFromInt(100),
		TwdProfit: &profit,
	})

	detail, err := uc.GetBook(context.Background(), "book-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.TwdValue != 0 || !detail.BuyingRate.IsZero() {
		t.Error("expected zero valuation without a rate")
	}
	if detail.Book.TwdProfit != nil {
		t.Error("stale profit must be cleared when no rate is known")
	}
}

func TestBookUseCase_GetBook_NotFound(t *testing.T) {
	uc := usecase.NewBookUseCase(mocks.NewMockBookRepository(), mocks.NewMockExchangeRateRepository(), mocks.NewMockIDGenerator())

	if _, err := uc.GetBook(context.Background(), "missing"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookUseCase_ListBooksByCreator(t *testing.T) {
	bookRepo := mocks.NewMockBookRepository()
	rateRepo := mocks.NewMockExchangeRateRepository()
	uc := usecase.NewBookUseCase(bookRepo, rateRepo, mocks.NewMockIDGenerator())

	bookRepo.Add(&domain.Book{
		ID:               "book-a",
		Bank:             "FUBON",
		Currency:         "USD",
		Creator:          "user-1",
		Balance:          decimal.NewFromInt(100),
		RemainingTwdFund: 3000,
	})
	bookRepo.Add(&domain.Book{
		ID:       "book-b",
		Bank:     "RICHART",
		Currency: "JPY",
		Creator:  "user-1",
		Balance:  decimal.NewFromInt(10000),
	})
	bookRepo.Add(&domain.Book{
		ID:       "book-c",
		Bank:     "FUBON",
		Currency: "USD",
		Creator:  "someone-else",
	})

	rateRepo.Add(&domain.ExchangeRate{
		Bank:       "FUBON",
		Currency:   "USD",
		BuyingRate: decimal.NewFromFloat(31.5),
	})

	details, err := uc.ListBooksByCreator(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(details) != 2 {
		t.Fatalf("expected 2 books, got %d", len(details))
	}

	byID := make(map[string]*usecase.BookDetail)
	for _, d := range details {
		byID[d.Book.ID] = d
	}

	if byID["book-a"].TwdValue != 3150 {
		t.Errorf("expected book-a valued at 3150, got %d", byID["book-a"].TwdValue)
	}
	// JPY has no rate seeded; the book still lists, unvalued.
	if byID["book-b"].TwdValue != 0 {
		t.Errorf("expected book-b unvalued, got %d", byID["book-b"].TwdValue)
	}
}
