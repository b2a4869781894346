package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/infrastructure/metrics"
)

// BookUseCase handles book business logic.
type BookUseCase struct {
	bookRepo BookRepository
	rateRepo ExchangeRateRepository
	idGen    IDGenerator
	metrics  *metrics.Metrics
}

// NewBookUseCase creates a new BookUseCase.
func NewBookUseCase(bookRepo BookRepository, rateRepo ExchangeRateRepository, idGen IDGenerator) *BookUseCase {
	return &BookUseCase{
		bookRepo: bookRepo,
		rateRepo: rateRepo,
		idGen:    idGen,
	}
}

// WithMetrics attaches operation counters. Safe to skip in tests.
func (uc *BookUseCase) WithMetrics(m *metrics.Metrics) *BookUseCase {
	uc.metrics = m
	return uc
}

// CreateBookInput represents input for creating a book.
type CreateBookInput struct {
	Name     string
	Bank     string
	Currency string
	Creator  string
}

// CreateBook creates a new empty book.
func (uc *BookUseCase) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	if err := domain.ValidateBookName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateBank(input.Bank); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	book := &domain.Book{
		ID:             uc.idGen.Generate(),
		Name:           strings.TrimSpace(input.Name),
		Bank:           strings.ToUpper(strings.TrimSpace(input.Bank)),
		Currency:       strings.ToUpper(strings.TrimSpace(input.Currency)),
		Balance:        decimal.Zero,
		BreakEvenPoint: decimal.Zero,
		Creator:        input.Creator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BooksCreated.Inc()
		uc.metrics.BookOperations.WithLabelValues("create").Inc()
	}

	return book, nil
}

// BookDetail is a book valued in TWD at the current buying rate.
type BookDetail struct {
	Book       *domain.Book
	BuyingRate decimal.Decimal
	TwdValue   int64
}

// GetBook retrieves a book and values it at the bank's current buying rate.
// A missing rate leaves the valuation and profit fields at their zero values.
func (uc *BookUseCase) GetBook(ctx context.Context, id string) (*BookDetail, error) {
	book, err := uc.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &BookDetail{Book: book}

	rate, err := uc.rateRepo.GetByPair(ctx, book.RatePair())
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			book.ClearProfit()
			return detail, nil
		}

		return nil, err
	}

	detail.BuyingRate = rate.BuyingRate
	detail.TwdValue = book.TwdValue(rate.BuyingRate)
	book.RefreshProfit(rate.BuyingRate)

	if uc.metrics != nil {
		uc.metrics.BookOperations.WithLabelValues("get").Inc()
	}

	return detail, nil
}

// ListBooksByCreator lists the creator's books, each valued at its bank's
// current buying rate via one batch lookup.
func (uc *BookUseCase) ListBooksByCreator(ctx context.Context, creator string) ([]*BookDetail, error) {
	books, err := uc.bookRepo.GetByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.RatePair]bool)

	var pairs []domain.RatePair
	for _, b := range books {
		if !seen[b.RatePair()] {
			seen[b.RatePair()] = true
			pairs = append(pairs, b.RatePair())
		}
	}

	rates, err := uc.rateRepo.GetByPairs(ctx, pairs)
	if err != nil {
		return nil, err
	}

	details := make([]*BookDetail, 0, len(books))
	for _, b := range books {
		detail := &BookDetail{Book: b}
		if rate, ok := rates[b.RatePair()]; ok {
			detail.BuyingRate = rate.BuyingRate
			detail.TwdValue = b.TwdValue(rate.BuyingRate)
			b.RefreshProfit(rate.BuyingRate)
		} else {
			b.ClearProfit()
		}

		details = append(details, detail)
	}

	return details, nil
}
