package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/infrastructure/metrics"
)

// EntryUseCase handles entry creation and listing.
type EntryUseCase struct {
	txManager TransactionManager
	bookRepo  BookRepository
	entryRepo EntryRepository
	rateRepo  ExchangeRateRepository
	idGen     IDGenerator
	metrics   *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	bookRepo BookRepository,
	entryRepo EntryRepository,
	rateRepo ExchangeRateRepository,
	idGen IDGenerator,
) *EntryUseCase {
	return &EntryUseCase{
		txManager: txManager,
		bookRepo:  bookRepo,
		entryRepo: entryRepo,
		rateRepo:  rateRepo,
		idGen:     idGen,
	}
}

// WithMetrics attaches operation counters. Safe to skip in tests.
func (uc *EntryUseCase) WithMetrics(m *metrics.Metrics) *EntryUseCase {
	uc.metrics = m
	return uc
}

// CreateEntryInput represents input for creating an entry.
type CreateEntryInput struct {
	TwdAmount                *int64
	RelatedBookID            *string
	RelatedBookForeignAmount *decimal.Decimal
	BookID                   string
	Creator                  string
	TransactionType          domain.TransactionType
	ForeignAmount            decimal.Decimal
}

// CreateEntry records a money movement against a book as one atomic unit of
// work. A cross-book transfer expands into two mirrored entries; both books
// are reloaded, mutated and saved inside the same transaction, so either both
// halves commit or neither does.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	now := time.Now().UTC()

	primary := &domain.Entry{
		ID:                       uc.idGen.Generate(),
		BookID:                   input.BookID,
		TransactionType:          input.TransactionType,
		ForeignAmount:            input.ForeignAmount,
		TwdAmount:                input.TwdAmount,
		RelatedBookID:            input.RelatedBookID,
		RelatedBookForeignAmount: input.RelatedBookForeignAmount,
		Creator:                  input.Creator,
		CreatedAt:                now,
	}

	// Reject malformed field combinations before touching storage.
	if err := domain.ValidateEntry(primary); err != nil {
		if uc.metrics != nil {
			uc.metrics.EntryErrors.WithLabelValues("validation").Inc()
		}
		return nil, err
	}

	bookIDs := []string{primary.BookID}
	if primary.HasRelatedBook() {
		bookIDs = append(bookIDs, *primary.RelatedBookID)
		sort.Strings(bookIDs)
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	books, err := uc.bookRepo.GetByIDs(ctx, tx, bookIDs)
	if err != nil {
		return nil, err
	}

	if len(books) != len(bookIDs) {
		return nil, domain.ErrBookNotFound
	}

	bookMap := make(map[string]*domain.Book, len(books))
	for _, b := range books {
		bookMap[b.ID] = b
	}

	entries := []*domain.Entry{primary}

	if primary.HasRelatedBook() {
		transferOutBook := bookMap[primary.BookID]
		if primary.TransactionType.IsTransferIn() {
			transferOutBook = bookMap[*primary.RelatedBookID]
		}

		mirror, err := domain.RelatedBookEntry(transferOutBook, primary)
		if err != nil {
			if uc.metrics != nil {
				uc.metrics.EntryErrors.WithLabelValues("expansion").Inc()
			}
			return nil, err
		}
		mirror.ID = uc.idGen.Generate()

		// Both halves of one physical transfer report the same TWD value.
		if primary.TwdAmount == nil && mirror.TwdAmount != nil {
			twd := *mirror.TwdAmount
			primary.TwdAmount = &twd
		}

		entries = append(entries, mirror)
	}

	if len(entries) == 1 {
		err = uc.entryRepo.Create(ctx, tx, primary)
	} else {
		err = uc.entryRepo.CreateBatch(ctx, tx, entries)
	}
	if err != nil {
		return nil, err
	}

	uc.updateMetadata(bookMap, entries)

	if err := uc.refreshProfits(ctx, books); err != nil {
		return nil, err
	}

	for _, b := range books {
		b.UpdatedAt = now
	}

	if err := uc.bookRepo.SaveAll(ctx, tx, books); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(primary.TransactionType)).Inc()
		uc.metrics.EntryDuration.Observe(time.Since(now).Seconds())
		if len(entries) == 2 {
			uc.metrics.TransfersLinked.Inc()
		}
	}

	return primary, nil
}

// updateMetadata recomputes balance, TWD fund and break-even point for every
// book an entry touched. Each entry is applied exactly once.
func (uc *EntryUseCase) updateMetadata(bookMap map[string]*domain.Book, entries []*domain.Entry) {
	if len(entries) == 2 {
		outEntry, inEntry := entries[0], entries[1]
		if outEntry.TransactionType.IsTransferIn() {
			outEntry, inEntry = inEntry, outEntry
		}

		domain.NewDoubleBookUpdater(bookMap[outEntry.BookID], bookMap[inEntry.BookID]).
			Update(outEntry, inEntry)
		return
	}

	domain.NewSingleBookUpdater(bookMap[entries[0].BookID]).Update(entries[0])
}

// refreshProfits recomputes stored profit fields against the cached rate
// table. Books whose pair has no known rate keep nil profit fields.
func (uc *EntryUseCase) refreshProfits(ctx context.Context, books []*domain.Book) error {
	pairs := make([]domain.RatePair, 0, len(books))
	for _, b := range books {
		pairs = append(pairs, b.RatePair())
	}

	rates, err := uc.rateRepo.GetByPairs(ctx, pairs)
	if err != nil {
		return err
	}

	for _, b := range books {
		if rate, ok := rates[b.RatePair()]; ok {
			b.RefreshProfit(rate.BuyingRate)
		}
	}

	return nil
}

// ListEntriesByBookInput represents input for listing a book's entries.
type ListEntriesByBookInput struct {
	BookID string
	Limit  int
	Offset int
}

// ListEntriesByBook lists entries for a book, newest first.
func (uc *EntryUseCase) ListEntriesByBook(ctx context.Context, input ListEntriesByBookInput) ([]*domain.Entry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.entryRepo.ListByBook(ctx, input.BookID, input.Limit, input.Offset)
}
