package usecase

import (
	"context"
	"time"

	"github.com/vincent/forexledger/internal/domain"
)

// BookRepository defines data access for books.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	GetByCreator(ctx context.Context, creator string) ([]*domain.Book, error)
	GetByIDs(ctx context.Context, tx Transaction, ids []string) ([]*domain.Book, error)
	SaveAll(ctx context.Context, tx Transaction, books []*domain.Book) error
}

// EntryRepository defines data access for entries. Entries are append-only.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	CreateBatch(ctx context.Context, tx Transaction, entries []*domain.Entry) error
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*domain.Entry, error)
}

// ExchangeRateRepository defines data access for the persisted rate table.
type ExchangeRateRepository interface {
	Upsert(ctx context.Context, rates []*domain.ExchangeRate) error
	GetByPair(ctx context.Context, pair domain.RatePair) (*domain.ExchangeRate, error)
	GetByPairs(ctx context.Context, pairs []domain.RatePair) (map[domain.RatePair]*domain.ExchangeRate, error)
	ListByBank(ctx context.Context, bank string) ([]*domain.ExchangeRate, error)
}

// RateSource fetches a bank's published exchange rates from the outside
// world.
type RateSource interface {
	FetchRates(ctx context.Context, bank string) ([]*domain.ExchangeRate, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
