package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
)

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mu    sync.RWMutex
	books map[string]*domain.Book

	CreateFunc       func(ctx context.Context, book *domain.Book) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Book, error)
	GetByCreatorFunc func(ctx context.Context, creator string) ([]*domain.Book, error)
	GetByIDsFunc     func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Book, error)
	SaveAllFunc      func(ctx context.Context, tx usecase.Transaction, books []*domain.Book) error

	SavedBooks []*domain.Book
}

func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{
		books: make(map[string]*domain.Book),
	}
}

func (m *MockBookRepository) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, book)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[book.ID] = book
	return nil
}

func (m *MockBookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	book, ok := m.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	return book, nil
}

func (m *MockBookRepository) GetByCreator(ctx context.Context, creator string) ([]*domain.Book, error) {
	if m.GetByCreatorFunc != nil {
		return m.GetByCreatorFunc(ctx, creator)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var books []*domain.Book
	for _, b := range m.books {
		if b.Creator == creator {
			books = append(books, b)
		}
	}
	return books, nil
}

func (m *MockBookRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Book, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var books []*domain.Book
	for _, id := range ids {
		if b, ok := m.books[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

func (m *MockBookRepository) SaveAll(ctx context.Context, tx usecase.Transaction, books []*domain.Book) error {
	if m.SaveAllFunc != nil {
		return m.SaveAllFunc(ctx, tx, books)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range books {
		m.books[b.ID] = b
	}
	m.SavedBooks = append(m.SavedBooks, books...)
	return nil
}

// Add seeds a book without going through Create.
func (m *MockBookRepository) Add(book *domain.Book) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[book.ID] = book
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateFunc      func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	CreateBatchFunc func(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error
	ListByBookFunc  func(ctx context.Context, bookID string, limit, offset int) ([]*domain.Entry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, entries)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MockEntryRepository) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*domain.Entry, error) {
	if m.ListByBookFunc != nil {
		return m.ListByBookFunc(ctx, bookID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.BookID == bookID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// All returns every persisted entry.
func (m *MockEntryRepository) All() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Entry(nil), m.entries...)
}

// MockExchangeRateRepository is a mock implementation of
// ExchangeRateRepository.
type MockExchangeRateRepository struct {
	mu    sync.RWMutex
	rates map[domain.RatePair]*domain.ExchangeRate

	UpsertFunc     func(ctx context.Context, rates []*domain.ExchangeRate) error
	GetByPairFunc  func(ctx context.Context, pair domain.RatePair) (*domain.ExchangeRate, error)
	GetByPairsFunc func(ctx context.Context, pairs []domain.RatePair) (map[domain.RatePair]*domain.ExchangeRate, error)
	ListByBankFunc func(ctx context.Context, bank string) ([]*domain.ExchangeRate, error)
}

func NewMockExchangeRateRepository() *MockExchangeRateRepository {
	return &MockExchangeRateRepository{
		rates: make(map[domain.RatePair]*domain.ExchangeRate),
	}
}

func (m *MockExchangeRateRepository) Upsert(ctx context.Context, rates []*domain.ExchangeRate) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, rates)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rates {
		m.rates[r.Pair()] = r
	}
	return nil
}

func (m *MockExchangeRateRepository) GetByPair(ctx context.Context, pair domain.RatePair) (*domain.ExchangeRate, error) {
	if m.GetByPairFunc != nil {
		return m.GetByPairFunc(ctx, pair)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rate, ok := m.rates[pair]
	if !ok {
		return nil, domain.ErrRateNotFound
	}
	return rate, nil
}

func (m *MockExchangeRateRepository) GetByPairs(ctx context.Context, pairs []domain.RatePair) (map[domain.RatePair]*domain.ExchangeRate, error) {
	if m.GetByPairsFunc != nil {
		return m.GetByPairsFunc(ctx, pairs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[domain.RatePair]*domain.ExchangeRate)
	for _, p := range pairs {
		if r, ok := m.rates[p]; ok {
			result[p] = r
		}
	}
	return result, nil
}

func (m *MockExchangeRateRepository) ListByBank(ctx context.Context, bank string) ([]*domain.ExchangeRate, error) {
	if m.ListByBankFunc != nil {
		return m.ListByBankFunc(ctx, bank)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rates []*domain.ExchangeRate
	for _, r := range m.rates {
		if r.Bank == bank {
			rates = append(rates, r)
		}
	}
	return rates, nil
}

// Add seeds a rate without going through Upsert.
func (m *MockExchangeRateRepository) Add(rate *domain.ExchangeRate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[rate.Pair()] = rate
}

// MockTransaction is a mock transaction recording commit/rollback calls.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockRateSource is a mock implementation of RateSource.
type MockRateSource struct {
	FetchRatesFunc func(ctx context.Context, bank string) ([]*domain.ExchangeRate, error)
}

func NewMockRateSource() *MockRateSource {
	return &MockRateSource{}
}

func (m *MockRateSource) FetchRates(ctx context.Context, bank string) ([]*domain.ExchangeRate, error) {
	if m.FetchRatesFunc != nil {
		return m.FetchRatesFunc(ctx, bank)
	}
	return nil, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
