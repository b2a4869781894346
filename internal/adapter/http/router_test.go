package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vincent/forexledger/internal/adapter/http/handler"
	apimiddleware "github.com/vincent/forexledger/internal/adapter/http/middleware"
	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Savings","bank":"FUBON","currency":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/books/",
		"GET /api/v1/books/",
		"GET /api/v1/books/{id}",
		"GET /api/v1/books/{id}/entries",
		"POST /api/v1/entries/",
		"GET /api/v1/rates/{bank}",
		"POST /api/v1/rates/{bank}/refresh",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler: &handler.HealthHandler{},
		BookHandler:   handler.NewBookHandler(&stubBookService{}),
		EntryHandler:  handler.NewEntryHandler(&stubEntryService{}),
		RateHandler:   handler.NewRateHandler(&stubRateService{}),
		Logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubBookService struct{}

func (stubBookService) CreateBook(ctx context.Context, input usecase.CreateBookInput) (*domain.Book, error) {
	return &domain.Book{ID: "book"}, nil
}

func (stubBookService) GetBook(ctx context.Context, id string) (*usecase.BookDetail, error) {
	return &usecase.BookDetail{Book: &domain.Book{ID: id}}, nil
}

func (stubBookService) ListBooksByCreator(ctx context.Context, creator string) ([]*usecase.BookDetail, error) {
	return []*usecase.BookDetail{}, nil
}

type stubEntryService struct{}

func (stubEntryService) CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.Entry, error) {
	return &domain.Entry{ID: "entry"}, nil
}

func (stubEntryService) ListEntriesByBook(ctx context.Context, input usecase.ListEntriesByBookInput) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

type stubRateService struct{}

func (stubRateService) RefreshRates(ctx context.Context, bank string) (int, error) {
	return 0, nil
}

func (stubRateService) ListRatesByBank(ctx context.Context, bank string) ([]*domain.ExchangeRate, error) {
	return []*domain.ExchangeRate{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
