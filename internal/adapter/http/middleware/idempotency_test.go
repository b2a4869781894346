package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

type idempotencyStoreStub struct {
	mu        sync.Mutex
	responses map[string][]byte
}

func newIdempotencyStoreStub() *idempotencyStoreStub {
	return &idempotencyStoreStub{responses: make(map[string][]byte)}
}

func (s *idempotencyStoreStub) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.responses[key]; ok {
		return true, cached, nil
	}
	return false, nil, nil
}

func (s *idempotencyStoreStub) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[key] = response
	return nil
}

func TestIdempotencyMiddlewareReplaysResponse(t *testing.T) {
	store := newIdempotencyStoreStub()
	mw := NewIdempotencyMiddleware(store)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"entry-1"}`))
	}))

	makeRequest := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := makeRequest()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := makeRequest()
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header on second response")
	}
	if second.Body.String() != `{"id":"entry-1"}` {
		t.Fatalf("expected replayed body, got %s", second.Body.String())
	}
}

func TestIdempotencyMiddlewareSkipsWithoutKey(t *testing.T) {
	store := newIdempotencyStoreStub()
	mw := NewIdempotencyMiddleware(store)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader("{}"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Fatalf("expected handler to run twice without key, ran %d times", calls)
	}
}

func TestIdempotencyMiddlewareIgnoresReads(t *testing.T) {
	store := newIdempotencyStoreStub()
	mw := NewIdempotencyMiddleware(store)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/books", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Fatalf("expected GET requests to bypass idempotency, ran %d times", calls)
	}
}
