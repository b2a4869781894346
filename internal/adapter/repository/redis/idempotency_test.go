package redis

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestIdempotencyStoreFirstRequest(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	seen, cached, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if seen {
		t.Fatal("first request must not be marked seen")
	}
	if cached != nil {
		t.Fatalf("unexpected cached response %q", cached)
	}
}

func TestIdempotencyStoreReplaysResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	response := []byte(`{"id":"entry-1"}`)

	if _, _, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if err := store.Update(ctx, "req-1", response, time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	seen, cached, err := store.CheckAndSet(ctx, "req-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !seen {
		t.Fatal("repeated request must be marked seen")
	}
	if !bytes.Equal(cached, response) {
		t.Fatalf("expected stored response, got %q", cached)
	}
}
