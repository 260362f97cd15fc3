package memory

import (
	"context"
	"errors"
	"testing"

	"ailearn-quiz-service/internal/domain"
)

func TestKVStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewKVStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected key-not-found, got %v", err)
	}

	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := store.Get(ctx, "k")
	if err != nil || value != "v" {
		t.Fatalf("expected v, got %q (%v)", value, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected key gone, got %v", err)
	}
}

func TestKVStoreQuota(t *testing.T) {
	ctx := context.Background()
	store := NewKVStoreWithCapacity(10)

	if err := store.Set(ctx, "k", "12345"); err != nil { // 6 bytes
		t.Fatalf("set within capacity: %v", err)
	}
	if err := store.Set(ctx, "k2", "123456789"); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	// Overwriting frees the old value first.
	if err := store.Set(ctx, "k", "123456789"); err != nil {
		t.Fatalf("overwrite within capacity: %v", err)
	}
	// Deleting releases capacity for new keys.
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Set(ctx, "k2", "1234567"); err != nil {
		t.Fatalf("set after delete: %v", err)
	}
}
