package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prn-tf/package-catalog/internal/repository"
)

func TestCacheSetGet(t *testing.T) {
	cache := NewCache()
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get() = %q, want %q", got, "value")
	}
}

func TestCacheMiss(t *testing.T) {
	cache := NewCache()
	defer cache.Close()

	_, err := cache.Get(context.Background(), "missing")
	if !errors.Is(err, repository.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache()
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err := cache.Get(ctx, "key")
	if !errors.Is(err, repository.ErrCacheMiss) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheMiss", err)
	}
}

func TestCacheNoExpiry(t *testing.T) {
	cache := NewCache()
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := cache.Get(ctx, "key"); err != nil {
		t.Errorf("Get() error = %v, want nil for zero-TTL entry", err)
	}
}

func TestCacheDelete(t *testing.T) {
	cache := NewCache()
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := cache.Get(ctx, "key")
	if !errors.Is(err, repository.ErrCacheMiss) {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}
}

func TestCacheReturnsCopy(t *testing.T) {
	cache := NewCache()
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	got[0] = 'X'

	again, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(again) != "value" {
		t.Errorf("cached value mutated through returned slice: %q", again)
	}
}

func TestCacheCloseIdempotent(t *testing.T) {
	cache := NewCache()
	if err := cache.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
