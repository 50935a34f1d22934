package session

import (
	"context"
	"testing"
	"time"

	"github.com/eNoodles/user-service/internal/common/clock"
	"github.com/eNoodles/user-service/internal/common/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newTestMemoryStore(t *testing.T) (*MemoryStore, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryStore(context.Background(), clk, newTestLogger(t))
	t.Cleanup(func() { _ = store.Close() })
	return store, clk
}

func TestMemoryStore_SwapAndLookup(t *testing.T) {
	store, _ := newTestMemoryStore(t)
	ctx := context.Background()

	old, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second)
	if err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if old != "" {
		t.Errorf("expected no superseded session, got %q", old)
	}

	uid, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if uid != "user-1" {
		t.Errorf("expected user-1, got %q", uid)
	}

	active, err := store.Active(ctx, "user-1")
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != "sid-1" {
		t.Errorf("expected sid-1, got %q", active)
	}
}

func TestMemoryStore_SwapSupersedes(t *testing.T) {
	store, _ := newTestMemoryStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	old, err := store.Swap(ctx, "user-1", "sid-2", 10*time.Second)
	if err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if old != "sid-1" {
		t.Errorf("expected superseded sid-1, got %q", old)
	}

	// The displaced forward entry is gone outright.
	if _, err := store.Lookup(ctx, "sid-1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for superseded session, got %v", err)
	}

	active, err := store.Active(ctx, "user-1")
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if active != "sid-2" {
		t.Errorf("expected sid-2, got %q", active)
	}
}

func TestMemoryStore_LazyExpiry(t *testing.T) {
	store, clk := newTestMemoryStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	clk.Advance(11 * time.Second)

	if _, err := store.Lookup(ctx, "sid-1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
	if _, err := store.Active(ctx, "user-1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for active slot after expiry, got %v", err)
	}
}

func TestMemoryStore_SwapAfterExpiryReportsNoSuperseded(t *testing.T) {
	store, clk := newTestMemoryStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	clk.Advance(11 * time.Second)

	old, err := store.Swap(ctx, "user-1", "sid-2", 10*time.Second)
	if err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if old != "" {
		t.Errorf("expired session should not count as superseded, got %q", old)
	}
}

func TestMemoryStore_Remove(t *testing.T) {
	store, _ := newTestMemoryStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	if err := store.Remove(ctx, "user-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := store.Lookup(ctx, "sid-1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}
	if _, err := store.Active(ctx, "user-1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for active slot after remove, got %v", err)
	}
}
