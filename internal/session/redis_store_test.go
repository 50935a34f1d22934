package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/eNoodles/user-service/internal/common/constants"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_SwapAndLookup(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	old, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second)
	if err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if old != "" {
		t.Errorf("first swap must report no superseded session, got %q", old)
	}

	uid, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if uid != "user-1" {
		t.Errorf("expected user-1, got %q", uid)
	}

	sid, err := store.Active(ctx, "user-1")
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if sid != "sid-1" {
		t.Errorf("expected sid-1, got %q", sid)
	}
}

func TestRedisStore_SwapSupersedes(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	old, err := store.Swap(ctx, "user-1", "sid-2", 10*time.Second)
	if err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if old != "sid-1" {
		t.Errorf("expected sid-1 reported as superseded, got %q", old)
	}

	// The script must drop the superseded forward entry in the same step.
	if _, err := store.Lookup(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("superseded forward entry must be gone, got %v", err)
	}

	sid, err := store.Active(ctx, "user-1")
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if sid != "sid-2" {
		t.Errorf("expected sid-2 active, got %q", sid)
	}
}

func TestRedisStore_KeysCarryTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	if ttl := mr.TTL(constants.SessionKeyPrefix + "sid-1"); ttl != 10*time.Second {
		t.Errorf("forward entry ttl = %v, want 10s", ttl)
	}
	if ttl := mr.TTL(constants.ActiveSessionKeyPrefix + "user-1"); ttl != 10*time.Second {
		t.Errorf("active slot ttl = %v, want 10s", ttl)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	mr.FastForward(11 * time.Second)

	if _, err := store.Lookup(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
	if _, err := store.Active(ctx, "user-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestRedisStore_SwapAfterExpiryReportsNoSuperseded(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	mr.FastForward(11 * time.Second)

	old, err := store.Swap(ctx, "user-1", "sid-2", 10*time.Second)
	if err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	if old != "" {
		t.Errorf("an expired session is not superseded, got %q", old)
	}
}

func TestRedisStore_Remove(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if _, err := store.Swap(ctx, "user-1", "sid-1", 10*time.Second); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	if err := store.Remove(ctx, "user-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := store.Lookup(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("forward entry must be gone after remove, got %v", err)
	}
	if _, err := store.Active(ctx, "user-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("active slot must be gone after remove, got %v", err)
	}

	// Removing a user with no session is a no-op, not an error.
	if err := store.Remove(ctx, "user-1"); err != nil {
		t.Errorf("remove of absent session failed: %v", err)
	}
}

func TestRedisStore_LookupUnknown(t *testing.T) {
	store, _ := newTestRedisStore(t)

	if _, err := store.Lookup(context.Background(), "never-issued"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Active(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
