package session

import (
	"context"
	"sync"
	"time"

	"github.com/eNoodles/user-service/internal/common/clock"
	"github.com/eNoodles/user-service/internal/common/constants"
	"github.com/eNoodles/user-service/internal/common/logger"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is the in-process session store used in standalone mode and
// tests. In-memory maps never expire on their own, so the expiry contract
// is kept with lazy expiry on read plus a background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	forward map[string]memoryEntry // sessionID -> userID
	active  map[string]memoryEntry // userID -> sessionID
	clock   clock.Clock
	log     *logger.Logger
	cancel  context.CancelFunc
}

func NewMemoryStore(ctx context.Context, clk clock.Clock, log *logger.Logger) *MemoryStore {
	sweepCtx, cancel := context.WithCancel(ctx)
	s := &MemoryStore{
		forward: make(map[string]memoryEntry),
		active:  make(map[string]memoryEntry),
		clock:   clk,
		log:     log,
		cancel:  cancel,
	}

	go s.sweep(sweepCtx)

	return s
}

func (s *MemoryStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.forward[sessionID]
	if !ok {
		return "", ErrNotFound
	}
	if s.clock.Now().After(entry.expiresAt) {
		delete(s.forward, sessionID)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) Active(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.active[userID]
	if !ok {
		return "", ErrNotFound
	}
	if s.clock.Now().After(entry.expiresAt) {
		delete(s.active, userID)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) Swap(ctx context.Context, userID, sessionID string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	var old string
	if entry, ok := s.active[userID]; ok {
		if !now.After(entry.expiresAt) {
			old = entry.value
		}
		delete(s.forward, entry.value)
	}

	expiresAt := now.Add(ttl)
	s.forward[sessionID] = memoryEntry{value: userID, expiresAt: expiresAt}
	s.active[userID] = memoryEntry{value: sessionID, expiresAt: expiresAt}

	return old, nil
}

func (s *MemoryStore) Remove(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.active[userID]; ok {
		delete(s.forward, entry.value)
		delete(s.active, userID)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.cancel()
	return nil
}

func (s *MemoryStore) sweep(ctx context.Context) {
	ticker := time.NewTicker(constants.MemoryStoreSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.clock.Now()
			removed := 0

			s.mu.Lock()
			for sid, entry := range s.forward {
				if now.After(entry.expiresAt) {
					delete(s.forward, sid)
					removed++
				}
			}
			for uid, entry := range s.active {
				if now.After(entry.expiresAt) {
					delete(s.active, uid)
				}
			}
			s.mu.Unlock()

			if removed > 0 {
				s.log.Debugf("memory session store swept %d expired entries", removed)
			}
		}
	}
}
