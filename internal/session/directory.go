package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/eNoodles/user-service/internal/common/crypto"
	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
	"github.com/eNoodles/user-service/internal/common/logger"
	"github.com/eNoodles/user-service/internal/observability/metrics"
)

// Identity is a validated session: the token presented and the user it
// resolves to.
type Identity struct {
	SessionID string
	UserID    string
}

// Directory owns the token-to-user mapping and enforces that at most one
// session is active per user. A new session for a user silently displaces
// the previous one; the displaced token fails validation immediately, even
// before its own entry expires.
type Directory struct {
	store Store
	ids   crypto.IDGenerator
	ttl   time.Duration
	log   *logger.Logger

	mu        sync.Mutex
	userLocks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewDirectory(store Store, ids crypto.IDGenerator, ttl time.Duration, log *logger.Logger) *Directory {
	return &Directory{
		store:     store,
		ids:       ids,
		ttl:       ttl,
		log:       log,
		userLocks: make(map[string]*userLock),
	}
}

// lockUser serializes Create/Invalidate per user; different users never
// contend with each other. Entries are refcounted and dropped once the
// last holder releases, so the map only ever holds users with an
// operation in flight.
func (d *Directory) lockUser(userID string) func() {
	d.mu.Lock()
	lock, ok := d.userLocks[userID]
	if !ok {
		lock = &userLock{}
		d.userLocks[userID] = lock
	}
	lock.refs++
	d.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		d.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(d.userLocks, userID)
		}
		d.mu.Unlock()
	}
}

// Create issues a new session for an already-authenticated user. Whatever
// session previously occupied the user's active slot is dropped
// unconditionally. The returned token is the only one that will validate
// for the user until the next Create or expiry.
func (d *Directory) Create(ctx context.Context, userID string) (string, error) {
	unlock := d.lockUser(userID)
	defer unlock()

	sessionID, err := d.ids.NewID()
	if err != nil {
		d.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "session_id_generation_failed",
		}).Errorf("session create failed: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	superseded, err := d.store.Swap(ctx, userID, sessionID, d.ttl)
	if err != nil {
		d.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "session_store_swap_failed",
		}).Errorf("session create failed: %v", err)
		return "", commonerrors.ErrSessionStoreUnavailable.WithCause(err)
	}

	metrics.SessionsCreated.Inc()
	if superseded != "" {
		metrics.SessionsSuperseded.Inc()
	}

	d.log.WithFields(ctx, logger.Fields{
		"user_id":    userID,
		"superseded": superseded != "",
		"action":     "session_created",
	}).Info("session created")

	return sessionID, nil
}

// Validate resolves a token to an identity. The forward entry alone is not
// enough: the user's active slot must point back at this exact token,
// otherwise the session was superseded by a later login and is dead even if
// its own entry still exists.
func (d *Directory) Validate(ctx context.Context, sessionID string) (Identity, error) {
	metrics.SessionValidationsTotal.Inc()

	if sessionID == "" {
		metrics.SessionValidationsRejected.Inc()
		return Identity{}, commonerrors.ErrUnauthenticated
	}

	userID, err := d.store.Lookup(ctx, sessionID)
	if err != nil {
		return Identity{}, d.rejectOrFail(ctx, "session_lookup", err)
	}

	active, err := d.store.Active(ctx, userID)
	if err != nil {
		return Identity{}, d.rejectOrFail(ctx, "active_session_lookup", err)
	}

	if active != sessionID {
		metrics.SessionValidationsRejected.Inc()
		return Identity{}, commonerrors.ErrUnauthenticated
	}

	return Identity{SessionID: sessionID, UserID: userID}, nil
}

// Invalidate drops whatever session is active for the user, if any.
func (d *Directory) Invalidate(ctx context.Context, userID string) error {
	unlock := d.lockUser(userID)
	defer unlock()

	if err := d.store.Remove(ctx, userID); err != nil {
		d.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "session_remove_failed",
		}).Errorf("session invalidate failed: %v", err)
		return commonerrors.ErrSessionStoreUnavailable.WithCause(err)
	}

	return nil
}

// rejectOrFail keeps storage faults distinct from "no session": a store
// error is 503, never 401.
func (d *Directory) rejectOrFail(ctx context.Context, op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		metrics.SessionValidationsRejected.Inc()
		return commonerrors.ErrUnauthenticated
	}

	d.log.WithFields(ctx, logger.Fields{
		"operation": op,
		"action":    "session_store_error",
	}).Errorf("session validation failed: %v", err)
	return commonerrors.ErrSessionStoreUnavailable.WithCause(err)
}
