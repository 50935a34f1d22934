package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that a key is absent from the store: never issued,
// expired, or already removed. Any other error from a Store is an
// infrastructure fault and must not be read as "no session".
var ErrNotFound = errors.New("session: not found")

// Store persists the two key families backing the directory:
// sessions:<sessionID> -> userID and userSessions:<userID> -> sessionID.
//
// Swap and Remove update both families in one atomic step so that a
// concurrent reader sees either the old pair or the new pair, never a
// half-applied state.
type Store interface {
	// Lookup resolves a session id to its user id via the forward entry.
	Lookup(ctx context.Context, sessionID string) (string, error)

	// Active returns the session id currently occupying the active slot
	// for the user.
	Active(ctx context.Context, userID string) (string, error)

	// Swap installs sessionID as the user's active session with the given
	// ttl, deleting the forward entry of whatever session previously held
	// the slot. Returns the superseded session id, or "" if none.
	Swap(ctx context.Context, userID, sessionID string, ttl time.Duration) (string, error)

	// Remove deletes the user's active session and its forward entry.
	Remove(ctx context.Context, userID string) error

	Close() error
}
