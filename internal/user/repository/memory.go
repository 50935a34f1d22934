package repository

import (
	"context"
	"sync"

	"github.com/eNoodles/user-service/internal/user/domain"
)

// MemoryRepository is the in-process user store for standalone mode and
// tests. Uniqueness on username is enforced the same way the database
// backend does it, so callers see identical signals from both.
type MemoryRepository struct {
	mu           sync.RWMutex
	byID         map[domain.ID]domain.User
	idByUsername map[string]domain.ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:         make(map[domain.ID]domain.User),
		idByUsername: make(map[string]domain.ID),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.idByUsername[user.Username]; exists {
		return ErrUsernameAlreadyExists
	}

	r.byID[user.ID] = user
	r.idByUsername[user.Username] = user.ID
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByUsername[username]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id domain.ID, fields Update) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	if owner, taken := r.idByUsername[fields.Username]; taken && owner != id {
		return domain.User{}, ErrUsernameAlreadyExists
	}

	// A changed username frees the old one for reuse. The id never moves.
	if user.Username != fields.Username {
		delete(r.idByUsername, user.Username)
		r.idByUsername[fields.Username] = id
	}

	user.Username = fields.Username
	user.Password = fields.Password
	user.Avatar = fields.Avatar
	r.byID[id] = user

	return user, nil
}
