package repository

import (
	"context"
	"errors"

	"github.com/eNoodles/user-service/internal/user/domain"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Update carries the full replacement field set; the protocol has no
// partial updates. The id is immutable and not part of the set.
type Update struct {
	Username string
	Password string
	Avatar   string
}

// Repository is the user record collaborator. Username uniqueness is
// enforced at the storage layer; ErrUsernameAlreadyExists is its signal.
type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdateByID(ctx context.Context, id domain.ID, fields Update) (domain.User, error)
}
