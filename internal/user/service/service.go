package service

import (
	"context"
	"errors"

	"github.com/eNoodles/user-service/internal/common/clock"
	"github.com/eNoodles/user-service/internal/common/crypto"
	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
	"github.com/eNoodles/user-service/internal/common/logger"
	"github.com/eNoodles/user-service/internal/observability/metrics"
	"github.com/eNoodles/user-service/internal/user/domain"
	userrepo "github.com/eNoodles/user-service/internal/user/repository"
)

type UserService struct {
	repo  userrepo.Repository
	ids   crypto.IDGenerator
	clock clock.Clock
	log   *logger.Logger
}

func NewUserService(repo userrepo.Repository, ids crypto.IDGenerator, clk clock.Clock, log *logger.Logger) *UserService {
	return &UserService{
		repo:  repo,
		ids:   ids,
		clock: clk,
		log:   log,
	}
}

type CreateInput struct {
	Username string
	Password string
	Avatar   string
}

type UpdateInput struct {
	Username string
	Password string
	Avatar   string
}

func (s *UserService) Create(ctx context.Context, input CreateInput) (domain.User, error) {
	id, err := s.ids.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "create_user_id_generation_failed",
		}).Errorf("create user failed: %v", err)
		return domain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := domain.User{
		ID:        domain.ID(id),
		Username:  input.Username,
		Password:  input.Password,
		Avatar:    input.Avatar,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "create_user_username_exists",
			}).Warn("create user failed: username taken")
			return domain.User{}, commonerrors.ErrUsernameAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "create_user_failed",
		}).Errorf("create user failed: %v", err)
		return domain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.UsersCreated.Inc()

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "user_created",
	}).Info("user created")

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id domain.ID) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return domain.User{}, commonerrors.ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(id),
			"action":  "get_user_failed",
		}).Errorf("get user failed: %v", err)
		return domain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return domain.User{}, commonerrors.ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "find_user_failed",
		}).Errorf("find user failed: %v", err)
		return domain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return user, nil
}

// Update replaces a user's mutable fields. Only the owner may update its
// own record; the id never changes, even when the username does.
func (s *UserService) Update(ctx context.Context, requesterID, id domain.ID, input UpdateInput) (domain.User, error) {
	if requesterID != id {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":      string(id),
			"requester_id": string(requesterID),
			"action":       "update_user_not_owner",
		}).Warn("update user rejected: not the owner")
		return domain.User{}, ErrUpdateForbidden
	}

	user, err := s.repo.UpdateByID(ctx, id, userrepo.Update{
		Username: input.Username,
		Password: input.Password,
		Avatar:   input.Avatar,
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return domain.User{}, ErrUpdateForbidden
		}
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			return domain.User{}, commonerrors.ErrUsernameAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(id),
			"action":  "update_user_failed",
		}).Errorf("update user failed: %v", err)
		return domain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "user_updated",
	}).Info("user updated")

	return user, nil
}
