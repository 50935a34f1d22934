package service

import (
	"context"
	"crypto/subtle"
	"errors"

	commonerrors "github.com/eNoodles/user-service/internal/common/errors"
	"github.com/eNoodles/user-service/internal/common/logger"
	"github.com/eNoodles/user-service/internal/session"
	userrepo "github.com/eNoodles/user-service/internal/user/repository"
)

type AuthService struct {
	users    userrepo.Repository
	sessions *session.Directory
	log      *logger.Logger
}

func NewAuthService(users userrepo.Repository, sessions *session.Directory, log *logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	SessionID string
}

// Login verifies credentials and opens a session. Any session the user
// already held is displaced by the new one.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_unknown_user",
			}).Warn("login failed: unknown user")
			return LoginResult{}, ErrUnknownUser
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(input.Password)) != 1 {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_wrong_password",
		}).Warn("login failed: wrong password")
		return LoginResult{}, ErrWrongPassword
	}

	sessionID, err := s.sessions.Create(ctx, string(user.ID))
	if err != nil {
		return LoginResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return LoginResult{SessionID: sessionID}, nil
}
