// Package service implements credential login and session lookup on top
// of the user service and the token signer.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"admingeo/internal/platform/metrics"
	"admingeo/internal/platform/middleware"
	"admingeo/internal/user/models"
	dErrors "admingeo/pkg/domain-errors"
	"admingeo/pkg/platform/sentinel"
)

// Users is the slice of the user service the auth flow needs.
type Users interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
}

// TokenSigner issues access tokens for authenticated users.
type TokenSigner interface {
	Sign(userID int64) (string, error)
}

type Service struct {
	users   Users
	tokens  TokenSigner
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(users Users, tokens TokenSigner, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{users: users, tokens: tokens, logger: logger, metrics: m}
}

// Login verifies the credentials and returns the account together with
// a signed access token. Unknown email and wrong password produce the
// same unauthorized error.
func (s *Service) Login(ctx context.Context, dto models.LoginDto) (*models.LoginResult, error) {
	user, err := s.users.FindByEmailWithPassword(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLoginFailures()
			err := dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
			s.logger.WarnContext(ctx, "login failed", "email", dto.Email, "error", err)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "login failed", "email", dto.Email, "error", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		s.metrics.IncrementLoginFailures()
		err := dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		s.logger.WarnContext(ctx, "login failed", "email", dto.Email, "error", err)
		return nil, err
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "login failed", "email", dto.Email, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "sign token")
	}

	user.Password = ""
	return &models.LoginResult{User: user, Token: token}, nil
}

// CurrentUser resolves the account behind an authenticated request. A
// vanished account maps to unauthorized rather than not found so stale
// tokens read as session failures.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "user no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// ValidateUser rejects tokens whose account has been removed since the
// token was issued. It satisfies the auth middleware's user check.
func (s *Service) ValidateUser(ctx context.Context, claims *middleware.JWTClaims) error {
	if _, err := s.CurrentUser(ctx, claims.UserID); err != nil {
		return err
	}
	return nil
}
