// Package service manages user accounts: listing, lookup, creation with
// password hashing, partial update, and soft delete.
package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"admingeo/internal/platform/metrics"
	"admingeo/internal/user/models"
	dErrors "admingeo/pkg/domain-errors"
	"admingeo/pkg/platform/sentinel"
)

// Store is the user persistence surface the service needs.
type Store interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	SoftDelete(ctx context.Context, id int64) error
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: m}
}

func (s *Service) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list users failed", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "user with id %d not found", id)
		s.logger.ErrorContext(ctx, "get user by id failed", "id", id, "error", err)
		return nil, err
	}
	return user, nil
}

// FindByEmailWithPassword exposes the credential row for the login path.
func (s *Service) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	return s.store.FindByEmailWithPassword(ctx, email)
}

// CreateUser enforces email uniqueness and stores a bcrypt hash of the
// submitted password. The check-then-insert pair is not transactional.
func (s *Service) CreateUser(ctx context.Context, dto models.UserDto) (*models.User, error) {
	_, err := s.store.FindByEmail(ctx, dto.Email)
	if err == nil {
		err := dErrors.New(dErrors.CodeBadRequest, "user already exists")
		s.logger.ErrorContext(ctx, "create user failed", "email", dto.Email, "error", err)
		return nil, err
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "create user failed", "email", dto.Email, "error", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.ErrorContext(ctx, "create user failed", "email", dto.Email, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "hash password")
	}

	user, err := s.store.Insert(ctx, &models.User{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Email:       dto.Email,
		PhoneNumber: dto.PhoneNumber,
		Password:    string(hash),
	})
	if err != nil {
		// The pre-check races with concurrent creates; the unique
		// index on live emails is the backstop.
		if errors.Is(err, sentinel.ErrConflict) {
			err = dErrors.New(dErrors.CodeBadRequest, "user already exists")
		}
		s.logger.ErrorContext(ctx, "create user failed", "email", dto.Email, "error", err)
		return nil, err
	}
	s.metrics.IncrementUsersCreated()
	return user, nil
}

// UpdateUser overlays the partial payload on the current row. A new
// password is re-hashed before the write.
func (s *Service) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "user with id %d not found", id)
		s.logger.ErrorContext(ctx, "update user failed", "id", id, "error", err)
		return nil, err
	}

	// FindByID strips the hash; reload it before any overlay so the
	// full-record update does not blank the stored credential.
	if withPassword, err := s.store.FindByEmailWithPassword(ctx, current.Email); err == nil {
		current.Password = withPassword.Password
	}

	if upd.FirstName != nil {
		current.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		current.LastName = *upd.LastName
	}
	if upd.Email != nil {
		current.Email = *upd.Email
	}
	if upd.PhoneNumber != nil {
		current.PhoneNumber = *upd.PhoneNumber
	}
	if upd.IsActive != nil {
		current.IsActive = *upd.IsActive
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.ErrorContext(ctx, "update user failed", "id", id, "error", err)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "hash password")
		}
		current.Password = string(hash)
	}

	user, err := s.store.Update(ctx, current)
	if err != nil {
		err = translateNotFound(err, "user with id %d not found", id)
		s.logger.ErrorContext(ctx, "update user failed", "id", id, "error", err)
		return nil, err
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		err = translateNotFound(err, "user with id %d not found", id)
		s.logger.ErrorContext(ctx, "delete user failed", "id", id, "error", err)
		return err
	}
	return nil
}

func translateNotFound(err error, format string, args ...any) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, format, args...)
	}
	return err
}
