package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"admingeo/internal/user/models"
	"admingeo/internal/user/store"
	dErrors "admingeo/pkg/domain-errors"
)

type UserServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service *Service
}

func (s *UserServiceSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(store.NewMemory(), logger, nil)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) newDto(email string) models.UserDto {
	return models.UserDto{
		FirstName:   "Bupe",
		LastName:    "Mwansa",
		Email:       email,
		PhoneNumber: "+260971234567",
		Password:    "correct horse",
	}
}

func (s *UserServiceSuite) TestCreateHashesPasswordAndStripsIt() {
	created, err := s.service.CreateUser(s.ctx, s.newDto("bupe@example.com"))
	s.Require().NoError(err)
	s.Empty(created.Password)
	s.True(created.IsActive)

	stored, err := s.service.FindByEmailWithPassword(s.ctx, "bupe@example.com")
	s.Require().NoError(err)
	s.NotEqual("correct horse", stored.Password)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))
}

func (s *UserServiceSuite) TestCreateRejectsDuplicateEmail() {
	_, err := s.service.CreateUser(s.ctx, s.newDto("bupe@example.com"))
	s.Require().NoError(err)

	_, err = s.service.CreateUser(s.ctx, s.newDto("bupe@example.com"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *UserServiceSuite) TestListAndGetOmitPassword() {
	created, err := s.service.CreateUser(s.ctx, s.newDto("bupe@example.com"))
	s.Require().NoError(err)

	users, err := s.service.GetUsers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Empty(users[0].Password)

	user, err := s.service.GetUserByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Empty(user.Password)
}

func (s *UserServiceSuite) TestUpdateKeepsPasswordWhenAbsent() {
	created, err := s.service.CreateUser(s.ctx, s.newDto("bupe@example.com"))
	s.Require().NoError(err)

	phone := "+260977654321"
	updated, err := s.service.UpdateUser(s.ctx, created.ID, models.UserUpdate{PhoneNumber: &phone})
	s.Require().NoError(err)
	s.Equal(phone, updated.PhoneNumber)

	stored, err := s.service.FindByEmailWithPassword(s.ctx, "bupe@example.com")
	s.Require().NoError(err)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))
}

func (s *UserServiceSuite) TestUpdateRehashesNewPassword() {
	created, err := s.service.CreateUser(s.ctx, s.newDto("bupe@example.com"))
	s.Require().NoError(err)

	password := "battery staple"
	_, err = s.service.UpdateUser(s.ctx, created.ID, models.UserUpdate{Password: &password})
	s.Require().NoError(err)

	stored, err := s.service.FindByEmailWithPassword(s.ctx, "bupe@example.com")
	s.Require().NoError(err)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("battery staple")))
	s.Error(bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))
}

func (s *UserServiceSuite) TestDeleteThenLookupsFail() {
	created, err := s.service.CreateUser(s.ctx, s.newDto("bupe@example.com"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteUser(s.ctx, created.ID))

	_, err = s.service.GetUserByID(s.ctx, created.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.service.DeleteUser(s.ctx, created.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *UserServiceSuite) TestUpdateUnknownIDIsNotFound() {
	phone := "+260970000000"
	_, err := s.service.UpdateUser(s.ctx, 99, models.UserUpdate{PhoneNumber: &phone})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
