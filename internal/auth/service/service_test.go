package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"admingeo/internal/jwttoken"
	"admingeo/internal/platform/middleware"
	"admingeo/internal/user/models"
	userservice "admingeo/internal/user/service"
	userstore "admingeo/internal/user/store"
	dErrors "admingeo/pkg/domain-errors"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx     context.Context
	users   *userservice.Service
	tokens  *jwttoken.Service
	service *Service
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.users = userservice.NewService(userstore.NewMemory(), logger, nil)
	s.tokens = jwttoken.NewService("test-secret", time.Hour)
	s.service = NewService(s.users, s.tokens, logger, nil)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) createUser() *models.User {
	user, err := s.users.CreateUser(s.ctx, models.UserDto{
		FirstName: "Bupe",
		LastName:  "Mwansa",
		Email:     "bupe@example.com",
		Password:  "correct horse",
	})
	s.Require().NoError(err)
	return user
}

func (s *AuthServiceSuite) TestLoginIssuesValidToken() {
	user := s.createUser()

	result, err := s.service.Login(s.ctx, models.LoginDto{
		Email: "bupe@example.com", Password: "correct horse"})
	s.Require().NoError(err)
	s.Require().NotNil(result.User)
	s.Equal(user.ID, result.User.ID)
	s.Empty(result.User.Password)

	claims, err := s.tokens.ValidateToken(result.Token)
	s.Require().NoError(err)
	userID, err := claims.UserID()
	s.Require().NoError(err)
	s.Equal(user.ID, userID)
}

func (s *AuthServiceSuite) TestLoginRejectsWrongPassword() {
	s.createUser()

	_, err := s.service.Login(s.ctx, models.LoginDto{
		Email: "bupe@example.com", Password: "wrong"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AuthServiceSuite) TestLoginRejectsUnknownEmail() {
	_, err := s.service.Login(s.ctx, models.LoginDto{
		Email: "nobody@example.com", Password: "correct horse"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AuthServiceSuite) TestCurrentUser() {
	user := s.createUser()

	found, err := s.service.CurrentUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.Email, found.Email)
}

func (s *AuthServiceSuite) TestCurrentUserGoneMapsToUnauthorized() {
	user := s.createUser()
	s.Require().NoError(s.users.DeleteUser(s.ctx, user.ID))

	_, err := s.service.CurrentUser(s.ctx, user.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func (s *AuthServiceSuite) TestValidateUser() {
	user := s.createUser()

	s.NoError(s.service.ValidateUser(s.ctx, &middleware.JWTClaims{UserID: user.ID}))

	s.Require().NoError(s.users.DeleteUser(s.ctx, user.ID))
	err := s.service.ValidateUser(s.ctx, &middleware.JWTClaims{UserID: user.ID})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
