//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"admingeo/internal/platform/postgres"
	"admingeo/internal/user/models"
	"admingeo/internal/user/store"
	"admingeo/pkg/platform/sentinel"
	"admingeo/pkg/testutil/containers"
)

type UserPostgresSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.Postgres
}

func TestUserPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UserPostgresSuite))
}

func (s *UserPostgresSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(s.pg.DB))
	s.store = store.NewPostgres(s.pg.DB)
}

func (s *UserPostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "users"))
}

func (s *UserPostgresSuite) insertUser(email string) *models.User {
	user, err := s.store.Insert(context.Background(), &models.User{
		FirstName:   "Bupe",
		LastName:    "Mwansa",
		Email:       email,
		PhoneNumber: "+260971234567",
		Password:    "hashed-password",
	})
	s.Require().NoError(err)
	return user
}

func (s *UserPostgresSuite) TestInsertAndLookups() {
	ctx := context.Background()
	created := s.insertUser("bupe@example.com")
	s.True(created.IsActive)
	s.Empty(created.Password)

	byID, err := s.store.FindByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("bupe@example.com", byID.Email)
	s.Empty(byID.Password)

	withPassword, err := s.store.FindByEmailWithPassword(ctx, "bupe@example.com")
	s.Require().NoError(err)
	s.Equal("hashed-password", withPassword.Password)

	_, err = s.store.FindByEmail(ctx, "nobody@example.com")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *UserPostgresSuite) TestListOmitsPasswordAndDeleted() {
	ctx := context.Background()
	s.insertUser("a@example.com")
	second := s.insertUser("b@example.com")
	s.Require().NoError(s.store.SoftDelete(ctx, second.ID))

	users, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal("a@example.com", users[0].Email)
	s.Empty(users[0].Password)
}

func (s *UserPostgresSuite) TestDuplicateLiveEmailRejected() {
	ctx := context.Background()
	created := s.insertUser("bupe@example.com")

	_, err := s.store.Insert(ctx, &models.User{
		FirstName: "Other", LastName: "Person",
		Email: "bupe@example.com", Password: "x",
	})
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	// Deleting the live row frees the address again.
	s.Require().NoError(s.store.SoftDelete(ctx, created.ID))
	_, err = s.store.Insert(ctx, &models.User{
		FirstName: "Other", LastName: "Person",
		Email: "bupe@example.com", Password: "x",
	})
	s.Require().NoError(err)
}

func (s *UserPostgresSuite) TestUpdateAndSoftDelete() {
	ctx := context.Background()
	created := s.insertUser("bupe@example.com")

	created.FirstName = "Chanda"
	created.Password = "new-hash"
	updated, err := s.store.Update(ctx, created)
	s.Require().NoError(err)
	s.Equal("Chanda", updated.FirstName)

	withPassword, err := s.store.FindByEmailWithPassword(ctx, "bupe@example.com")
	s.Require().NoError(err)
	s.Equal("new-hash", withPassword.Password)

	s.Require().NoError(s.store.SoftDelete(ctx, created.ID))
	_, err = s.store.FindByID(ctx, created.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	s.Require().ErrorIs(s.store.SoftDelete(ctx, created.ID), sentinel.ErrNotFound)
}
