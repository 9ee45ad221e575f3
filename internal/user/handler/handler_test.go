package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"admingeo/internal/user/handler"
	"admingeo/internal/user/models"
	"admingeo/internal/user/service"
	"admingeo/internal/user/store"
	"admingeo/pkg/testutil"
)

type UserHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func (s *UserHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(store.NewMemory(), logger, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.NewHandler(svc).Register(r)
	})
	s.router = r
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerSuite))
}

func (s *UserHandlerSuite) createUser(email string) *models.User {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/users",
		models.UserDto{
			FirstName: "Bupe", LastName: "Mwansa",
			Email: email, Password: "correct horse",
		}))
	s.Require().Equal(http.StatusCreated, rr.Code)
	return testutil.DecodeResponse[models.User](s.T(), rr)
}

func (s *UserHandlerSuite) TestCreateAndFetch() {
	created := s.createUser("bupe@example.com")
	s.NotZero(created.ID)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(),
		http.MethodGet, "/api/users/"+strconv.FormatInt(created.ID, 10), nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	user := testutil.DecodeResponse[models.User](s.T(), rr)
	s.Equal("bupe@example.com", user.Email)

	// The password never appears in a response body.
	s.NotContains(rr.Body.String(), "password")
	s.NotContains(rr.Body.String(), "correct horse")
}

func (s *UserHandlerSuite) TestCreateValidation() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/users",
		models.UserDto{FirstName: "Bupe", LastName: "Mwansa", Email: "not-an-email", Password: "x"}))
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/users",
		models.UserDto{FirstName: "Bupe", LastName: "Mwansa", Email: "bupe@example.com"}))
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *UserHandlerSuite) TestDuplicateEmailRejected() {
	s.createUser("bupe@example.com")

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/users",
		models.UserDto{
			FirstName: "Other", LastName: "Person",
			Email: "bupe@example.com", Password: "secret",
		}))
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *UserHandlerSuite) TestUpdateAndDelete() {
	created := s.createUser("bupe@example.com")
	path := "/api/users/" + strconv.FormatInt(created.ID, 10)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPut, path,
		map[string]string{"firstName": "Chanda"}))
	s.Require().Equal(http.StatusOK, rr.Code)
	user := testutil.DecodeResponse[models.User](s.T(), rr)
	s.Equal("Chanda", user.FirstName)
	s.Equal("Mwansa", user.LastName)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodDelete, path, nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("true", strings.TrimSpace(rr.Body.String()))

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, path, nil))
	s.Equal(http.StatusNotFound, rr.Code)
}
