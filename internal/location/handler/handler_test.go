package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	authservice "admingeo/internal/auth/service"
	"admingeo/internal/jwttoken"
	"admingeo/internal/location/handler"
	"admingeo/internal/location/models"
	locationservice "admingeo/internal/location/service"
	"admingeo/internal/location/store"
	"admingeo/internal/platform/middleware"
	usermodels "admingeo/internal/user/models"
	userservice "admingeo/internal/user/service"
	userstore "admingeo/internal/user/store"
	"admingeo/pkg/testutil"
)

type bulkBody struct {
	Inserted int64 `json:"inserted"`
}

type LocationHandlerSuite struct {
	suite.Suite
	router chi.Router
	token  string
}

func (s *LocationHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mem := store.NewMemory()

	provinceSvc := locationservice.NewProvinceService(mem.Provinces(), logger, nil)
	districtSvc := locationservice.NewDistrictService(mem.Districts(), mem.Provinces(), logger, nil)
	constituencySvc := locationservice.NewConstituencyService(mem.Constituencies(), mem.Districts(), logger, nil)
	wardSvc := locationservice.NewWardService(mem.Wards(), mem.Constituencies(), logger, nil)

	userSvc := userservice.NewService(userstore.NewMemory(), logger, nil)
	tokens := jwttoken.NewService("test-secret", time.Hour)
	authSvc := authservice.NewService(userSvc, tokens, logger, nil)
	requireAuth := middleware.RequireAuth(jwttoken.NewServiceAdapter(tokens), authSvc, logger)

	user, err := userSvc.CreateUser(s.T().Context(), usermodels.UserDto{
		FirstName: "Admin", LastName: "User",
		Email: "admin@example.com", Password: "hunter22",
	})
	s.Require().NoError(err)
	s.token, err = tokens.Sign(user.ID)
	s.Require().NoError(err)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.NewProvinceHandler(provinceSvc, requireAuth).Register(r)
		handler.NewDistrictHandler(districtSvc, requireAuth).Register(r)
		handler.NewConstituencyHandler(constituencySvc, requireAuth).Register(r)
		handler.NewWardHandler(wardSvc, requireAuth).Register(r)
	})
	s.router = r
}

func TestLocationHandlerSuite(t *testing.T) {
	suite.Run(t, new(LocationHandlerSuite))
}

// do sends an authenticated request.
func (s *LocationHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	req.Header.Set("Authorization", "Bearer "+s.token)
	return testutil.DoRequest(s.router, req)
}

// get sends an unauthenticated read.
func (s *LocationHandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), http.MethodGet, path, nil)
	return testutil.DoRequest(s.router, req)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (s *LocationHandlerSuite) TestWritesRequireAuth() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/province",
		map[string]string{"provinceName": "Lusaka"})
	rr := testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rr.Code)

	req = testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/province",
		map[string]string{"provinceName": "Lusaka"})
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = testutil.DoRequest(s.router, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
}

func (s *LocationHandlerSuite) TestReadsArePublic() {
	rr := s.get("/api/province")
	s.Equal(http.StatusOK, rr.Code)
}

func (s *LocationHandlerSuite) TestProvinceDistrictLifecycle() {
	// Create a province; it starts with no districts.
	rr := s.do(http.MethodPost, "/api/province", map[string]string{"provinceName": "Lusaka"})
	s.Require().Equal(http.StatusCreated, rr.Code)
	province := testutil.DecodeResponse[models.Province](s.T(), rr)
	s.Equal("Lusaka", province.ProvinceName)
	s.Require().NotNil(province.Districts)
	s.Empty(province.Districts)

	// Attach a district.
	rr = s.do(http.MethodPost, "/api/district", map[string]any{
		"districtName": "Chongwe",
		"province":     map[string]any{"id": province.ID},
	})
	s.Require().Equal(http.StatusCreated, rr.Code)
	district := testutil.DecodeResponse[models.District](s.T(), rr)
	s.Equal("Chongwe", district.DistrictName)

	// The province now lists it.
	rr = s.get("/api/province/" + itoa(province.ID))
	s.Require().Equal(http.StatusOK, rr.Code)
	province = testutil.DecodeResponse[models.Province](s.T(), rr)
	s.Require().Len(province.Districts, 1)
	s.Equal("Chongwe", province.Districts[0].DistrictName)

	// A duplicate district in the same province is rejected.
	rr = s.do(http.MethodPost, "/api/district", map[string]any{
		"districtName": "Chongwe",
		"province":     map[string]any{"id": province.ID},
	})
	s.Equal(http.StatusBadRequest, rr.Code)

	// Delete it and the lookup starts failing.
	rr = s.do(http.MethodDelete, "/api/district/"+itoa(district.ID), nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("true", strings.TrimSpace(rr.Body.String()))

	rr = s.get("/api/district/" + itoa(district.ID))
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *LocationHandlerSuite) TestValidationErrors() {
	rr := s.do(http.MethodPost, "/api/province", map[string]string{"provinceName": "  "})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.do(http.MethodPost, "/api/district", map[string]any{"districtName": "Kafue"})
	s.Equal(http.StatusBadRequest, rr.Code)

	rr = s.get("/api/province/abc")
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *LocationHandlerSuite) TestBulkCreate() {
	rr := s.do(http.MethodPost, "/api/province/bulk", []map[string]string{
		{"provinceName": "Northern"},
		{"provinceName": "Western"},
	})
	s.Require().Equal(http.StatusCreated, rr.Code)
	result := testutil.DecodeResponse[bulkBody](s.T(), rr)
	s.Equal(int64(2), result.Inserted)
}

func (s *LocationHandlerSuite) TestNameLookups() {
	rr := s.do(http.MethodPost, "/api/province", map[string]string{"provinceName": "Copperbelt"})
	s.Require().Equal(http.StatusCreated, rr.Code)
	province := testutil.DecodeResponse[models.Province](s.T(), rr)

	rr = s.do(http.MethodPost, "/api/district", map[string]any{
		"districtName": "Kitwe",
		"province":     map[string]any{"id": province.ID},
	})
	s.Require().Equal(http.StatusCreated, rr.Code)

	// Substring match on name.
	rr = s.get("/api/province/name/Copper")
	s.Require().Equal(http.StatusOK, rr.Code)

	// Reverse lookup from a descendant name.
	rr = s.get("/api/province/district/Kitwe")
	s.Require().Equal(http.StatusOK, rr.Code)
	found := testutil.DecodeResponse[models.Province](s.T(), rr)
	s.Equal(province.ID, found.ID)

	rr = s.get("/api/province/district/Nonesuch")
	s.Equal(http.StatusNotFound, rr.Code)
}

func (s *LocationHandlerSuite) TestWardAncestorRoutes() {
	rr := s.do(http.MethodPost, "/api/province", map[string]string{"provinceName": "Lusaka"})
	s.Require().Equal(http.StatusCreated, rr.Code)
	province := testutil.DecodeResponse[models.Province](s.T(), rr)

	rr = s.do(http.MethodPost, "/api/district", map[string]any{
		"districtName": "Lusaka", "province": map[string]any{"id": province.ID}})
	s.Require().Equal(http.StatusCreated, rr.Code)
	district := testutil.DecodeResponse[models.District](s.T(), rr)

	rr = s.do(http.MethodPost, "/api/constituency", map[string]any{
		"constituencyName": "Munali", "district": map[string]any{"id": district.ID}})
	s.Require().Equal(http.StatusCreated, rr.Code)
	constituency := testutil.DecodeResponse[models.Constituency](s.T(), rr)

	rr = s.do(http.MethodPost, "/api/ward", map[string]any{
		"wardName": "Chakunkula", "constituency": map[string]any{"id": constituency.ID}})
	s.Require().Equal(http.StatusCreated, rr.Code)

	rr = s.get("/api/ward/province/" + itoa(province.ID))
	s.Require().Equal(http.StatusOK, rr.Code)
	wards := testutil.DecodeResponse[[]models.Ward](s.T(), rr)
	s.Require().Len(*wards, 1)
	s.Equal("Chakunkula", (*wards)[0].WardName)

	rr = s.get("/api/ward/district/name/Lusaka")
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.get("/api/constituency/province/name/Lusaka")
	s.Require().Equal(http.StatusOK, rr.Code)
	constituencies := testutil.DecodeResponse[[]models.Constituency](s.T(), rr)
	s.Require().Len(*constituencies, 1)
}
