package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"admingeo/internal/location/models"
	"admingeo/internal/location/store"
	dErrors "admingeo/pkg/domain-errors"
)

type LocationServiceSuite struct {
	suite.Suite
	ctx            context.Context
	provinces      *ProvinceService
	districts      *DistrictService
	constituencies *ConstituencyService
	wards          *WardService
}

func (s *LocationServiceSuite) SetupTest() {
	s.ctx = context.Background()
	mem := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.provinces = NewProvinceService(mem.Provinces(), logger, nil)
	s.districts = NewDistrictService(mem.Districts(), mem.Provinces(), logger, nil)
	s.constituencies = NewConstituencyService(mem.Constituencies(), mem.Districts(), logger, nil)
	s.wards = NewWardService(mem.Wards(), mem.Constituencies(), logger, nil)
}

func TestLocationServiceSuite(t *testing.T) {
	suite.Run(t, new(LocationServiceSuite))
}

func (s *LocationServiceSuite) mustCreateProvince(name string) *models.Province {
	province, err := s.provinces.CreateProvince(s.ctx, models.ProvinceDto{ProvinceName: name})
	s.Require().NoError(err)
	return province
}

func (s *LocationServiceSuite) mustCreateDistrict(name string, provinceID int64) *models.District {
	district, err := s.districts.CreateDistrict(s.ctx, models.DistrictDto{
		DistrictName: name, Province: models.RelationRef{ID: provinceID}})
	s.Require().NoError(err)
	return district
}

func (s *LocationServiceSuite) TestCreateProvinceRejectsDuplicateName() {
	s.mustCreateProvince("Lusaka")

	_, err := s.provinces.CreateProvince(s.ctx, models.ProvinceDto{ProvinceName: "Lusaka"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *LocationServiceSuite) TestCreateDistrictRequiresExistingProvince() {
	_, err := s.districts.CreateDistrict(s.ctx, models.DistrictDto{
		DistrictName: "Chongwe", Province: models.RelationRef{ID: 42}})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *LocationServiceSuite) TestDistrictNameUniqueWithinProvinceOnly() {
	lusaka := s.mustCreateProvince("Lusaka")
	copperbelt := s.mustCreateProvince("Copperbelt")
	s.mustCreateDistrict("Kafue", lusaka.ID)

	_, err := s.districts.CreateDistrict(s.ctx, models.DistrictDto{
		DistrictName: "Kafue", Province: models.RelationRef{ID: lusaka.ID}})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	// The same name is fine under a different province.
	_, err = s.districts.CreateDistrict(s.ctx, models.DistrictDto{
		DistrictName: "Kafue", Province: models.RelationRef{ID: copperbelt.ID}})
	s.Require().NoError(err)
}

func (s *LocationServiceSuite) TestCreateConstituencyRequiresExistingDistrict() {
	_, err := s.constituencies.CreateConstituency(s.ctx, models.ConstituencyDto{
		ConstituencyName: "Mandevu", District: models.RelationRef{ID: 42}})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *LocationServiceSuite) TestCreateWardRequiresExistingConstituency() {
	_, err := s.wards.CreateWard(s.ctx, models.WardDto{
		WardName: "Raphael Chota", Constituency: models.RelationRef{ID: 42}})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *LocationServiceSuite) TestGetUnknownIDIsNotFound() {
	_, err := s.provinces.GetProvinceByID(s.ctx, 99)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = s.districts.GetDistrictByID(s.ctx, 99)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LocationServiceSuite) TestUpdateOverlaysOnlyProvidedFields() {
	lusaka := s.mustCreateProvince("Lusaka")
	district := s.mustCreateDistrict("Chilanga", lusaka.ID)

	inactive := false
	updated, err := s.districts.UpdateDistrict(s.ctx, district.ID, models.DistrictUpdate{IsActive: &inactive})
	s.Require().NoError(err)
	s.Equal("Chilanga", updated.DistrictName)
	s.False(updated.IsActive)

	name := "Chilanga Town"
	updated, err = s.districts.UpdateDistrict(s.ctx, district.ID, models.DistrictUpdate{DistrictName: &name})
	s.Require().NoError(err)
	s.Equal("Chilanga Town", updated.DistrictName)
	s.False(updated.IsActive)
}

func (s *LocationServiceSuite) TestUpdateUnknownIDIsNotFound() {
	name := "Nowhere"
	_, err := s.provinces.UpdateProvince(s.ctx, 99, models.ProvinceUpdate{ProvinceName: &name})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LocationServiceSuite) TestDeleteThenGetIsNotFound() {
	lusaka := s.mustCreateProvince("Lusaka")
	district := s.mustCreateDistrict("Luangwa", lusaka.ID)

	s.Require().NoError(s.districts.DeleteDistrict(s.ctx, district.ID))

	_, err := s.districts.GetDistrictByID(s.ctx, district.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.districts.DeleteDistrict(s.ctx, district.ID)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *LocationServiceSuite) TestBulkCreateSkipsDuplicateChecks() {
	s.mustCreateProvince("Lusaka")

	inserted, err := s.provinces.CreateBulkProvinces(s.ctx, []models.ProvinceDto{
		{ProvinceName: "Lusaka"},
		{ProvinceName: "Southern"},
	})
	s.Require().NoError(err)
	s.Equal(int64(2), inserted)
}

func (s *LocationServiceSuite) TestAncestorTraversal() {
	lusaka := s.mustCreateProvince("Lusaka")
	district := s.mustCreateDistrict("Lusaka", lusaka.ID)
	constituency, err := s.constituencies.CreateConstituency(s.ctx, models.ConstituencyDto{
		ConstituencyName: "Munali", District: models.RelationRef{ID: district.ID}})
	s.Require().NoError(err)
	_, err = s.wards.CreateWard(s.ctx, models.WardDto{
		WardName: "Chakunkula", Constituency: models.RelationRef{ID: constituency.ID}})
	s.Require().NoError(err)

	province, err := s.provinces.GetProvinceByWardName(s.ctx, "Chakunkula")
	s.Require().NoError(err)
	s.Equal(lusaka.ID, province.ID)

	wards, err := s.wards.GetWardsByProvinceName(s.ctx, "Lusaka")
	s.Require().NoError(err)
	s.Require().Len(wards, 1)
	s.Equal("Chakunkula", wards[0].WardName)
}
