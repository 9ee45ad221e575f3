//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"admingeo/internal/location/models"
	"admingeo/internal/location/store"
	"admingeo/internal/platform/postgres"
	"admingeo/pkg/platform/sentinel"
	"admingeo/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg             *containers.PostgresContainer
	provinces      *store.ProvincePostgres
	districts      *store.DistrictPostgres
	constituencies *store.ConstituencyPostgres
	wards          *store.WardPostgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(s.pg.DB))
	s.provinces = store.NewProvincePostgres(s.pg.DB)
	s.districts = store.NewDistrictPostgres(s.pg.DB)
	s.constituencies = store.NewConstituencyPostgres(s.pg.DB)
	s.wards = store.NewWardPostgres(s.pg.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	// Truncate in dependency order.
	s.Require().NoError(s.pg.TruncateTables(context.Background(),
		"ward", "constituency", "district", "province"))
}

// seedTree builds one full branch of the division tree.
func (s *PostgresStoreSuite) seedTree() (province *models.Province, district *models.District, constituency *models.Constituency, ward *models.Ward) {
	ctx := context.Background()
	var err error

	province, err = s.provinces.Insert(ctx, models.ProvinceDto{ProvinceName: "Copperbelt"})
	s.Require().NoError(err)
	district, err = s.districts.Insert(ctx, models.DistrictDto{
		DistrictName: "Ndola", Province: models.RelationRef{ID: province.ID}})
	s.Require().NoError(err)
	constituency, err = s.constituencies.Insert(ctx, models.ConstituencyDto{
		ConstituencyName: "Ndola Central", District: models.RelationRef{ID: district.ID}})
	s.Require().NoError(err)
	ward, err = s.wards.Insert(ctx, models.WardDto{
		WardName: "Kansenshi", Constituency: models.RelationRef{ID: constituency.ID}})
	s.Require().NoError(err)
	return province, district, constituency, ward
}

func (s *PostgresStoreSuite) TestInsertAndHydration() {
	ctx := context.Background()
	province, district, constituency, ward := s.seedTree()

	found, err := s.provinces.FindByID(ctx, province.ID)
	s.Require().NoError(err)
	s.Require().Len(found.Districts, 1)
	s.Equal("Ndola", found.Districts[0].DistrictName)

	foundDistrict, err := s.districts.FindByID(ctx, district.ID)
	s.Require().NoError(err)
	s.Require().NotNil(foundDistrict.Province)
	s.Equal("Copperbelt", foundDistrict.Province.ProvinceName)
	s.Require().Len(foundDistrict.Constituencies, 1)

	foundWard, err := s.wards.FindByID(ctx, ward.ID)
	s.Require().NoError(err)
	s.Require().NotNil(foundWard.Constituency)
	s.Equal(constituency.ID, foundWard.Constituency.ID)
	s.Require().NotNil(foundWard.Constituency.District)
	s.Require().NotNil(foundWard.Constituency.District.Province)
	s.Equal(province.ID, foundWard.Constituency.District.Province.ID)
}

func (s *PostgresStoreSuite) TestSubstringNameSearch() {
	ctx := context.Background()
	s.seedTree()

	found, err := s.provinces.FindByName(ctx, "Copper")
	s.Require().NoError(err)
	s.Equal("Copperbelt", found.ProvinceName)

	_, err = s.provinces.FindByName(ctx, "Southern")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestAncestorLookups() {
	ctx := context.Background()
	province, district, _, _ := s.seedTree()

	foundProvince, err := s.provinces.FindByWardName(ctx, "Kansenshi")
	s.Require().NoError(err)
	s.Equal(province.ID, foundProvince.ID)

	wards, err := s.wards.FindByProvinceID(ctx, province.ID)
	s.Require().NoError(err)
	s.Require().Len(wards, 1)

	constituencies, err := s.constituencies.FindByProvinceName(ctx, "Copperbelt")
	s.Require().NoError(err)
	s.Require().Len(constituencies, 1)

	districts, err := s.districts.FindByProvinceIDAndName(ctx, province.ID, "Ndo")
	s.Require().NoError(err)
	s.Require().Len(districts, 1)
	s.Equal(district.ID, districts[0].ID)
}

func (s *PostgresStoreSuite) TestSoftDeleteSemantics() {
	ctx := context.Background()
	province, district, _, _ := s.seedTree()

	s.Require().NoError(s.provinces.SoftDelete(ctx, province.ID))

	_, err := s.provinces.FindByID(ctx, province.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	// The child stays visible; its ancestor pointer goes nil.
	foundDistrict, err := s.districts.FindByID(ctx, district.ID)
	s.Require().NoError(err)
	s.Nil(foundDistrict.Province)

	s.Require().ErrorIs(s.provinces.SoftDelete(ctx, province.ID), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestScopedExistence() {
	ctx := context.Background()
	province, _, _, _ := s.seedTree()

	exists, err := s.districts.ExistsByNameInProvince(ctx, "Ndola", province.ID)
	s.Require().NoError(err)
	s.True(exists)

	other, err := s.provinces.Insert(ctx, models.ProvinceDto{ProvinceName: "Luapula"})
	s.Require().NoError(err)
	exists, err = s.districts.ExistsByNameInProvince(ctx, "Ndola", other.ID)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *PostgresStoreSuite) TestBulkInsert() {
	ctx := context.Background()
	province, _, _, _ := s.seedTree()

	inserted, err := s.districts.InsertBulk(ctx, []models.DistrictDto{
		{DistrictName: "Kitwe", Province: models.RelationRef{ID: province.ID}},
		{DistrictName: "Mufulira", Province: models.RelationRef{ID: province.ID}},
	})
	s.Require().NoError(err)
	s.Equal(int64(2), inserted)

	districts, err := s.districts.FindByProvinceID(ctx, province.ID)
	s.Require().NoError(err)
	s.Len(districts, 3)
}

func (s *PostgresStoreSuite) TestUpdateOverwrites() {
	ctx := context.Background()
	_, district, _, _ := s.seedTree()

	district.DistrictName = "Masaiti"
	district.IsActive = false
	updated, err := s.districts.Update(ctx, district)
	s.Require().NoError(err)
	s.Equal("Masaiti", updated.DistrictName)
	s.False(updated.IsActive)
}
