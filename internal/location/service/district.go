package service

import (
	"context"
	"errors"
	"log/slog"

	"admingeo/internal/location/models"
	"admingeo/internal/platform/metrics"
	dErrors "admingeo/pkg/domain-errors"
	"admingeo/pkg/platform/sentinel"
)

// DistrictStore is the district persistence surface the service needs.
type DistrictStore interface {
	List(ctx context.Context) ([]models.District, error)
	FindByID(ctx context.Context, id int64) (*models.District, error)
	FindByName(ctx context.Context, name string) (*models.District, error)
	FindByProvinceID(ctx context.Context, provinceID int64) ([]models.District, error)
	FindByProvinceName(ctx context.Context, name string) ([]models.District, error)
	FindByProvinceIDAndName(ctx context.Context, provinceID int64, name string) ([]models.District, error)
	ExistsByNameInProvince(ctx context.Context, name string, provinceID int64) (bool, error)
	Insert(ctx context.Context, dto models.DistrictDto) (*models.District, error)
	InsertBulk(ctx context.Context, dtos []models.DistrictDto) (int64, error)
	Update(ctx context.Context, district *models.District) (*models.District, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ProvinceFinder is the slice of the province store the district
// service needs for its parent-existence check.
type ProvinceFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Province, error)
}

type DistrictService struct {
	store     DistrictStore
	provinces ProvinceFinder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewDistrictService(store DistrictStore, provinces ProvinceFinder, logger *slog.Logger, m *metrics.Metrics) *DistrictService {
	return &DistrictService{store: store, provinces: provinces, logger: logger, metrics: m}
}

func (s *DistrictService) GetDistricts(ctx context.Context) ([]models.District, error) {
	districts, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list districts failed", "error", err)
		return nil, err
	}
	return districts, nil
}

func (s *DistrictService) GetDistrictByID(ctx context.Context, id int64) (*models.District, error) {
	district, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "district with id %d not found", id)
		s.logger.ErrorContext(ctx, "get district by id failed", "id", id, "error", err)
		return nil, err
	}
	return district, nil
}

func (s *DistrictService) GetDistrictByName(ctx context.Context, name string) (*models.District, error) {
	district, err := s.store.FindByName(ctx, name)
	if err != nil {
		err = translateNotFound(err, "district with name %s not found", name)
		s.logger.ErrorContext(ctx, "get district by name failed", "name", name, "error", err)
		return nil, err
	}
	return district, nil
}

func (s *DistrictService) GetDistrictsByProvinceID(ctx context.Context, provinceID int64) ([]models.District, error) {
	districts, err := s.store.FindByProvinceID(ctx, provinceID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get districts by province id failed", "province_id", provinceID, "error", err)
		return nil, err
	}
	return districts, nil
}

func (s *DistrictService) GetDistrictsByProvinceName(ctx context.Context, name string) ([]models.District, error) {
	districts, err := s.store.FindByProvinceName(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "get districts by province name failed", "name", name, "error", err)
		return nil, err
	}
	return districts, nil
}

func (s *DistrictService) GetDistrictsByProvinceIDAndName(ctx context.Context, provinceID int64, name string) ([]models.District, error) {
	districts, err := s.store.FindByProvinceIDAndName(ctx, provinceID, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "get districts by province query failed", "province_id", provinceID, "name", name, "error", err)
		return nil, err
	}
	return districts, nil
}

// CreateDistrict verifies the parent province exists and that the name
// is unused within it before inserting.
func (s *DistrictService) CreateDistrict(ctx context.Context, dto models.DistrictDto) (*models.District, error) {
	if _, err := s.provinces.FindByID(ctx, dto.Province.ID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			err = dErrors.Newf(dErrors.CodeBadRequest, "province with id %d not found", dto.Province.ID)
		}
		s.logger.ErrorContext(ctx, "create district failed", "name", dto.DistrictName, "error", err)
		return nil, err
	}

	exists, err := s.store.ExistsByNameInProvince(ctx, dto.DistrictName, dto.Province.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "create district failed", "name", dto.DistrictName, "error", err)
		return nil, err
	}
	if exists {
		err := dErrors.New(dErrors.CodeBadRequest, "district already exists")
		s.logger.ErrorContext(ctx, "create district failed", "name", dto.DistrictName, "error", err)
		return nil, err
	}

	district, err := s.store.Insert(ctx, dto)
	if err != nil {
		s.logger.ErrorContext(ctx, "create district failed", "name", dto.DistrictName, "error", err)
		return nil, err
	}
	s.metrics.IncrementLocationsCreated("district")
	return district, nil
}

func (s *DistrictService) CreateBulkDistricts(ctx context.Context, dtos []models.DistrictDto) (int64, error) {
	inserted, err := s.store.InsertBulk(ctx, dtos)
	if err != nil {
		s.logger.ErrorContext(ctx, "bulk create districts failed", "count", len(dtos), "error", err)
		return 0, err
	}
	return inserted, nil
}

func (s *DistrictService) UpdateDistrict(ctx context.Context, id int64, upd models.DistrictUpdate) (*models.District, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "district with id %d not found", id)
		s.logger.ErrorContext(ctx, "update district failed", "id", id, "error", err)
		return nil, err
	}

	if upd.DistrictName != nil {
		current.DistrictName = *upd.DistrictName
	}
	if upd.IsActive != nil {
		current.IsActive = *upd.IsActive
	}

	district, err := s.store.Update(ctx, current)
	if err != nil {
		err = translateNotFound(err, "district with id %d not found", id)
		s.logger.ErrorContext(ctx, "update district failed", "id", id, "error", err)
		return nil, err
	}
	return district, nil
}

func (s *DistrictService) DeleteDistrict(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		err = translateNotFound(err, "district with id %d not found", id)
		s.logger.ErrorContext(ctx, "delete district failed", "id", id, "error", err)
		return err
	}
	return nil
}
