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

// ConstituencyStore is the constituency persistence surface the
// service needs.
type ConstituencyStore interface {
	List(ctx context.Context) ([]models.Constituency, error)
	FindByID(ctx context.Context, id int64) (*models.Constituency, error)
	FindByName(ctx context.Context, name string) (*models.Constituency, error)
	FindByDistrictID(ctx context.Context, districtID int64) ([]models.Constituency, error)
	FindByDistrictName(ctx context.Context, name string) ([]models.Constituency, error)
	FindByProvinceID(ctx context.Context, provinceID int64) ([]models.Constituency, error)
	FindByProvinceName(ctx context.Context, name string) ([]models.Constituency, error)
	ExistsByNameInDistrict(ctx context.Context, name string, districtID int64) (bool, error)
	Insert(ctx context.Context, dto models.ConstituencyDto) (*models.Constituency, error)
	InsertBulk(ctx context.Context, dtos []models.ConstituencyDto) (int64, error)
	Update(ctx context.Context, constituency *models.Constituency) (*models.Constituency, error)
	SoftDelete(ctx context.Context, id int64) error
}

// DistrictFinder is the slice of the district store the constituency
// service needs for its parent-existence check.
type DistrictFinder interface {
	FindByID(ctx context.Context, id int64) (*models.District, error)
}

type ConstituencyService struct {
	store     ConstituencyStore
	districts DistrictFinder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewConstituencyService(store ConstituencyStore, districts DistrictFinder, logger *slog.Logger, m *metrics.Metrics) *ConstituencyService {
	return &ConstituencyService{store: store, districts: districts, logger: logger, metrics: m}
}

func (s *ConstituencyService) GetConstituencies(ctx context.Context) ([]models.Constituency, error) {
	constituencies, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list constituencies failed", "error", err)
		return nil, err
	}
	return constituencies, nil
}

func (s *ConstituencyService) GetConstituencyByID(ctx context.Context, id int64) (*models.Constituency, error) {
	constituency, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "constituency with id %d not found", id)
		s.logger.ErrorContext(ctx, "get constituency by id failed", "id", id, "error", err)
		return nil, err
	}
	return constituency, nil
}

func (s *ConstituencyService) GetConstituencyByName(ctx context.Context, name string) (*models.Constituency, error) {
	constituency, err := s.store.FindByName(ctx, name)
	if err != nil {
		err = translateNotFound(err, "constituency with name %s not found", name)
		s.logger.ErrorContext(ctx, "get constituency by name failed", "name", name, "error", err)
		return nil, err
	}
	return constituency, nil
}

func (s *ConstituencyService) GetConstituenciesByDistrictID(ctx context.Context, districtID int64) ([]models.Constituency, error) {
	constituencies, err := s.store.FindByDistrictID(ctx, districtID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get constituencies by district id failed", "district_id", districtID, "error", err)
		return nil, err
	}
	return constituencies, nil
}

func (s *ConstituencyService) GetConstituenciesByDistrictName(ctx context.Context, name string) ([]models.Constituency, error) {
	constituencies, err := s.store.FindByDistrictName(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "get constituencies by district name failed", "name", name, "error", err)
		return nil, err
	}
	return constituencies, nil
}

func (s *ConstituencyService) GetConstituenciesByProvinceID(ctx context.Context, provinceID int64) ([]models.Constituency, error) {
	constituencies, err := s.store.FindByProvinceID(ctx, provinceID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get constituencies by province id failed", "province_id", provinceID, "error", err)
		return nil, err
	}
	return constituencies, nil
}

func (s *ConstituencyService) GetConstituenciesByProvinceName(ctx context.Context, name string) ([]models.Constituency, error) {
	constituencies, err := s.store.FindByProvinceName(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "get constituencies by province name failed", "name", name, "error", err)
		return nil, err
	}
	return constituencies, nil
}

func (s *ConstituencyService) CreateConstituency(ctx context.Context, dto models.ConstituencyDto) (*models.Constituency, error) {
	if _, err := s.districts.FindByID(ctx, dto.District.ID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			err = dErrors.Newf(dErrors.CodeBadRequest, "district with id %d not found", dto.District.ID)
		}
		s.logger.ErrorContext(ctx, "create constituency failed", "name", dto.ConstituencyName, "error", err)
		return nil, err
	}

	exists, err := s.store.ExistsByNameInDistrict(ctx, dto.ConstituencyName, dto.District.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "create constituency failed", "name", dto.ConstituencyName, "error", err)
		return nil, err
	}
	if exists {
		err := dErrors.New(dErrors.CodeBadRequest, "constituency already exists")
		s.logger.ErrorContext(ctx, "create constituency failed", "name", dto.ConstituencyName, "error", err)
		return nil, err
	}

	constituency, err := s.store.Insert(ctx, dto)
	if err != nil {
		s.logger.ErrorContext(ctx, "create constituency failed", "name", dto.ConstituencyName, "error", err)
		return nil, err
	}
	s.metrics.IncrementLocationsCreated("constituency")
	return constituency, nil
}

func (s *ConstituencyService) CreateBulkConstituencies(ctx context.Context, dtos []models.ConstituencyDto) (int64, error) {
	inserted, err := s.store.InsertBulk(ctx, dtos)
	if err != nil {
		s.logger.ErrorContext(ctx, "bulk create constituencies failed", "count", len(dtos), "error", err)
		return 0, err
	}
	return inserted, nil
}

func (s *ConstituencyService) UpdateConstituency(ctx context.Context, id int64, upd models.ConstituencyUpdate) (*models.Constituency, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "constituency with id %d not found", id)
		s.logger.ErrorContext(ctx, "update constituency failed", "id", id, "error", err)
		return nil, err
	}

	if upd.ConstituencyName != nil {
		current.ConstituencyName = *upd.ConstituencyName
	}
	if upd.IsActive != nil {
		current.IsActive = *upd.IsActive
	}

	constituency, err := s.store.Update(ctx, current)
	if err != nil {
		err = translateNotFound(err, "constituency with id %d not found", id)
		s.logger.ErrorContext(ctx, "update constituency failed", "id", id, "error", err)
		return nil, err
	}
	return constituency, nil
}

func (s *ConstituencyService) DeleteConstituency(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		err = translateNotFound(err, "constituency with id %d not found", id)
		s.logger.ErrorContext(ctx, "delete constituency failed", "id", id, "error", err)
		return err
	}
	return nil
}
