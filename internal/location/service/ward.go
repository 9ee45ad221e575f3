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

// WardStore is the ward persistence surface the service needs.
type WardStore interface {
	List(ctx context.Context) ([]models.Ward, error)
	FindByID(ctx context.Context, id int64) (*models.Ward, error)
	FindByName(ctx context.Context, name string) (*models.Ward, error)
	FindByConstituencyID(ctx context.Context, constituencyID int64) ([]models.Ward, error)
	FindByConstituencyName(ctx context.Context, name string) ([]models.Ward, error)
	FindByDistrictID(ctx context.Context, districtID int64) ([]models.Ward, error)
	FindByDistrictName(ctx context.Context, name string) ([]models.Ward, error)
	FindByProvinceID(ctx context.Context, provinceID int64) ([]models.Ward, error)
	FindByProvinceName(ctx context.Context, name string) ([]models.Ward, error)
	ExistsByNameInConstituency(ctx context.Context, name string, constituencyID int64) (bool, error)
	Insert(ctx context.Context, dto models.WardDto) (*models.Ward, error)
	InsertBulk(ctx context.Context, dtos []models.WardDto) (int64, error)
	Update(ctx context.Context, ward *models.Ward) (*models.Ward, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ConstituencyFinder is the slice of the constituency store the ward
// service needs for its parent-existence check.
type ConstituencyFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Constituency, error)
}

type WardService struct {
	store          WardStore
	constituencies ConstituencyFinder
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

func NewWardService(store WardStore, constituencies ConstituencyFinder, logger *slog.Logger, m *metrics.Metrics) *WardService {
	return &WardService{store: store, constituencies: constituencies, logger: logger, metrics: m}
}

func (s *WardService) GetWards(ctx context.Context) ([]models.Ward, error) {
	wards, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list wards failed", "error", err)
		return nil, err
	}
	return wards, nil
}

func (s *WardService) GetWardByID(ctx context.Context, id int64) (*models.Ward, error) {
	ward, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "ward with id %d not found", id)
		s.logger.ErrorContext(ctx, "get ward by id failed", "id", id, "error", err)
		return nil, err
	}
	return ward, nil
}

func (s *WardService) GetWardByName(ctx context.Context, name string) (*models.Ward, error) {
	ward, err := s.store.FindByName(ctx, name)
	if err != nil {
		err = translateNotFound(err, "ward with name %s not found", name)
		s.logger.ErrorContext(ctx, "get ward by name failed", "name", name, "error", err)
		return nil, err
	}
	return ward, nil
}

func (s *WardService) GetWardsByConstituencyID(ctx context.Context, constituencyID int64) ([]models.Ward, error) {
	wards, err := s.store.FindByConstituencyID(ctx, constituencyID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get wards by constituency id failed", "constituency_id", constituencyID, "error", err)
		return nil, err
	}
	return wards, nil
}

func (s *WardService) GetWardsByConstituencyName(ctx context.Context, name string) ([]models.Ward, error) {
	wards, err := s.store.FindByConstituencyName(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "get wards by constituency name failed", "name", name, "error", err)
		return nil, err
	}
	return wards, nil
}

func (s *WardService) GetWardsByDistrictID(ctx context.Context, districtID int64) ([]models.Ward, error) {
	wards, err := s.store.FindByDistrictID(ctx, districtID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get wards by district id failed", "district_id", districtID, "error", err)
		return nil, err
	}
	return wards, nil
}

func (s *WardService) GetWardsByDistrictName(ctx context.Context, name string) ([]models.Ward, error) {
	wards, err := s.store.FindByDistrictName(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "get wards by district name failed", "name", name, "error", err)
		return nil, err
	}
	return wards, nil
}

func (s *WardService) GetWardsByProvinceID(ctx context.Context, provinceID int64) ([]models.Ward, error) {
	wards, err := s.store.FindByProvinceID(ctx, provinceID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get wards by province id failed", "province_id", provinceID, "error", err)
		return nil, err
	}
	return wards, nil
}

func (s *WardService) GetWardsByProvinceName(ctx context.Context, name string) ([]models.Ward, error) {
	wards, err := s.store.FindByProvinceName(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "get wards by province name failed", "name", name, "error", err)
		return nil, err
	}
	return wards, nil
}

func (s *WardService) CreateWard(ctx context.Context, dto models.WardDto) (*models.Ward, error) {
	if _, err := s.constituencies.FindByID(ctx, dto.Constituency.ID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			err = dErrors.Newf(dErrors.CodeBadRequest, "constituency with id %d not found", dto.Constituency.ID)
		}
		s.logger.ErrorContext(ctx, "create ward failed", "name", dto.WardName, "error", err)
		return nil, err
	}

	exists, err := s.store.ExistsByNameInConstituency(ctx, dto.WardName, dto.Constituency.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "create ward failed", "name", dto.WardName, "error", err)
		return nil, err
	}
	if exists {
		err := dErrors.New(dErrors.CodeBadRequest, "ward already exists")
		s.logger.ErrorContext(ctx, "create ward failed", "name", dto.WardName, "error", err)
		return nil, err
	}

	ward, err := s.store.Insert(ctx, dto)
	if err != nil {
		s.logger.ErrorContext(ctx, "create ward failed", "name", dto.WardName, "error", err)
		return nil, err
	}
	s.metrics.IncrementLocationsCreated("ward")
	return ward, nil
}

func (s *WardService) CreateBulkWards(ctx context.Context, dtos []models.WardDto) (int64, error) {
	inserted, err := s.store.InsertBulk(ctx, dtos)
	if err != nil {
		s.logger.ErrorContext(ctx, "bulk create wards failed", "count", len(dtos), "error", err)
		return 0, err
	}
	return inserted, nil
}

func (s *WardService) UpdateWard(ctx context.Context, id int64, upd models.WardUpdate) (*models.Ward, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "ward with id %d not found", id)
		s.logger.ErrorContext(ctx, "update ward failed", "id", id, "error", err)
		return nil, err
	}

	if upd.WardName != nil {
		current.WardName = *upd.WardName
	}
	if upd.IsActive != nil {
		current.IsActive = *upd.IsActive
	}

	ward, err := s.store.Update(ctx, current)
	if err != nil {
		err = translateNotFound(err, "ward with id %d not found", id)
		s.logger.ErrorContext(ctx, "update ward failed", "id", id, "error", err)
		return nil, err
	}
	return ward, nil
}

func (s *WardService) DeleteWard(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		err = translateNotFound(err, "ward with id %d not found", id)
		s.logger.ErrorContext(ctx, "delete ward failed", "id", id, "error", err)
		return err
	}
	return nil
}
