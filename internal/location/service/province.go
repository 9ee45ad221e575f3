package service

import (
	"context"
	"log/slog"

	"admingeo/internal/location/models"
	"admingeo/internal/platform/metrics"
	dErrors "admingeo/pkg/domain-errors"
)

// ProvinceStore is the province persistence surface the service needs.
type ProvinceStore interface {
	List(ctx context.Context) ([]models.Province, error)
	FindByID(ctx context.Context, id int64) (*models.Province, error)
	FindByName(ctx context.Context, name string) (*models.Province, error)
	FindByDistrictName(ctx context.Context, name string) (*models.Province, error)
	FindByConstituencyName(ctx context.Context, name string) (*models.Province, error)
	FindByWardName(ctx context.Context, name string) (*models.Province, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, dto models.ProvinceDto) (*models.Province, error)
	InsertBulk(ctx context.Context, dtos []models.ProvinceDto) (int64, error)
	Update(ctx context.Context, province *models.Province) (*models.Province, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ProvinceService serves the root level of the division tree.
type ProvinceService struct {
	store   ProvinceStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewProvinceService(store ProvinceStore, logger *slog.Logger, m *metrics.Metrics) *ProvinceService {
	return &ProvinceService{store: store, logger: logger, metrics: m}
}

func (s *ProvinceService) GetProvinces(ctx context.Context) ([]models.Province, error) {
	provinces, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list provinces failed", "error", err)
		return nil, err
	}
	return provinces, nil
}

func (s *ProvinceService) GetProvinceByID(ctx context.Context, id int64) (*models.Province, error) {
	province, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "province with id %d not found", id)
		s.logger.ErrorContext(ctx, "get province by id failed", "id", id, "error", err)
		return nil, err
	}
	return province, nil
}

func (s *ProvinceService) GetProvinceByName(ctx context.Context, name string) (*models.Province, error) {
	province, err := s.store.FindByName(ctx, name)
	if err != nil {
		err = translateNotFound(err, "province with name %s not found", name)
		s.logger.ErrorContext(ctx, "get province by name failed", "name", name, "error", err)
		return nil, err
	}
	return province, nil
}

func (s *ProvinceService) GetProvinceByDistrictName(ctx context.Context, name string) (*models.Province, error) {
	province, err := s.store.FindByDistrictName(ctx, name)
	if err != nil {
		err = translateNotFound(err, "province with district %s not found", name)
		s.logger.ErrorContext(ctx, "get province by district name failed", "name", name, "error", err)
		return nil, err
	}
	return province, nil
}

func (s *ProvinceService) GetProvinceByConstituencyName(ctx context.Context, name string) (*models.Province, error) {
	province, err := s.store.FindByConstituencyName(ctx, name)
	if err != nil {
		err = translateNotFound(err, "province with constituency %s not found", name)
		s.logger.ErrorContext(ctx, "get province by constituency name failed", "name", name, "error", err)
		return nil, err
	}
	return province, nil
}

func (s *ProvinceService) GetProvinceByWardName(ctx context.Context, name string) (*models.Province, error) {
	province, err := s.store.FindByWardName(ctx, name)
	if err != nil {
		err = translateNotFound(err, "province with ward %s not found", name)
		s.logger.ErrorContext(ctx, "get province by ward name failed", "name", name, "error", err)
		return nil, err
	}
	return province, nil
}

// CreateProvince enforces global name uniqueness before insert. The
// check-then-insert pair is not transactional; concurrent creates can
// race, which is accepted for this dataset.
func (s *ProvinceService) CreateProvince(ctx context.Context, dto models.ProvinceDto) (*models.Province, error) {
	exists, err := s.store.ExistsByName(ctx, dto.ProvinceName)
	if err != nil {
		s.logger.ErrorContext(ctx, "create province failed", "name", dto.ProvinceName, "error", err)
		return nil, err
	}
	if exists {
		err := dErrors.New(dErrors.CodeBadRequest, "province already exists")
		s.logger.ErrorContext(ctx, "create province failed", "name", dto.ProvinceName, "error", err)
		return nil, err
	}

	province, err := s.store.Insert(ctx, dto)
	if err != nil {
		s.logger.ErrorContext(ctx, "create province failed", "name", dto.ProvinceName, "error", err)
		return nil, err
	}
	s.metrics.IncrementLocationsCreated("province")
	return province, nil
}

// CreateBulkProvinces is the raw batch path; it does not run the
// per-row duplicate check.
func (s *ProvinceService) CreateBulkProvinces(ctx context.Context, dtos []models.ProvinceDto) (int64, error) {
	inserted, err := s.store.InsertBulk(ctx, dtos)
	if err != nil {
		s.logger.ErrorContext(ctx, "bulk create provinces failed", "count", len(dtos), "error", err)
		return 0, err
	}
	return inserted, nil
}

// UpdateProvince overlays the partial payload on the current row and
// persists the full record.
func (s *ProvinceService) UpdateProvince(ctx context.Context, id int64, upd models.ProvinceUpdate) (*models.Province, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		err = translateNotFound(err, "province with id %d not found", id)
		s.logger.ErrorContext(ctx, "update province failed", "id", id, "error", err)
		return nil, err
	}

	if upd.ProvinceName != nil {
		current.ProvinceName = *upd.ProvinceName
	}
	if upd.IsActive != nil {
		current.IsActive = *upd.IsActive
	}

	province, err := s.store.Update(ctx, current)
	if err != nil {
		err = translateNotFound(err, "province with id %d not found", id)
		s.logger.ErrorContext(ctx, "update province failed", "id", id, "error", err)
		return nil, err
	}
	return province, nil
}

// DeleteProvince soft-deletes; children stay live for referential use.
func (s *ProvinceService) DeleteProvince(ctx context.Context, id int64) error {
	if err := s.store.SoftDelete(ctx, id); err != nil {
		err = translateNotFound(err, "province with id %d not found", id)
		s.logger.ErrorContext(ctx, "delete province failed", "id", id, "error", err)
		return err
	}
	return nil
}
