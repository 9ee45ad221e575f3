package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"admingeo/internal/location/models"
	"admingeo/pkg/platform/sentinel"
)

const districtSelect = `
SELECT d.id, d.district_name, d.is_active, d.created_at, d.updated_at, d.deleted_at,
       p.id, p.province_name, p.is_active, p.created_at, p.updated_at, p.deleted_at
FROM district d
LEFT JOIN province p ON p.id = d.province_id AND p.deleted_at IS NULL`

// DistrictPostgres persists districts in PostgreSQL.
type DistrictPostgres struct {
	db *sql.DB
}

func NewDistrictPostgres(db *sql.DB) *DistrictPostgres {
	return &DistrictPostgres{db: db}
}

func scanDistrict(s rowScanner) (*models.District, error) {
	var d districtCols
	var p provinceCols
	if err := s.Scan(append(d.dests(), p.dests()...)...); err != nil {
		return nil, err
	}
	district := d.toModel()
	district.Province = p.toModel()
	return district, nil
}

func (s *DistrictPostgres) List(ctx context.Context) ([]models.District, error) {
	return s.findMany(ctx, districtSelect+`
WHERE d.deleted_at IS NULL
ORDER BY d.id`)
}

func (s *DistrictPostgres) FindByID(ctx context.Context, id int64) (*models.District, error) {
	return s.findOne(ctx, districtSelect+`
WHERE d.deleted_at IS NULL AND d.id = $1`, id)
}

func (s *DistrictPostgres) FindByName(ctx context.Context, name string) (*models.District, error) {
	return s.findOne(ctx, districtSelect+`
WHERE d.deleted_at IS NULL AND d.district_name LIKE '%' || $1 || '%'
ORDER BY d.id
LIMIT 1`, name)
}

func (s *DistrictPostgres) FindByProvinceID(ctx context.Context, provinceID int64) ([]models.District, error) {
	return s.findMany(ctx, districtSelect+`
WHERE d.deleted_at IS NULL AND p.id = $1
ORDER BY d.id`, provinceID)
}

func (s *DistrictPostgres) FindByProvinceName(ctx context.Context, name string) ([]models.District, error) {
	return s.findMany(ctx, districtSelect+`
WHERE d.deleted_at IS NULL AND p.province_name LIKE '%' || $1 || '%'
ORDER BY d.id`, name)
}

// FindByProvinceIDAndName backs the /district/province/query/{id}/{name}
// lookup: districts of one province whose name matches the term.
func (s *DistrictPostgres) FindByProvinceIDAndName(ctx context.Context, provinceID int64, name string) ([]models.District, error) {
	return s.findMany(ctx, districtSelect+`
WHERE d.deleted_at IS NULL AND p.id = $1 AND d.district_name LIKE '%' || $2 || '%'
ORDER BY d.id`, provinceID, name)
}

func (s *DistrictPostgres) ExistsByNameInProvince(ctx context.Context, name string, provinceID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
SELECT EXISTS (
  SELECT 1 FROM district
  WHERE deleted_at IS NULL AND province_id = $1 AND district_name = $2
)`, provinceID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check district name: %w", err)
	}
	return exists, nil
}

func (s *DistrictPostgres) Insert(ctx context.Context, dto models.DistrictDto) (*models.District, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO district (district_name, province_id) VALUES ($1, $2) RETURNING id`,
		dto.DistrictName, dto.Province.ID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert district: %w", err)
	}
	return s.FindByID(ctx, id)
}

func (s *DistrictPostgres) InsertBulk(ctx context.Context, dtos []models.DistrictDto) (int64, error) {
	if len(dtos) == 0 {
		return 0, nil
	}
	names := make([]string, len(dtos))
	provinceIDs := make([]int64, len(dtos))
	for i, dto := range dtos {
		names[i] = dto.DistrictName
		provinceIDs[i] = dto.Province.ID
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO district (district_name, province_id)
SELECT * FROM unnest($1::text[], $2::bigint[])`, pq.Array(names), pq.Array(provinceIDs))
	if err != nil {
		return 0, fmt.Errorf("bulk insert districts: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk insert districts: %w", err)
	}
	return inserted, nil
}

func (s *DistrictPostgres) Update(ctx context.Context, district *models.District) (*models.District, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE district
SET district_name = $2, is_active = $3, updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, district.ID, district.DistrictName, district.IsActive)
	if err != nil {
		return nil, fmt.Errorf("update district: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, district.ID)
}

func (s *DistrictPostgres) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE district
SET deleted_at = now(), updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete district: %w", err)
	}
	return requireRow(res)
}

func (s *DistrictPostgres) findOne(ctx context.Context, query string, args ...any) (*models.District, error) {
	district, err := scanDistrict(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find district: %w", err)
	}
	out := []models.District{*district}
	if err := s.attachConstituencies(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *DistrictPostgres) findMany(ctx context.Context, query string, args ...any) ([]models.District, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query districts: %w", err)
	}
	defer rows.Close()

	districts := []models.District{}
	for rows.Next() {
		district, err := scanDistrict(rows)
		if err != nil {
			return nil, fmt.Errorf("scan district: %w", err)
		}
		districts = append(districts, *district)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query districts: %w", err)
	}
	if err := s.attachConstituencies(ctx, districts); err != nil {
		return nil, err
	}
	return districts, nil
}

func (s *DistrictPostgres) attachConstituencies(ctx context.Context, districts []models.District) error {
	ids := make([]int64, len(districts))
	byID := make(map[int64]*models.District, len(districts))
	for i := range districts {
		districts[i].Constituencies = []models.Constituency{}
		ids[i] = districts[i].ID
		byID[districts[i].ID] = &districts[i]
	}
	if len(ids) == 0 {
		return nil
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT c.district_id, c.id, c.constituency_name, c.is_active, c.created_at, c.updated_at, c.deleted_at
FROM constituency c
WHERE c.deleted_at IS NULL AND c.district_id = ANY($1)
ORDER BY c.id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load constituencies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var districtID int64
		var c constituencyCols
		if err := rows.Scan(append([]any{&districtID}, c.dests()...)...); err != nil {
			return fmt.Errorf("scan constituency: %w", err)
		}
		if parent, ok := byID[districtID]; ok {
			parent.Constituencies = append(parent.Constituencies, *c.toModel())
		}
	}
	return rows.Err()
}
