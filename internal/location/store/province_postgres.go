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

const provinceSelect = `
SELECT p.id, p.province_name, p.is_active, p.created_at, p.updated_at, p.deleted_at
FROM province p`

// ProvincePostgres persists provinces in PostgreSQL.
type ProvincePostgres struct {
	db *sql.DB
}

func NewProvincePostgres(db *sql.DB) *ProvincePostgres {
	return &ProvincePostgres{db: db}
}

func (s *ProvincePostgres) List(ctx context.Context) ([]models.Province, error) {
	rows, err := s.db.QueryContext(ctx, provinceSelect+`
WHERE p.deleted_at IS NULL
ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	defer rows.Close()

	var provinces []models.Province
	for rows.Next() {
		var c provinceCols
		if err := rows.Scan(c.dests()...); err != nil {
			return nil, fmt.Errorf("scan province: %w", err)
		}
		provinces = append(provinces, *c.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	if err := s.attachDistricts(ctx, provinces); err != nil {
		return nil, err
	}
	return provinces, nil
}

func (s *ProvincePostgres) FindByID(ctx context.Context, id int64) (*models.Province, error) {
	return s.findOne(ctx, provinceSelect+`
WHERE p.deleted_at IS NULL AND p.id = $1`, id)
}

func (s *ProvincePostgres) FindByName(ctx context.Context, name string) (*models.Province, error) {
	return s.findOne(ctx, provinceSelect+`
WHERE p.deleted_at IS NULL AND p.province_name LIKE '%' || $1 || '%'
ORDER BY p.id
LIMIT 1`, name)
}

func (s *ProvincePostgres) FindByDistrictName(ctx context.Context, name string) (*models.Province, error) {
	return s.findOne(ctx, provinceSelect+`
JOIN district d ON d.province_id = p.id AND d.deleted_at IS NULL
WHERE p.deleted_at IS NULL AND d.district_name LIKE '%' || $1 || '%'
ORDER BY p.id
LIMIT 1`, name)
}

func (s *ProvincePostgres) FindByConstituencyName(ctx context.Context, name string) (*models.Province, error) {
	return s.findOne(ctx, provinceSelect+`
JOIN district d ON d.province_id = p.id AND d.deleted_at IS NULL
JOIN constituency c ON c.district_id = d.id AND c.deleted_at IS NULL
WHERE p.deleted_at IS NULL AND c.constituency_name LIKE '%' || $1 || '%'
ORDER BY p.id
LIMIT 1`, name)
}

func (s *ProvincePostgres) FindByWardName(ctx context.Context, name string) (*models.Province, error) {
	return s.findOne(ctx, provinceSelect+`
JOIN district d ON d.province_id = p.id AND d.deleted_at IS NULL
JOIN constituency c ON c.district_id = d.id AND c.deleted_at IS NULL
JOIN ward w ON w.constituency_id = c.id AND w.deleted_at IS NULL
WHERE p.deleted_at IS NULL AND w.ward_name LIKE '%' || $1 || '%'
ORDER BY p.id
LIMIT 1`, name)
}

func (s *ProvincePostgres) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
SELECT EXISTS (
  SELECT 1 FROM province WHERE deleted_at IS NULL AND province_name = $1
)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check province name: %w", err)
	}
	return exists, nil
}

func (s *ProvincePostgres) Insert(ctx context.Context, dto models.ProvinceDto) (*models.Province, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO province (province_name) VALUES ($1) RETURNING id`, dto.ProvinceName).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert province: %w", err)
	}
	return s.FindByID(ctx, id)
}

// InsertBulk is the raw batch path: one multi-row INSERT, no per-row
// duplicate checks. Returns the number of inserted rows.
func (s *ProvincePostgres) InsertBulk(ctx context.Context, dtos []models.ProvinceDto) (int64, error) {
	if len(dtos) == 0 {
		return 0, nil
	}
	names := make([]string, len(dtos))
	for i, dto := range dtos {
		names[i] = dto.ProvinceName
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO province (province_name)
SELECT unnest($1::text[])`, pq.Array(names))
	if err != nil {
		return 0, fmt.Errorf("bulk insert provinces: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk insert provinces: %w", err)
	}
	return inserted, nil
}

// Update writes the full merged record; the service layer has already
// overlaid the partial payload onto the current row.
func (s *ProvincePostgres) Update(ctx context.Context, province *models.Province) (*models.Province, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE province
SET province_name = $2, is_active = $3, updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, province.ID, province.ProvinceName, province.IsActive)
	if err != nil {
		return nil, fmt.Errorf("update province: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, province.ID)
}

func (s *ProvincePostgres) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE province
SET deleted_at = now(), updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete province: %w", err)
	}
	return requireRow(res)
}

func (s *ProvincePostgres) findOne(ctx context.Context, query string, arg any) (*models.Province, error) {
	var c provinceCols
	err := s.db.QueryRowContext(ctx, query, arg).Scan(c.dests()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find province: %w", err)
	}
	province := c.toModel()
	out := []models.Province{*province}
	if err := s.attachDistricts(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

// attachDistricts hydrates the immediate child collection for each
// province in one grouped query.
func (s *ProvincePostgres) attachDistricts(ctx context.Context, provinces []models.Province) error {
	ids := make([]int64, len(provinces))
	byID := make(map[int64]*models.Province, len(provinces))
	for i := range provinces {
		provinces[i].Districts = []models.District{}
		ids[i] = provinces[i].ID
		byID[provinces[i].ID] = &provinces[i]
	}
	if len(ids) == 0 {
		return nil
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT d.province_id, d.id, d.district_name, d.is_active, d.created_at, d.updated_at, d.deleted_at
FROM district d
WHERE d.deleted_at IS NULL AND d.province_id = ANY($1)
ORDER BY d.id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load districts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var provinceID int64
		var c districtCols
		if err := rows.Scan(append([]any{&provinceID}, c.dests()...)...); err != nil {
			return fmt.Errorf("scan district: %w", err)
		}
		if parent, ok := byID[provinceID]; ok {
			parent.Districts = append(parent.Districts, *c.toModel())
		}
	}
	return rows.Err()
}

// requireRow maps a zero-row UPDATE to the store's not-found sentinel.
func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
