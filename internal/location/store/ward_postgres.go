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

const wardSelect = `
SELECT w.id, w.ward_name, w.is_active, w.created_at, w.updated_at, w.deleted_at,
       c.id, c.constituency_name, c.is_active, c.created_at, c.updated_at, c.deleted_at,
       d.id, d.district_name, d.is_active, d.created_at, d.updated_at, d.deleted_at,
       p.id, p.province_name, p.is_active, p.created_at, p.updated_at, p.deleted_at
FROM ward w
LEFT JOIN constituency c ON c.id = w.constituency_id AND c.deleted_at IS NULL
LEFT JOIN district d ON d.id = c.district_id AND d.deleted_at IS NULL
LEFT JOIN province p ON p.id = d.province_id AND p.deleted_at IS NULL`

// WardPostgres persists wards in PostgreSQL. Wards are the tree's
// leaves, so reads carry the whole ancestor chain and no children.
type WardPostgres struct {
	db *sql.DB
}

func NewWardPostgres(db *sql.DB) *WardPostgres {
	return &WardPostgres{db: db}
}

func scanWard(s rowScanner) (*models.Ward, error) {
	var w wardCols
	var c constituencyCols
	var d districtCols
	var p provinceCols
	dests := append(append(append(w.dests(), c.dests()...), d.dests()...), p.dests()...)
	if err := s.Scan(dests...); err != nil {
		return nil, err
	}
	ward := w.toModel()
	ward.Constituency = c.toModel()
	if ward.Constituency != nil {
		ward.Constituency.District = d.toModel()
		if ward.Constituency.District != nil {
			ward.Constituency.District.Province = p.toModel()
		}
	}
	return ward, nil
}

func (s *WardPostgres) List(ctx context.Context) ([]models.Ward, error) {
	return s.findMany(ctx, wardSelect+`
WHERE w.deleted_at IS NULL
ORDER BY w.id`)
}

func (s *WardPostgres) FindByID(ctx context.Context, id int64) (*models.Ward, error) {
	return s.findOne(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND w.id = $1`, id)
}

func (s *WardPostgres) FindByName(ctx context.Context, name string) (*models.Ward, error) {
	return s.findOne(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND w.ward_name LIKE '%' || $1 || '%'
ORDER BY w.id
LIMIT 1`, name)
}

func (s *WardPostgres) FindByConstituencyID(ctx context.Context, constituencyID int64) ([]models.Ward, error) {
	return s.findMany(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND c.id = $1
ORDER BY w.id`, constituencyID)
}

func (s *WardPostgres) FindByConstituencyName(ctx context.Context, name string) ([]models.Ward, error) {
	return s.findMany(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND c.constituency_name LIKE '%' || $1 || '%'
ORDER BY w.id`, name)
}

func (s *WardPostgres) FindByDistrictID(ctx context.Context, districtID int64) ([]models.Ward, error) {
	return s.findMany(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND d.id = $1
ORDER BY w.id`, districtID)
}

func (s *WardPostgres) FindByDistrictName(ctx context.Context, name string) ([]models.Ward, error) {
	return s.findMany(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND d.district_name LIKE '%' || $1 || '%'
ORDER BY w.id`, name)
}

func (s *WardPostgres) FindByProvinceID(ctx context.Context, provinceID int64) ([]models.Ward, error) {
	return s.findMany(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND p.id = $1
ORDER BY w.id`, provinceID)
}

func (s *WardPostgres) FindByProvinceName(ctx context.Context, name string) ([]models.Ward, error) {
	return s.findMany(ctx, wardSelect+`
WHERE w.deleted_at IS NULL AND p.province_name LIKE '%' || $1 || '%'
ORDER BY w.id`, name)
}

func (s *WardPostgres) ExistsByNameInConstituency(ctx context.Context, name string, constituencyID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
SELECT EXISTS (
  SELECT 1 FROM ward
  WHERE deleted_at IS NULL AND constituency_id = $1 AND ward_name = $2
)`, constituencyID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check ward name: %w", err)
	}
	return exists, nil
}

func (s *WardPostgres) Insert(ctx context.Context, dto models.WardDto) (*models.Ward, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO ward (ward_name, constituency_id) VALUES ($1, $2) RETURNING id`,
		dto.WardName, dto.Constituency.ID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert ward: %w", err)
	}
	return s.FindByID(ctx, id)
}

func (s *WardPostgres) InsertBulk(ctx context.Context, dtos []models.WardDto) (int64, error) {
	if len(dtos) == 0 {
		return 0, nil
	}
	names := make([]string, len(dtos))
	constituencyIDs := make([]int64, len(dtos))
	for i, dto := range dtos {
		names[i] = dto.WardName
		constituencyIDs[i] = dto.Constituency.ID
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO ward (ward_name, constituency_id)
SELECT * FROM unnest($1::text[], $2::bigint[])`, pq.Array(names), pq.Array(constituencyIDs))
	if err != nil {
		return 0, fmt.Errorf("bulk insert wards: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk insert wards: %w", err)
	}
	return inserted, nil
}

func (s *WardPostgres) Update(ctx context.Context, ward *models.Ward) (*models.Ward, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE ward
SET ward_name = $2, is_active = $3, updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, ward.ID, ward.WardName, ward.IsActive)
	if err != nil {
		return nil, fmt.Errorf("update ward: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, ward.ID)
}

func (s *WardPostgres) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE ward
SET deleted_at = now(), updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ward: %w", err)
	}
	return requireRow(res)
}

func (s *WardPostgres) findOne(ctx context.Context, query string, args ...any) (*models.Ward, error) {
	ward, err := scanWard(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find ward: %w", err)
	}
	return ward, nil
}

func (s *WardPostgres) findMany(ctx context.Context, query string, args ...any) ([]models.Ward, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query wards: %w", err)
	}
	defer rows.Close()

	wards := []models.Ward{}
	for rows.Next() {
		ward, err := scanWard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ward: %w", err)
		}
		wards = append(wards, *ward)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query wards: %w", err)
	}
	return wards, nil
}
