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

const constituencySelect = `
SELECT c.id, c.constituency_name, c.is_active, c.created_at, c.updated_at, c.deleted_at,
       d.id, d.district_name, d.is_active, d.created_at, d.updated_at, d.deleted_at,
       p.id, p.province_name, p.is_active, p.created_at, p.updated_at, p.deleted_at
FROM constituency c
LEFT JOIN district d ON d.id = c.district_id AND d.deleted_at IS NULL
LEFT JOIN province p ON p.id = d.province_id AND p.deleted_at IS NULL`

// ConstituencyPostgres persists constituencies in PostgreSQL.
type ConstituencyPostgres struct {
	db *sql.DB
}

func NewConstituencyPostgres(db *sql.DB) *ConstituencyPostgres {
	return &ConstituencyPostgres{db: db}
}

func scanConstituency(s rowScanner) (*models.Constituency, error) {
	var c constituencyCols
	var d districtCols
	var p provinceCols
	if err := s.Scan(append(append(c.dests(), d.dests()...), p.dests()...)...); err != nil {
		return nil, err
	}
	constituency := c.toModel()
	constituency.District = d.toModel()
	if constituency.District != nil {
		constituency.District.Province = p.toModel()
	}
	return constituency, nil
}

func (s *ConstituencyPostgres) List(ctx context.Context) ([]models.Constituency, error) {
	return s.findMany(ctx, constituencySelect+`
WHERE c.deleted_at IS NULL
ORDER BY c.id`)
}

func (s *ConstituencyPostgres) FindByID(ctx context.Context, id int64) (*models.Constituency, error) {
	return s.findOne(ctx, constituencySelect+`
WHERE c.deleted_at IS NULL AND c.id = $1`, id)
}

func (s *ConstituencyPostgres) FindByName(ctx context.Context, name string) (*models.Constituency, error) {
	return s.findOne(ctx, constituencySelect+`
WHERE c.deleted_at IS NULL AND c.constituency_name LIKE '%' || $1 || '%'
ORDER BY c.id
LIMIT 1`, name)
}

func (s *ConstituencyPostgres) FindByDistrictID(ctx context.Context, districtID int64) ([]models.Constituency, error) {
	return s.findMany(ctx, constituencySelect+`
WHERE c.deleted_at IS NULL AND d.id = $1
ORDER BY c.id`, districtID)
}

func (s *ConstituencyPostgres) FindByDistrictName(ctx context.Context, name string) ([]models.Constituency, error) {
	return s.findMany(ctx, constituencySelect+`
WHERE c.deleted_at IS NULL AND d.district_name LIKE '%' || $1 || '%'
ORDER BY c.id`, name)
}

func (s *ConstituencyPostgres) FindByProvinceID(ctx context.Context, provinceID int64) ([]models.Constituency, error) {
	return s.findMany(ctx, constituencySelect+`
WHERE c.deleted_at IS NULL AND p.id = $1
ORDER BY c.id`, provinceID)
}

func (s *ConstituencyPostgres) FindByProvinceName(ctx context.Context, name string) ([]models.Constituency, error) {
	return s.findMany(ctx, constituencySelect+`
WHERE c.deleted_at IS NULL AND p.province_name LIKE '%' || $1 || '%'
ORDER BY c.id`, name)
}

func (s *ConstituencyPostgres) ExistsByNameInDistrict(ctx context.Context, name string, districtID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
SELECT EXISTS (
  SELECT 1 FROM constituency
  WHERE deleted_at IS NULL AND district_id = $1 AND constituency_name = $2
)`, districtID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check constituency name: %w", err)
	}
	return exists, nil
}

func (s *ConstituencyPostgres) Insert(ctx context.Context, dto models.ConstituencyDto) (*models.Constituency, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
INSERT INTO constituency (constituency_name, district_id) VALUES ($1, $2) RETURNING id`,
		dto.ConstituencyName, dto.District.ID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert constituency: %w", err)
	}
	return s.FindByID(ctx, id)
}

func (s *ConstituencyPostgres) InsertBulk(ctx context.Context, dtos []models.ConstituencyDto) (int64, error) {
	if len(dtos) == 0 {
		return 0, nil
	}
	names := make([]string, len(dtos))
	districtIDs := make([]int64, len(dtos))
	for i, dto := range dtos {
		names[i] = dto.ConstituencyName
		districtIDs[i] = dto.District.ID
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO constituency (constituency_name, district_id)
SELECT * FROM unnest($1::text[], $2::bigint[])`, pq.Array(names), pq.Array(districtIDs))
	if err != nil {
		return 0, fmt.Errorf("bulk insert constituencies: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk insert constituencies: %w", err)
	}
	return inserted, nil
}

func (s *ConstituencyPostgres) Update(ctx context.Context, constituency *models.Constituency) (*models.Constituency, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE constituency
SET constituency_name = $2, is_active = $3, updated_at = now()
WHERE deleted_at IS NULL AND id = $1`,
		constituency.ID, constituency.ConstituencyName, constituency.IsActive)
	if err != nil {
		return nil, fmt.Errorf("update constituency: %w", err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, constituency.ID)
}

func (s *ConstituencyPostgres) SoftDelete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE constituency
SET deleted_at = now(), updated_at = now()
WHERE deleted_at IS NULL AND id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete constituency: %w", err)
	}
	return requireRow(res)
}

func (s *ConstituencyPostgres) findOne(ctx context.Context, query string, args ...any) (*models.Constituency, error) {
	constituency, err := scanConstituency(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find constituency: %w", err)
	}
	out := []models.Constituency{*constituency}
	if err := s.attachWards(ctx, out); err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ConstituencyPostgres) findMany(ctx context.Context, query string, args ...any) ([]models.Constituency, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query constituencies: %w", err)
	}
	defer rows.Close()

	constituencies := []models.Constituency{}
	for rows.Next() {
		constituency, err := scanConstituency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan constituency: %w", err)
		}
		constituencies = append(constituencies, *constituency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query constituencies: %w", err)
	}
	if err := s.attachWards(ctx, constituencies); err != nil {
		return nil, err
	}
	return constituencies, nil
}

func (s *ConstituencyPostgres) attachWards(ctx context.Context, constituencies []models.Constituency) error {
	ids := make([]int64, len(constituencies))
	byID := make(map[int64]*models.Constituency, len(constituencies))
	for i := range constituencies {
		constituencies[i].Wards = []models.Ward{}
		ids[i] = constituencies[i].ID
		byID[constituencies[i].ID] = &constituencies[i]
	}
	if len(ids) == 0 {
		return nil
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT w.constituency_id, w.id, w.ward_name, w.is_active, w.created_at, w.updated_at, w.deleted_at
FROM ward w
WHERE w.deleted_at IS NULL AND w.constituency_id = ANY($1)
ORDER BY w.id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load wards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var constituencyID int64
		var c wardCols
		if err := rows.Scan(append([]any{&constituencyID}, c.dests()...)...); err != nil {
			return fmt.Errorf("scan ward: %w", err)
		}
		if parent, ok := byID[constituencyID]; ok {
			parent.Wards = append(parent.Wards, *c.toModel())
		}
	}
	return rows.Err()
}
