package store

import (
	"context"
	"time"

	"admingeo/internal/location/models"
	"admingeo/pkg/platform/sentinel"
)

// ProvinceMemory is the in-memory province store.
type ProvinceMemory struct{ m *Memory }

func (s *ProvinceMemory) List(ctx context.Context) ([]models.Province, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := []models.Province{}
	for _, r := range s.m.liveRows(tableProvince) {
		out = append(out, *s.m.provinceModel(r, true))
	}
	return out, nil
}

func (s *ProvinceMemory) FindByID(ctx context.Context, id int64) (*models.Province, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	r := s.m.live(tableProvince, id)
	if r == nil {
		return nil, sentinel.ErrNotFound
	}
	return s.m.provinceModel(r, true), nil
}

func (s *ProvinceMemory) FindByName(ctx context.Context, name string) (*models.Province, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableProvince) {
		if contains(r.name, name) {
			return s.m.provinceModel(r, true), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *ProvinceMemory) FindByDistrictName(ctx context.Context, name string) (*models.Province, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.firstProvince(func(p *rec) bool {
		for _, d := range s.m.liveRows(tableDistrict) {
			if d.parentID == p.meta.ID && contains(d.name, name) {
				return true
			}
		}
		return false
	})
}

func (s *ProvinceMemory) FindByConstituencyName(ctx context.Context, name string) (*models.Province, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.firstProvince(func(p *rec) bool {
		for _, c := range s.m.liveRows(tableConstituency) {
			d := s.m.districtOf(c)
			if d != nil && d.parentID == p.meta.ID && contains(c.name, name) {
				return true
			}
		}
		return false
	})
}

func (s *ProvinceMemory) FindByWardName(ctx context.Context, name string) (*models.Province, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.firstProvince(func(p *rec) bool {
		for _, w := range s.m.liveRows(tableWard) {
			c := s.m.live(tableConstituency, w.parentID)
			if c == nil || !contains(w.name, name) {
				continue
			}
			d := s.m.districtOf(c)
			if d != nil && d.parentID == p.meta.ID {
				return true
			}
		}
		return false
	})
}

// firstProvince returns the lowest-id live province matching the
// predicate, mirroring ORDER BY p.id LIMIT 1.
func (s *ProvinceMemory) firstProvince(match func(*rec) bool) (*models.Province, error) {
	for _, p := range s.m.liveRows(tableProvince) {
		if match(p) {
			return s.m.provinceModel(p, true), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *ProvinceMemory) ExistsByName(ctx context.Context, name string) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableProvince) {
		if r.name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *ProvinceMemory) Insert(ctx context.Context, dto models.ProvinceDto) (*models.Province, error) {
	s.m.mu.Lock()
	id := s.m.insert(tableProvince, dto.ProvinceName, 0)
	s.m.mu.Unlock()
	return s.FindByID(ctx, id)
}

func (s *ProvinceMemory) InsertBulk(ctx context.Context, dtos []models.ProvinceDto) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, dto := range dtos {
		s.m.insert(tableProvince, dto.ProvinceName, 0)
	}
	return int64(len(dtos)), nil
}

func (s *ProvinceMemory) Update(ctx context.Context, province *models.Province) (*models.Province, error) {
	s.m.mu.Lock()
	r := s.m.live(tableProvince, province.ID)
	if r == nil {
		s.m.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	r.name = province.ProvinceName
	r.meta.IsActive = province.IsActive
	r.meta.UpdatedAt = time.Now()
	s.m.mu.Unlock()
	return s.FindByID(ctx, province.ID)
}

func (s *ProvinceMemory) SoftDelete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.softDelete(tableProvince, id)
}

// DistrictMemory is the in-memory district store.
type DistrictMemory struct{ m *Memory }

func (s *DistrictMemory) List(ctx context.Context) ([]models.District, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(*rec) bool { return true }), nil
}

func (s *DistrictMemory) FindByID(ctx context.Context, id int64) (*models.District, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	r := s.m.live(tableDistrict, id)
	if r == nil {
		return nil, sentinel.ErrNotFound
	}
	return s.m.districtModel(r, true), nil
}

func (s *DistrictMemory) FindByName(ctx context.Context, name string) (*models.District, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableDistrict) {
		if contains(r.name, name) {
			return s.m.districtModel(r, true), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *DistrictMemory) FindByProvinceID(ctx context.Context, provinceID int64) ([]models.District, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		p := s.m.provinceOf(r)
		return p != nil && p.meta.ID == provinceID
	}), nil
}

func (s *DistrictMemory) FindByProvinceName(ctx context.Context, name string) ([]models.District, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		p := s.m.provinceOf(r)
		return p != nil && contains(p.name, name)
	}), nil
}

func (s *DistrictMemory) FindByProvinceIDAndName(ctx context.Context, provinceID int64, name string) ([]models.District, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		p := s.m.provinceOf(r)
		return p != nil && p.meta.ID == provinceID && contains(r.name, name)
	}), nil
}

func (s *DistrictMemory) collect(match func(*rec) bool) []models.District {
	out := []models.District{}
	for _, r := range s.m.liveRows(tableDistrict) {
		if match(r) {
			out = append(out, *s.m.districtModel(r, true))
		}
	}
	return out
}

func (s *DistrictMemory) ExistsByNameInProvince(ctx context.Context, name string, provinceID int64) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableDistrict) {
		if r.parentID == provinceID && r.name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *DistrictMemory) Insert(ctx context.Context, dto models.DistrictDto) (*models.District, error) {
	s.m.mu.Lock()
	id := s.m.insert(tableDistrict, dto.DistrictName, dto.Province.ID)
	s.m.mu.Unlock()
	return s.FindByID(ctx, id)
}

func (s *DistrictMemory) InsertBulk(ctx context.Context, dtos []models.DistrictDto) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, dto := range dtos {
		s.m.insert(tableDistrict, dto.DistrictName, dto.Province.ID)
	}
	return int64(len(dtos)), nil
}

func (s *DistrictMemory) Update(ctx context.Context, district *models.District) (*models.District, error) {
	s.m.mu.Lock()
	r := s.m.live(tableDistrict, district.ID)
	if r == nil {
		s.m.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	r.name = district.DistrictName
	r.meta.IsActive = district.IsActive
	r.meta.UpdatedAt = time.Now()
	s.m.mu.Unlock()
	return s.FindByID(ctx, district.ID)
}

func (s *DistrictMemory) SoftDelete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.softDelete(tableDistrict, id)
}

// ConstituencyMemory is the in-memory constituency store.
type ConstituencyMemory struct{ m *Memory }

func (s *ConstituencyMemory) List(ctx context.Context) ([]models.Constituency, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(*rec) bool { return true }), nil
}

func (s *ConstituencyMemory) FindByID(ctx context.Context, id int64) (*models.Constituency, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	r := s.m.live(tableConstituency, id)
	if r == nil {
		return nil, sentinel.ErrNotFound
	}
	return s.m.constituencyModel(r, true), nil
}

func (s *ConstituencyMemory) FindByName(ctx context.Context, name string) (*models.Constituency, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableConstituency) {
		if contains(r.name, name) {
			return s.m.constituencyModel(r, true), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *ConstituencyMemory) FindByDistrictID(ctx context.Context, districtID int64) ([]models.Constituency, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		d := s.m.districtOf(r)
		return d != nil && d.meta.ID == districtID
	}), nil
}

func (s *ConstituencyMemory) FindByDistrictName(ctx context.Context, name string) ([]models.Constituency, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		d := s.m.districtOf(r)
		return d != nil && contains(d.name, name)
	}), nil
}

func (s *ConstituencyMemory) FindByProvinceID(ctx context.Context, provinceID int64) ([]models.Constituency, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		d := s.m.districtOf(r)
		if d == nil {
			return false
		}
		p := s.m.provinceOf(d)
		return p != nil && p.meta.ID == provinceID
	}), nil
}

func (s *ConstituencyMemory) FindByProvinceName(ctx context.Context, name string) ([]models.Constituency, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		d := s.m.districtOf(r)
		if d == nil {
			return false
		}
		p := s.m.provinceOf(d)
		return p != nil && contains(p.name, name)
	}), nil
}

func (s *ConstituencyMemory) collect(match func(*rec) bool) []models.Constituency {
	out := []models.Constituency{}
	for _, r := range s.m.liveRows(tableConstituency) {
		if match(r) {
			out = append(out, *s.m.constituencyModel(r, true))
		}
	}
	return out
}

func (s *ConstituencyMemory) ExistsByNameInDistrict(ctx context.Context, name string, districtID int64) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableConstituency) {
		if r.parentID == districtID && r.name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *ConstituencyMemory) Insert(ctx context.Context, dto models.ConstituencyDto) (*models.Constituency, error) {
	s.m.mu.Lock()
	id := s.m.insert(tableConstituency, dto.ConstituencyName, dto.District.ID)
	s.m.mu.Unlock()
	return s.FindByID(ctx, id)
}

func (s *ConstituencyMemory) InsertBulk(ctx context.Context, dtos []models.ConstituencyDto) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, dto := range dtos {
		s.m.insert(tableConstituency, dto.ConstituencyName, dto.District.ID)
	}
	return int64(len(dtos)), nil
}

func (s *ConstituencyMemory) Update(ctx context.Context, constituency *models.Constituency) (*models.Constituency, error) {
	s.m.mu.Lock()
	r := s.m.live(tableConstituency, constituency.ID)
	if r == nil {
		s.m.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	r.name = constituency.ConstituencyName
	r.meta.IsActive = constituency.IsActive
	r.meta.UpdatedAt = time.Now()
	s.m.mu.Unlock()
	return s.FindByID(ctx, constituency.ID)
}

func (s *ConstituencyMemory) SoftDelete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.softDelete(tableConstituency, id)
}

// WardMemory is the in-memory ward store.
type WardMemory struct{ m *Memory }

func (s *WardMemory) List(ctx context.Context) ([]models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(*rec) bool { return true }), nil
}

func (s *WardMemory) FindByID(ctx context.Context, id int64) (*models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	r := s.m.live(tableWard, id)
	if r == nil {
		return nil, sentinel.ErrNotFound
	}
	return s.m.wardModel(r), nil
}

func (s *WardMemory) FindByName(ctx context.Context, name string) (*models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableWard) {
		if contains(r.name, name) {
			return s.m.wardModel(r), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *WardMemory) FindByConstituencyID(ctx context.Context, constituencyID int64) ([]models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		c := s.m.live(tableConstituency, r.parentID)
		return c != nil && c.meta.ID == constituencyID
	}), nil
}

func (s *WardMemory) FindByConstituencyName(ctx context.Context, name string) ([]models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		c := s.m.live(tableConstituency, r.parentID)
		return c != nil && contains(c.name, name)
	}), nil
}

func (s *WardMemory) FindByDistrictID(ctx context.Context, districtID int64) ([]models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		d := s.wardDistrict(r)
		return d != nil && d.meta.ID == districtID
	}), nil
}

func (s *WardMemory) FindByDistrictName(ctx context.Context, name string) ([]models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		d := s.wardDistrict(r)
		return d != nil && contains(d.name, name)
	}), nil
}

func (s *WardMemory) FindByProvinceID(ctx context.Context, provinceID int64) ([]models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		p := s.wardProvince(r)
		return p != nil && p.meta.ID == provinceID
	}), nil
}

func (s *WardMemory) FindByProvinceName(ctx context.Context, name string) ([]models.Ward, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.collect(func(r *rec) bool {
		p := s.wardProvince(r)
		return p != nil && contains(p.name, name)
	}), nil
}

func (s *WardMemory) wardDistrict(r *rec) *rec {
	c := s.m.live(tableConstituency, r.parentID)
	if c == nil {
		return nil
	}
	return s.m.districtOf(c)
}

func (s *WardMemory) wardProvince(r *rec) *rec {
	d := s.wardDistrict(r)
	if d == nil {
		return nil
	}
	return s.m.provinceOf(d)
}

func (s *WardMemory) collect(match func(*rec) bool) []models.Ward {
	out := []models.Ward{}
	for _, r := range s.m.liveRows(tableWard) {
		if match(r) {
			out = append(out, *s.m.wardModel(r))
		}
	}
	return out
}

func (s *WardMemory) ExistsByNameInConstituency(ctx context.Context, name string, constituencyID int64) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, r := range s.m.liveRows(tableWard) {
		if r.parentID == constituencyID && r.name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *WardMemory) Insert(ctx context.Context, dto models.WardDto) (*models.Ward, error) {
	s.m.mu.Lock()
	id := s.m.insert(tableWard, dto.WardName, dto.Constituency.ID)
	s.m.mu.Unlock()
	return s.FindByID(ctx, id)
}

func (s *WardMemory) InsertBulk(ctx context.Context, dtos []models.WardDto) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, dto := range dtos {
		s.m.insert(tableWard, dto.WardName, dto.Constituency.ID)
	}
	return int64(len(dtos)), nil
}

func (s *WardMemory) Update(ctx context.Context, ward *models.Ward) (*models.Ward, error) {
	s.m.mu.Lock()
	r := s.m.live(tableWard, ward.ID)
	if r == nil {
		s.m.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	r.name = ward.WardName
	r.meta.IsActive = ward.IsActive
	r.meta.UpdatedAt = time.Now()
	s.m.mu.Unlock()
	return s.FindByID(ctx, ward.ID)
}

func (s *WardMemory) SoftDelete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.softDelete(tableWard, id)
}
