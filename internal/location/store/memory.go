package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"admingeo/internal/domain"
	"admingeo/internal/location/models"
	"admingeo/pkg/platform/sentinel"
)

// Memory is the in-memory twin of the Postgres stores. It backs unit
// tests and mirrors the Postgres semantics exactly: substring name
// matching, soft-delete filtering, eager ancestor/child hydration, and
// nil ancestors when a parent row is soft-deleted.
type Memory struct {
	mu   sync.RWMutex
	seq  int64
	rows map[table]map[int64]*rec
}

type table int

const (
	tableProvince table = iota
	tableDistrict
	tableConstituency
	tableWard
)

type rec struct {
	meta     domain.Metadata
	name     string
	parentID int64
}

func NewMemory() *Memory {
	return &Memory{
		rows: map[table]map[int64]*rec{
			tableProvince:     {},
			tableDistrict:     {},
			tableConstituency: {},
			tableWard:         {},
		},
	}
}

// Provinces returns the province store view.
func (m *Memory) Provinces() *ProvinceMemory { return &ProvinceMemory{m} }

// Districts returns the district store view.
func (m *Memory) Districts() *DistrictMemory { return &DistrictMemory{m} }

// Constituencies returns the constituency store view.
func (m *Memory) Constituencies() *ConstituencyMemory { return &ConstituencyMemory{m} }

// Wards returns the ward store view.
func (m *Memory) Wards() *WardMemory { return &WardMemory{m} }

func (m *Memory) insert(t table, name string, parentID int64) int64 {
	m.seq++
	now := time.Now()
	m.rows[t][m.seq] = &rec{
		meta:     domain.Metadata{ID: m.seq, IsActive: true, CreatedAt: now, UpdatedAt: now},
		name:     name,
		parentID: parentID,
	}
	return m.seq
}

// live returns the non-deleted row or nil.
func (m *Memory) live(t table, id int64) *rec {
	r, ok := m.rows[t][id]
	if !ok || r.meta.Deleted() {
		return nil
	}
	return r
}

// liveRows returns non-deleted rows in id order.
func (m *Memory) liveRows(t table) []*rec {
	out := make([]*rec, 0, len(m.rows[t]))
	for _, r := range m.rows[t] {
		if !r.meta.Deleted() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].meta.ID < out[j].meta.ID })
	return out
}

func (m *Memory) softDelete(t table, id int64) error {
	r := m.live(t, id)
	if r == nil {
		return sentinel.ErrNotFound
	}
	now := time.Now()
	r.meta.DeletedAt = &now
	r.meta.UpdatedAt = now
	return nil
}

func contains(name, term string) bool {
	return strings.Contains(name, term)
}

// Hydration helpers. Each builds the same shape the Postgres stores
// return. locked: callers hold m.mu.

func (m *Memory) provinceModel(r *rec, withChildren bool) *models.Province {
	p := &models.Province{Metadata: r.meta, ProvinceName: r.name}
	if withChildren {
		p.Districts = []models.District{}
		for _, d := range m.liveRows(tableDistrict) {
			if d.parentID == r.meta.ID {
				p.Districts = append(p.Districts, models.District{Metadata: d.meta, DistrictName: d.name})
			}
		}
	}
	return p
}

func (m *Memory) districtModel(r *rec, withChildren bool) *models.District {
	d := &models.District{Metadata: r.meta, DistrictName: r.name}
	if p := m.live(tableProvince, r.parentID); p != nil {
		d.Province = &models.Province{Metadata: p.meta, ProvinceName: p.name}
	}
	if withChildren {
		d.Constituencies = []models.Constituency{}
		for _, c := range m.liveRows(tableConstituency) {
			if c.parentID == r.meta.ID {
				d.Constituencies = append(d.Constituencies, models.Constituency{Metadata: c.meta, ConstituencyName: c.name})
			}
		}
	}
	return d
}

func (m *Memory) constituencyModel(r *rec, withChildren bool) *models.Constituency {
	c := &models.Constituency{Metadata: r.meta, ConstituencyName: r.name}
	if d := m.live(tableDistrict, r.parentID); d != nil {
		c.District = m.districtModel(d, false)
	}
	if withChildren {
		c.Wards = []models.Ward{}
		for _, w := range m.liveRows(tableWard) {
			if w.parentID == r.meta.ID {
				c.Wards = append(c.Wards, models.Ward{Metadata: w.meta, WardName: w.name})
			}
		}
	}
	return c
}

func (m *Memory) wardModel(r *rec) *models.Ward {
	w := &models.Ward{Metadata: r.meta, WardName: r.name}
	if c := m.live(tableConstituency, r.parentID); c != nil {
		w.Constituency = m.constituencyModel(c, false)
	}
	return w
}

// Ancestor walk helpers, nil-safe against deleted parents.

func (m *Memory) districtOf(constituency *rec) *rec {
	return m.live(tableDistrict, constituency.parentID)
}

func (m *Memory) provinceOf(district *rec) *rec {
	return m.live(tableProvince, district.parentID)
}
