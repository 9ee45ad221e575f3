// Package store persists the division tree. Each entity gets a
// Postgres store and an in-memory twin with identical semantics; both
// return sentinel errors that services translate into domain errors.
//
// Reads are eager: every returned node carries its full ancestor chain
// and its immediate children. Ancestors are joined in a single query;
// children come from one grouped follow-up query, never per-row.
package store

import (
	"database/sql"

	"admingeo/internal/domain"
	"admingeo/internal/location/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Nullable column sets for each entity. Ancestors are LEFT JOINed with
// their soft-delete filter in the join condition, so a deleted parent
// scans as all-NULL and hydrates to nil rather than hiding the child.

type provinceCols struct {
	id        sql.NullInt64
	name      sql.NullString
	isActive  sql.NullBool
	createdAt sql.NullTime
	updatedAt sql.NullTime
	deletedAt sql.NullTime
}

func (c *provinceCols) dests() []any {
	return []any{&c.id, &c.name, &c.isActive, &c.createdAt, &c.updatedAt, &c.deletedAt}
}

func (c *provinceCols) toModel() *models.Province {
	if !c.id.Valid {
		return nil
	}
	return &models.Province{
		Metadata:     toMetadata(c.id, c.isActive, c.createdAt, c.updatedAt, c.deletedAt),
		ProvinceName: c.name.String,
	}
}

type districtCols struct {
	id        sql.NullInt64
	name      sql.NullString
	isActive  sql.NullBool
	createdAt sql.NullTime
	updatedAt sql.NullTime
	deletedAt sql.NullTime
}

func (c *districtCols) dests() []any {
	return []any{&c.id, &c.name, &c.isActive, &c.createdAt, &c.updatedAt, &c.deletedAt}
}

func (c *districtCols) toModel() *models.District {
	if !c.id.Valid {
		return nil
	}
	return &models.District{
		Metadata:     toMetadata(c.id, c.isActive, c.createdAt, c.updatedAt, c.deletedAt),
		DistrictName: c.name.String,
	}
}

type constituencyCols struct {
	id        sql.NullInt64
	name      sql.NullString
	isActive  sql.NullBool
	createdAt sql.NullTime
	updatedAt sql.NullTime
	deletedAt sql.NullTime
}

func (c *constituencyCols) dests() []any {
	return []any{&c.id, &c.name, &c.isActive, &c.createdAt, &c.updatedAt, &c.deletedAt}
}

func (c *constituencyCols) toModel() *models.Constituency {
	if !c.id.Valid {
		return nil
	}
	return &models.Constituency{
		Metadata:         toMetadata(c.id, c.isActive, c.createdAt, c.updatedAt, c.deletedAt),
		ConstituencyName: c.name.String,
	}
}

type wardCols struct {
	id        sql.NullInt64
	name      sql.NullString
	isActive  sql.NullBool
	createdAt sql.NullTime
	updatedAt sql.NullTime
	deletedAt sql.NullTime
}

func (c *wardCols) dests() []any {
	return []any{&c.id, &c.name, &c.isActive, &c.createdAt, &c.updatedAt, &c.deletedAt}
}

func (c *wardCols) toModel() *models.Ward {
	if !c.id.Valid {
		return nil
	}
	return &models.Ward{
		Metadata: toMetadata(c.id, c.isActive, c.createdAt, c.updatedAt, c.deletedAt),
		WardName: c.name.String,
	}
}

func toMetadata(id sql.NullInt64, isActive sql.NullBool, createdAt, updatedAt, deletedAt sql.NullTime) domain.Metadata {
	m := domain.Metadata{
		ID:        id.Int64,
		IsActive:  isActive.Bool,
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		m.DeletedAt = &t
	}
	return m
}
