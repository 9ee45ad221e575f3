package domain

import "time"

// Metadata is the lifecycle block shared by every entity, embedded by
// value. A non-nil DeletedAt means the row is soft-deleted and excluded
// from all default queries; no code path clears it.
type Metadata struct {
	ID        int64      `json:"id"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Deleted reports whether the row is soft-deleted.
func (m Metadata) Deleted() bool {
	return m.DeletedAt != nil
}
