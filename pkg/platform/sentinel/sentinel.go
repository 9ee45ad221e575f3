package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these
// (optionally wrapped) so services can translate them into domain
// errors with request-specific messages.
//
// These represent factual states about rows, not validation failures:
// - ErrNotFound: no live (non-soft-deleted) row matches
// - ErrConflict: a row with the same scoped name already exists
//
// For validation errors (bad input, missing fields), use
// pkg/domain-errors directly.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
