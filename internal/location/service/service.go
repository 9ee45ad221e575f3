// Package service wraps the location stores with the validation the
// write paths need: parent-existence and scoped-name-uniqueness checks
// before create, and translation of store sentinels into coded domain
// errors. Reads pass through with not-found signaling.
//
// Every failure is logged once at the layer that first observes it,
// then returned unchanged.
package service

import (
	"errors"

	dErrors "admingeo/pkg/domain-errors"
	"admingeo/pkg/platform/sentinel"
)

// translateNotFound converts the store's not-found sentinel into a
// coded domain error with a caller-facing message; other errors pass
// through untouched.
func translateNotFound(err error, format string, args ...any) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, format, args...)
	}
	return err
}
