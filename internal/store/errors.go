package store

import "forge/internal/apperr"

// errBadRequest wraps apperr.NewBadRequest so store.go callers don't
// need to import apperr directly for this one common case.
func errBadRequest(reason string) error {
	return apperr.NewBadRequest(reason)
}
