package auth

import "errors"

// ErrForbidden means the caller is authenticated but does not own the resource.
var ErrForbidden = errors.New("forbidden")

// Authorize permits a mutation only when actor owns the resource. Resources
// without an owner are never mutable.
func Authorize(actor Identity, ownerID *string) error {
	if actor.UserID == "" || ownerID == nil || *ownerID != actor.UserID {
		return ErrForbidden
	}
	return nil
}
