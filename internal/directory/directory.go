package directory

import (
	"context"

	"campus-eats/internal/model"
)

// Directory resolves user identities to roles for actor-eligibility checks.
// It is consumed read-only; account management lives elsewhere.
type Directory interface {
	// GetRole returns the role recorded for the given user.
	// Returns model.ErrForbidden if the user is unknown.
	GetRole(ctx context.Context, userID string) (model.Role, error)
}
