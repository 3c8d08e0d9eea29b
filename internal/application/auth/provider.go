package auth

import (
	"context"

	"github.com/trackassure/compliance-api/internal/domain/entity"
)

// Credentials is the email/password pair shared by all four backends.
type Credentials struct {
	Email    string
	Password string
}

// Provider is one named authenticator strategy, backed by a single role's
// identity backend. Attempt returns the normalized user on success and an
// error for rejected credentials, transport failures and malformed
// responses alike; the coordinator treats all of those the same.
type Provider interface {
	// Role identifies which backend this provider fronts.
	Role() string
	// Attempt tries the credentials against the backend.
	Attempt(ctx context.Context, creds Credentials) (*entity.User, error)
	// Logout revokes the backend token issued at login.
	Logout(ctx context.Context, token string) error
}

// PriorityOrder is the fixed probe order for the login fallback chain. When
// the same credentials validate against more than one backend, the first
// match wins.
var PriorityOrder = []string{
	entity.RoleSuperAdmin,
	entity.RoleManufacturer,
	entity.RoleDistributor,
	entity.RoleRFC,
}
