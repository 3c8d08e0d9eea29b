package entity

// Account roles. One per identity backend; fixed for the lifetime of a
// session.
const (
	RoleSuperAdmin   = "super-admin"
	RoleManufacturer = "manufacturer"
	RoleDistributor  = "distributor"
	RoleRFC          = "rfc"
)

// Manufacturer approval statuses. Anything other than APPROVED (including
// values this build does not know about) counts as not yet approved.
const (
	StatusPending      = "PENDING"
	StatusAcknowledged = "ACKNOWLEDGED"
	StatusApproved     = "APPROVED"
)

// Roles lists the valid roles in backend priority order.
var Roles = []string{RoleSuperAdmin, RoleManufacturer, RoleDistributor, RoleRFC}

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the canonical authenticated identity, normalized from whichever
// backend accepted the credentials.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Role         string         `json:"role"`
	Status       string         `json:"status,omitempty"`        // manufacturer only
	BackendToken string         `json:"backend_token,omitempty"` // token issued by the owning backend, revoked on logout
	Profile      map[string]any `json:"profile,omitempty"`       // role-specific fields (KYC, address, tax ids), carried opaquely
}

// Approved reports whether a manufacturer has been approved. The status
// field is meaningful only for the manufacturer role.
func (u *User) Approved() bool {
	return u != nil && u.Role == RoleManufacturer && u.Status == StatusApproved
}
