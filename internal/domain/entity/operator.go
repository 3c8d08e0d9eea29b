package entity

import "time"

// Operator is a gateway-managed staff account (created through the
// super-admin console), distinct from the identities owned by the four role
// backends.
type Operator struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Name         string
	Role         string // one of the four account roles
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
