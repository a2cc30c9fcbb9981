package domain

import "errors"

// Caller is the identity behind a request: a Discord member of one guild.
type Caller struct {
	Tenant string
	UserID string
	Role   Role
}

// Role represents a caller's access level inside a guild.
type Role string

const (
	// RoleAdmin holds server-management rights: create, give, burn, delete, audit.
	RoleAdmin Role = "admin"

	// RoleMember may pay from their own account and read balances.
	RoleMember Role = "member"
)

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// CanAdminister checks if the role may run administrative ledger operations.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
	ErrTenantMismatch   = errors.New("token does not belong to this tenant")
)
