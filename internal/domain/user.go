package domain

import "time"

// Role determines what a user may do inside their tenant.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User is the domain model for tenant members. A user belongs to exactly one
// tenant for its whole lifetime.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	TenantID     string
	CreatedAt    time.Time
}
