package entity

import "time"

// User roles used in JWT claims and permission checks.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents an authenticated account in the system.
// PasswordHash is a bcrypt hash and is never serialized to API responses.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	Plan         string
	CreatedAt    time.Time
}
