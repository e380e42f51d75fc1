package model

import "time"

// Role is an access level label attached to a user.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole maps a raw string onto a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User is a registered account with its role set.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
}

// Actor is the already-authenticated identity an operation runs as. The core
// consumes actors; token issuance and validation live outside it.
type Actor struct {
	ID    int64
	Roles []Role
}

// HasRole reports whether the actor holds the given role.
func (a Actor) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
