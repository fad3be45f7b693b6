package domain

import "time"

// Role is the access-level claim assigned to an identity at sign-up.
// Role strings are stored as provided; only RoleAdmin grants privileged access.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Identity is the identity provider's record for an account: credentials plus
// the role claim embedded into issued tokens.
type Identity struct {
	UID          string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// User is the profile document mirrored into the store at sign-up. It is not
// consulted for authorization; the token's role claim is authoritative.
type User struct {
	UID       string
	Email     string
	Role      Role
	CreatedAt time.Time
}
