package domain

import "time"

// User is a registered account. Role stores the denormalised role name; a user
// whose role cannot be resolved to one of the known roles is treated as
// non-existent for authorization purposes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the authenticated actor attached to a request after token
// resolution. It lives for the duration of a single request.
type Principal struct {
	ID      string
	Role    Role
	Enabled bool
}

// PrincipalOf derives the request principal from a resolved user.
func PrincipalOf(u *User) Principal {
	return Principal{ID: u.ID, Role: u.Role, Enabled: u.Enabled}
}
