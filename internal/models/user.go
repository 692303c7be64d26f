package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

// Roles lists every known role.
var Roles = []string{RoleUser, RoleAdmin, RoleCoach}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleCoach:
		return true
	}
	return false
}

// User is a league account. PasswordHash is only populated on the login
// lookup path and is never serialized.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sanitized returns a copy of u without the password hash.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
