package domain

import "time"

const RoleAdmin = "admin"

// Admin models an administrator account. PasswordHash is a bcrypt hash;
// the plaintext password is never stored, returned, or logged.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
