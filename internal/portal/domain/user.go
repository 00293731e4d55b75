package domain

import "time"

// User is a credential record. Everything the portal shows about a person
// lives on the Profile; the user row only exists so someone can log in.
type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id, PHC encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a server-side login session. One row per device login; the
// access token carries the session id, and revoking the row kills the
// session everywhere the token is checked.
type Session struct {
	ID        string
	UserID    string
	TokenHash string // SHA-256 fingerprint of the opaque refresh token
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
