package entity

import "time"

// User is the account that owns todo lists.
// Password holds a bcrypt hash, never the plain secret.
// Accounts are created at registration and not mutated by this application.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
