package entities

import "time"

// User represents a registered account in the database
type User struct {
	ID              int64     `db:"id" json:"id"`
	Username        string    `db:"username" json:"username"`
	Email           string    `db:"email" json:"email"`
	PasswordHash    string    `db:"password_hash" json:"-"` // Don't expose password hash in JSON
	IsBusinessOwner bool      `db:"is_business_owner" json:"is_business_owner"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
