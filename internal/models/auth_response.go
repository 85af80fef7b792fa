package models

import "time"

// RegisterResponse describes the account created by a registration
type RegisterResponse struct {
	Message         string    `json:"message"`
	UserID          int64     `json:"user_id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	IsBusinessOwner bool      `json:"is_business_owner"`
	CreatedAt       time.Time `json:"created_at"`
}
