package models

// RegisterRequest is the registration form. The checkbox is read by presence, not bound.
type RegisterRequest struct {
	Username        string `form:"username" binding:"required" validate:"required"`
	Email           string `form:"email" binding:"required" validate:"required"`
	Password        string `form:"password" binding:"required" validate:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required" validate:"required"`
	IsBusinessOwner bool   `form:"-"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username" binding:"required" validate:"required"`
	Password string `form:"password" binding:"required" validate:"required"`
}
