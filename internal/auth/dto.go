package auth

import "github.com/angelmondragon/orderdesk-backend/internal/users"

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
