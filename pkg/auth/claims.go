package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/angelmondragon/orderdesk-backend/pkg/enums"
)

// AccessTokenPayload is the input for minting an access token.
type AccessTokenPayload struct {
	UserID   uint64
	Username string
	Role     enums.Role
	// JTI names the session entry; a fresh one is generated when empty.
	JTI string
}

// AccessTokenClaims is the typed JWT body handed to clients.
type AccessTokenClaims struct {
	UserID   uint64     `json:"uid"`
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
