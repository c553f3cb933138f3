package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AdminClaims is the JWT payload minted for dashboard sessions.
type AdminClaims struct {
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
	jwt.RegisteredClaims
}

// AdminTokenPayload carries the inputs for minting an admin token.
type AdminTokenPayload struct {
	AdminID uuid.UUID
	Email   string
	JTI     string
}
