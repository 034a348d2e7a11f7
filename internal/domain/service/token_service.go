package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ratehub/internal/domain/entity"
)

// Claims defines the custom claims carried by access tokens.
type Claims struct {
	UserID uuid.UUID   `json:"id"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating bearer
// tokens. This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(user *entity.User) (string, error)

	// ValidateToken checks the signature and expiry of a token string and
	// returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}
