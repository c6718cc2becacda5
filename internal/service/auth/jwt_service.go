// Package auth provides token issuing/verification and password hashing.
package auth

import (
	"context"
	"time"

	"github.com/fmardones/reparto-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token embedding the usuario's id,
	// username and email, with the configured expiry.
	GenerateToken(ctx context.Context, usuario *domain.Usuario) (string, error)

	// ValidateToken validates a token string and extracts the claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure; validation
	// failure is a hard rejection, no partial trust.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the token payload: the usuario identity plus standard
// registered claims.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
