package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pharmachain/internal/domain/entity"
)

// TokenService abstracts the external identity layer: it validates bearer
// tokens and yields the already-authenticated caller identity the core
// assumes as input.
type TokenService interface {
	// GenerateToken signs an access token for an identity.
	GenerateToken(identity entity.Identity, secret string, ttl time.Duration) (string, error)

	// ValidateToken parses and verifies a token string.
	ValidateToken(tokenString, secret string) (*jwt.Token, error)
}
