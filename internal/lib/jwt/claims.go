// Package jwt issues and parses the access tokens used by the console.
//
// Maker is the interface handed to the auth service and the HTTP
// middleware; MakerImpl signs tokens with a shared secret.
package jwt

import (
	"time"
)

// Maker generates and parses access tokens.
type Maker interface {
	// GenerateToken signs a token carrying the subject id, email and role.
	GenerateToken(subjectID, email, role string) (string, error)
	// ParseToken validates a token and returns its claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with an HMAC secret and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker creates a MakerImpl from a secret key and token TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
