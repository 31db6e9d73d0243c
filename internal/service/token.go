package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rooby-labs/konexa-go-api/internal/models"
)

// TokenIssuer mints the bearer tokens returned on register and login.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer constructs a token issuer with the given HMAC secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token whose claims carry the identity id, username
// and role.
func (t *TokenIssuer) Issue(user models.User) (string, error) {
	role := "member"
	if user.IsAdmin {
		role = "admin"
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
