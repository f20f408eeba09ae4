package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens. The API
// issues long-lived tokens because there is no refresh flow; revocation is
// handled by the blacklist instead.
const DefaultAccessTokenTTL = 24 * time.Hour

// Claims are the access-token claims. Only registered claims are used: the
// identity payload lives in the database, not in the token.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds minimally-correct claims for a user subject.
// Every token gets a fresh jti so it can be revoked individually.
func NewAccessClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a unique identifier for the "jti" claim. A random UUIDv4
// gives 122 bits of entropy, which makes collisions a non-concern.
func NewJTI() string {
	return uuid.NewString()
}

// RemainingValidity reports how long the token is still valid for, or zero
// when it has already expired. Tokens without an exp claim report hasExp=false.
func (c *Claims) RemainingValidity(now time.Time) (ttl time.Duration, hasExp bool) {
	if c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Time.Sub(now), true
}
