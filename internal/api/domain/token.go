package domain

import "time"

// TokenData is what a successful login returns: the signed access token plus
// enough metadata for the client to schedule renewal. The token itself is
// never persisted server-side.
type TokenData struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"` // always "bearer"
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	JTI         string    `json:"-"`
}
