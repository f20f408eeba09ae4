package domain

import "time"

// SessionRecord is best-effort bookkeeping for "log out everywhere". The
// source of truth for token validity is signature + expiry + blacklist; a
// session record merely remembers that a token was issued.
type SessionRecord struct {
	SessionID  string            `json:"session_id"` // the token's jti
	CreatedAt  time.Time         `json:"created_at"`
	ExpiresAt  *time.Time        `json:"expires_at,omitempty"`
	DeviceInfo map[string]string `json:"device_info,omitempty"`
}
