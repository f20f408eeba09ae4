package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a deterministic SHA-256 fingerprint of a raw
// token, base64url-encoded (43 chars). Tokens that carry no jti claim are
// keyed in the revocation store by this fingerprint, so identical token
// bytes always resolve to the same revocation entry.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
