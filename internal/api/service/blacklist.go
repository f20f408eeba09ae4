package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
	"github.com/hydrous-ai/hydrous/internal/api/store/kv"
	"github.com/hydrous-ai/hydrous/pkg/cryptox"
	"github.com/hydrous-ai/hydrous/pkg/jwtx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

// Key prefixes in the revocation store.
const (
	blacklistPrefix    = "blacklist:"
	userSessionsPrefix = "user_sessions:"
)

// defaultCallTimeout bounds every revocation-store call so a slow store can
// never hang a request.
const defaultCallTimeout = 5 * time.Second

// BlacklistService owns all revocation state: the token blacklist and the
// per-user session registry. It is the only reader and writer of both.
//
// Error policy is deliberately asymmetric, as two named behaviours:
//   - reads fail OPEN: if the store is unreachable during IsRevoked, the
//     token is treated as not revoked so an outage degrades revocation
//     strictness instead of taking down every authenticated request;
//   - writes fail CLOSED: a Revoke that cannot reach the store returns the
//     error so logout can report failure.
type BlacklistService struct {
	KV kv.KV

	// DefaultTTL is used when a token carries no exp claim (default 24h).
	DefaultTTL time.Duration

	// CallTimeout bounds each store call (default 5s).
	CallTimeout time.Duration
}

func (s *BlacklistService) defaultTTL() time.Duration {
	if s.DefaultTTL > 0 {
		return s.DefaultTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *BlacklistService) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// DeriveJTI maps a raw token to its revocation key. Tokens that carry a jti
// claim use it directly; tokens without one (other issuers, pre-registry
// tokens) get a deterministic SHA-256 fingerprint of the raw token, so the
// same bytes always revoke the same key. The token is decoded WITHOUT
// signature verification: revocation must work even when verification would
// fail for unrelated reasons.
func DeriveJTI(rawToken string) string {
	claims, err := jwtx.DecodeUnverified(rawToken)
	if err == nil && claims.ID != "" {
		return claims.ID
	}
	return cryptox.FingerprintToken(rawToken)
}

// Revoke writes a blacklist entry for the token's jti. The entry lives
// exactly as long as the token's remaining validity (but at least one
// second); an entry outliving the token would be pointless, one evicting
// early would make revocation bypassable. Idempotent: revoking an
// already-revoked token just overwrites the entry and refreshes its TTL.
func (s *BlacklistService) Revoke(ctx context.Context, rawToken string) error {
	log := slogx.FromContext(ctx)

	jti := DeriveJTI(rawToken)

	ttl := s.defaultTTL()
	if claims, err := jwtx.DecodeUnverified(rawToken); err == nil {
		if remaining, hasExp := claims.RemainingValidity(time.Now().UTC()); hasExp {
			ttl = max(remaining, time.Second)
		}
	}

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()

	if err := s.KV.SetEx(callCtx, blacklistPrefix+jti, ttl, "1"); err != nil {
		log.Error("failed to blacklist token", "jti", abbrev(jti), "err", err)
		return err
	}

	log.Info("token blacklisted", "jti", abbrev(jti), "ttl", ttl.String())
	return nil
}

// IsRevoked reports whether the token's jti has a live blacklist entry.
// Pure read. Store errors resolve to false (fail-open) and a warning log;
// verification then rests on signature and expiry alone.
func (s *BlacklistService) IsRevoked(ctx context.Context, rawToken string) bool {
	log := slogx.FromContext(ctx)

	jti := DeriveJTI(rawToken)

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()

	exists, err := s.KV.Exists(callCtx, blacklistPrefix+jti)
	if err != nil {
		log.Warn("blacklist check failed, allowing token", "jti", abbrev(jti), "err", err)
		return false
	}
	return exists
}

// RegisterSession records a session in the user's session set and bumps the
// set's TTL to the new record's remaining lifetime. With a plain key TTL this
// approximates "expire with the longest-lived member", which is acceptable
// for best-effort bookkeeping. Side effect only: duplicate registration and
// store errors never fail the caller.
func (s *BlacklistService) RegisterSession(ctx context.Context, userID string, claims jwtx.Claims, deviceInfo map[string]string) {
	log := slogx.FromContext(ctx)

	sessionID := claims.ID
	if sessionID == "" {
		sessionID = jwtx.NewJTI()
	}

	now := time.Now().UTC()
	record := domain.SessionRecord{
		SessionID:  sessionID,
		CreatedAt:  now,
		DeviceInfo: deviceInfo,
	}

	ttl := s.defaultTTL()
	if remaining, hasExp := claims.RemainingValidity(now); hasExp && remaining > 0 {
		ttl = remaining
		expiresAt := claims.ExpiresAt.Time
		record.ExpiresAt = &expiresAt
	}

	payload, err := json.Marshal(record)
	if err != nil {
		log.Error("failed to encode session record", "err", err)
		return
	}

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()

	key := userSessionsPrefix + userID
	if err := s.KV.SAdd(callCtx, key, string(payload)); err != nil {
		log.Error("failed to register session", "user_id", abbrev(userID), "err", err)
		return
	}
	if err := s.KV.Expire(callCtx, key, ttl); err != nil {
		log.Warn("failed to refresh session set ttl", "user_id", abbrev(userID), "err", err)
	}

	log.Info("session registered",
		slog.String("session_id", abbrev(sessionID)),
		slog.String("user_id", abbrev(userID)),
	)
}

// RevokeAllSessions sweeps the user's session registry: it counts every
// recorded session except excludeJTI, deletes the set, and returns the count.
//
// Contract gap inherited from the source design: the swept sessions' tokens
// are NOT blacklisted here, so each remains independently verifiable via
// signature+expiry until it expires or is revoked by token. The registry is
// bookkeeping, not the source of truth.
func (s *BlacklistService) RevokeAllSessions(ctx context.Context, userID, excludeJTI string) (int, error) {
	log := slogx.FromContext(ctx)

	callCtx, cancel := s.callCtx(ctx)
	defer cancel()

	key := userSessionsPrefix + userID

	members, err := s.KV.SMembers(callCtx, key)
	if err != nil {
		log.Error("failed to read session set", "user_id", abbrev(userID), "err", err)
		return 0, err
	}

	invalidated := 0
	for _, raw := range members {
		var record domain.SessionRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			log.Warn("skipping undecodable session record", "err", err)
			continue
		}
		if excludeJTI != "" && record.SessionID == excludeJTI {
			continue
		}
		invalidated++
	}

	if err := s.KV.Del(callCtx, key); err != nil {
		log.Error("failed to delete session set", "user_id", abbrev(userID), "err", err)
		return 0, err
	}

	log.Info("sessions invalidated", "user_id", abbrev(userID), "count", invalidated)
	return invalidated, nil
}

// abbrev shortens identifiers for logs so full jtis and user ids stay out of
// log storage.
func abbrev(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}
