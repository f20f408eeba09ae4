package revocation_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/service"
	kvredis "github.com/hydrous-ai/hydrous/internal/api/store/kv/drivers/redis"
	"github.com/hydrous-ai/hydrous/pkg/jwtx"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"
)

/*
 * End-to-end tests for token revocation against a real Redis instance.
 * Requires Docker; set E2E_SKIP=1 to skip without one.
 */

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func startRedis(t *testing.T) *kvredis.Store {
	t.Helper()

	if os.Getenv("E2E_SKIP") != "" {
		t.Skip("E2E_SKIP set, skipping container-backed tests")
	}
	if testing.Short() {
		t.Skip("short mode, skipping container-backed tests")
	}

	ctx := context.Background()

	container, err := rediscontainer.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := kvredis.NewStore(uri, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(ctx))
	return store
}

func TestRevocationAgainstRedis(t *testing.T) {
	store := startRedis(t)
	svc := &service.BlacklistService{KV: store}
	signer := jwtx.NewHS256(testSecret)
	ctx := context.Background()

	t.Run("revoked token stays revoked across service instances", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(uuid.NewString(), time.Hour, "e2e", time.Now().UTC())
		raw, err := signer.Sign(claims)
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, raw))

		// A second service sharing the store sees the same revocation.
		other := &service.BlacklistService{KV: store}
		require.True(t, other.IsRevoked(ctx, raw))
	})

	t.Run("blacklist entry expires with the token", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(uuid.NewString(), 2*time.Second, "e2e", time.Now().UTC())
		raw, err := signer.Sign(claims)
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, raw))
		require.True(t, svc.IsRevoked(ctx, raw))

		require.Eventually(t, func() bool {
			return !svc.IsRevoked(ctx, raw)
		}, 10*time.Second, 250*time.Millisecond)
	})

	t.Run("already expired token gets the minimum entry lifetime", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(uuid.NewString(), time.Minute, "e2e", time.Now().UTC().Add(-2*time.Minute))
		raw, err := signer.Sign(claims)
		require.NoError(t, err)

		// TTL clamps to one second instead of a rejected negative expiry.
		require.NoError(t, svc.Revoke(ctx, raw))
	})

	t.Run("session registry sweep", func(t *testing.T) {
		userID := uuid.NewString()

		var current jwtx.Claims
		for i := 0; i < 3; i++ {
			claims := jwtx.NewAccessClaims(userID, time.Hour, "e2e", time.Now().UTC())
			svc.RegisterSession(ctx, userID, claims, map[string]string{"device": "e2e"})
			current = claims
		}

		count, err := svc.RevokeAllSessions(ctx, userID, current.ID)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		count, err = svc.RevokeAllSessions(ctx, userID, "")
		require.NoError(t, err)
		require.Zero(t, count)
	})
}
