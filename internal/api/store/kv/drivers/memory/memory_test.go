package memory

import (
	"context"
	"testing"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/store/kv"

	"github.com/stretchr/testify/require"
)

func TestSetExAndGet(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewStoreWithClock(func() time.Time { return now })

	require.NoError(t, s.SetEx(ctx, "blacklist:abc", time.Minute, "1"))

	val, err := s.Get(ctx, "blacklist:abc")
	require.NoError(t, err)
	require.Equal(t, "1", val)

	ok, err := s.Exists(ctx, "blacklist:abc")
	require.NoError(t, err)
	require.True(t, ok)

	// Advance past the TTL; the key must be gone.
	now = now.Add(2 * time.Minute)

	_, err = s.Get(ctx, "blacklist:abc")
	require.ErrorIs(t, err, kv.ErrNil)

	ok, err = s.Exists(ctx, "blacklist:abc")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetExOverwriteRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewStoreWithClock(func() time.Time { return now })

	require.NoError(t, s.SetEx(ctx, "k", time.Minute, "1"))
	now = now.Add(50 * time.Second)
	require.NoError(t, s.SetEx(ctx, "k", time.Minute, "1"))
	now = now.Add(50 * time.Second)

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSets(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewStoreWithClock(func() time.Time { return now })

	require.NoError(t, s.SAdd(ctx, "user_sessions:u1", "a", "b"))
	require.NoError(t, s.SAdd(ctx, "user_sessions:u1", "b", "c"))

	members, err := s.SMembers(ctx, "user_sessions:u1")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, members)

	require.NoError(t, s.Expire(ctx, "user_sessions:u1", time.Minute))
	now = now.Add(2 * time.Minute)

	members, err = s.SMembers(ctx, "user_sessions:u1")
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.SAdd(ctx, "set", "a"))
	require.NoError(t, s.Del(ctx, "set", "never-existed"))

	members, err := s.SMembers(ctx, "set")
	require.NoError(t, err)
	require.Empty(t, members)
}

func TestIncr(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	n, err := s.Incr(ctx, "counter")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = s.Incr(ctx, "counter")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}
