// Package kv abstracts the TTL-capable key-value store backing token
// revocation and the per-user session registry. The operation set mirrors the
// handful of commands the service actually issues; every call takes a context
// and drivers are expected to time-box the underlying I/O.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNil reports a missing key on Get.
var ErrNil = errors.New("kv: nil")

// KV is the revocation store protocol. Each operation is a single atomic key
// operation; there is no transaction or locking discipline on top.
type KV interface {
	// Get returns the value at key, or ErrNil when absent.
	Get(ctx context.Context, key string) (string, error)

	// SetEx writes value at key with a time-to-live. The store evicts the
	// key itself once the TTL lapses.
	SetEx(ctx context.Context, key string, ttl time.Duration, value string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Del removes keys. Deleting an absent key is not an error.
	Del(ctx context.Context, keys ...string) error

	// SAdd adds members to the set at key, creating it if needed.
	SAdd(ctx context.Context, key string, members ...string) error

	// SMembers returns all members of the set at key (empty when absent).
	SMembers(ctx context.Context, key string) ([]string, error)

	// Expire sets or refreshes the TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Incr atomically increments the integer at key, creating it at 1.
	Incr(ctx context.Context, key string) (int64, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}
