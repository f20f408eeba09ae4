// Package storage is the object-storage boundary for uploaded files. The
// rest of the system only sees this interface; swapping the filesystem driver
// for a bucket-backed one is a wiring change.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound reports a missing object key.
var ErrNotFound = errors.New("storage: object not found")

// BlobStore stores and retrieves opaque blobs by key.
type BlobStore interface {
	// Put writes the blob under key, overwriting any existing object.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error

	// Open returns a reader for the blob at key, or ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob at key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
