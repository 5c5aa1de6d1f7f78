// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrForeignURL is returned when a URL does not address an object in this store.
var ErrForeignURL = errors.New("url does not belong to this store")

// Storage is the interface for uploading and deleting objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
	// KeyFromURL inverts PublicURL: it extracts the object key from a
	// previously issued public URL, or returns ErrForeignURL.
	KeyFromURL(url string) (string, error)
}
