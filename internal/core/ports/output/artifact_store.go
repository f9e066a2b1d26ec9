package ports

import (
	"context"
	"io"
	"time"
)

// ArtifactStore is the object-storage contract for model package archives.
type ArtifactStore interface {
	// Upload writes an object and returns its storage URI.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)

	// Download returns a reader over the stored object.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// PresignedGetURL returns a time-limited download URL for the object.
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Remove deletes the object.
	Remove(ctx context.Context, key string) error
}
