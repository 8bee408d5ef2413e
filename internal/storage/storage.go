package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/staffdir/staffdir-backend/internal/config"
)

// ObjectStorage defines the operations needed for employee images across
// backends.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error

	// URL returns the public URL clients use to fetch the object.
	URL(key string) string
}

// New constructs the backend selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (ObjectStorage, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocal(cfg.UploadDir)
	case "minio":
		return NewMinio(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
