package storage

import (
	"context"
	"io"
)

// StorageInterface is the object store produced files are mirrored into.
type StorageInterface interface {
	BucketName() string
	Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
}
