package storage

import (
	"context"
	"io"
	"time"
)

// Service stores user avatar images in remote object storage.
type Service interface {
	// Upload writes one object and returns its s3://bucket/key location.
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error)
	// GetObjectURL returns a presigned, time-limited download URL.
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
