package outbound

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrBackendUnavailable is returned by adapters that refuse calls while a
// backing service is known to be failing.
var ErrBackendUnavailable = errors.New("backend unavailable")

// PutObjectInput describes an object write.
type PutObjectInput struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectStoragePort defines object storage operations.
type ObjectStoragePort interface {
	// Put uploads an object with its attached metadata.
	Put(ctx context.Context, in *PutObjectInput) error

	// GetPresignedURL generates a presigned URL for temporary read access.
	GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
}
