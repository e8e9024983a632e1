package port

import (
	"context"
	"io"
	"time"

	"galeria/internal/domain"
)

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Key  string
	ETag string
}

// ObjectStorage abstracts the object-storage backend. Implementations are
// bound to a single bucket and safe for concurrent use. Failures are
// classified into the domain error taxonomy (ErrBucketNotFound,
// ErrAuthFailed, ErrStorageUnavailable) so callers never inspect messages.
type ObjectStorage interface {
	// List returns every object under prefix. An empty slice means zero
	// objects, distinct from an error.
	List(ctx context.Context, prefix string) ([]domain.StoredObject, error)
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, key string) ([]byte, error)
	// PresignUpload returns a write-only URL for exactly one object key,
	// valid until the returned expiry. The content type is signed into the
	// URL; a PUT carrying a different one is rejected by the backend.
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (*domain.PresignedUpload, error)
}
