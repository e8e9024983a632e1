package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"galeria/internal/config"
	"galeria/internal/domain"
	"galeria/internal/port"
)

type minioClient struct {
	client *minio.Client
	bucket string
}

// NewClient creates a MinIO-backed ObjectStorage implementation. Any
// S3-compatible endpoint works; only the endpoint and credentials change.
func NewClient(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &minioClient{client: client, bucket: cfg.Bucket}, nil
}

func (c *minioClient) List(ctx context.Context, prefix string) ([]domain.StoredObject, error) {
	objects := []domain.StoredObject{}

	objectCh := c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, classify("minio list", object.Err)
		}
		objects = append(objects, domain.StoredObject{
			Name:         object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
			ETag:         strings.Trim(object.ETag, `"`),
		})
	}
	return objects, nil
}

func (c *minioClient) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	info, err := c.client.PutObject(ctx, c.bucket, input.Key, input.Body, input.Size, minio.PutObjectOptions{
		ContentType: input.ContentType,
	})
	if err != nil {
		return nil, classify("minio upload", err)
	}

	return &port.UploadOutput{Key: input.Key, ETag: strings.Trim(info.ETag, `"`)}, nil
}

func (c *minioClient) Download(ctx context.Context, key string) ([]byte, error) {
	reader, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify("minio download", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, classify("minio download read", err)
	}
	return data, nil
}

func (c *minioClient) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (*domain.PresignedUpload, error) {
	extraHeaders := http.Header{}
	if contentType != "" {
		extraHeaders.Set("Content-Type", contentType)
	}

	u, err := c.client.PresignHeader(ctx, http.MethodPut, c.bucket, key, expiry, nil, extraHeaders)
	if err != nil {
		return nil, classify("minio presign", err)
	}

	return &domain.PresignedUpload{
		UploadURL: u.String(),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// classify maps MinIO error responses onto the domain error taxonomy.
func classify(op string, err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.Code {
		case "NoSuchBucket":
			return fmt.Errorf("%s: %w", op, domain.ErrBucketNotFound)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%s: %w", op, domain.ErrAuthFailed)
		}
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
}
