package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"galeria/internal/config"
	"galeria/internal/domain"
	"galeria/internal/port"
)

// ProxiedUploadInput is the DTO for uploads whose bytes pass through this
// server.
type ProxiedUploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadResult is returned after a successful proxied upload.
type UploadResult struct {
	ObjectName string
	ViewURL    string
	ETag       string
}

// PresignRequest is the DTO for the direct-upload handshake.
type PresignRequest struct {
	FileName string
	FileType string
	FileSize int64
}

// PresignResult carries everything the client needs to PUT the file straight
// to the backend.
type PresignResult struct {
	UploadURL  string
	ViewURL    string
	ObjectName string
	ExpiresAt  time.Time
}

// UploadService defines the server half of the upload protocols.
type UploadService interface {
	Upload(ctx context.Context, input ProxiedUploadInput) (*UploadResult, error)
	Presign(ctx context.Context, req PresignRequest) (*PresignResult, error)
}

type uploadService struct {
	storage port.ObjectStorage
	cfg     *config.Config
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(storage port.ObjectStorage, cfg *config.Config) UploadService {
	return &uploadService{storage: storage, cfg: cfg}
}

// validate enforces the server-side upload policy. It runs before any
// backend call so rejected requests never touch storage.
func (s *uploadService) validate(contentType string, size, maxMB int64) error {
	if !domain.AllowedUploadTypes[contentType] {
		return fmt.Errorf("%w: only JPG, PNG or GIF are allowed", domain.ErrUnsupportedFileType)
	}
	if size > maxMB*1024*1024 {
		return fmt.Errorf("%w: maximum of %dMB allowed", domain.ErrFileTooLarge, maxMB)
	}
	if s.cfg.Storage.Namespace == "" || s.cfg.Storage.Bucket == "" {
		return fmt.Errorf("%w: GALERIA_STORAGE_NAMESPACE and GALERIA_STORAGE_BUCKET must be set", domain.ErrMissingConfig)
	}
	return nil
}

func (s *uploadService) Upload(ctx context.Context, input ProxiedUploadInput) (*UploadResult, error) {
	if err := s.validate(input.ContentType, input.Size, s.cfg.Upload.MaxProxiedMB); err != nil {
		return nil, err
	}

	key := objectKey(s.cfg.Upload.Folder, input.FileName, timeNow())

	log.Printf("uploadService.Upload: uploading %s (%s, %d bytes) as %s",
		input.FileName, input.ContentType, input.Size, key)

	out, err := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        input.Body,
		ContentType: input.ContentType,
		Size:        input.Size,
	})
	if err != nil {
		log.Printf("uploadService.Upload: storage upload failed for %s: %v", key, err)
		return nil, err
	}

	return &UploadResult{
		ObjectName: key,
		ViewURL:    ViewURL(&s.cfg.Storage, key),
		ETag:       out.ETag,
	}, nil
}

func (s *uploadService) Presign(ctx context.Context, req PresignRequest) (*PresignResult, error) {
	if err := s.validate(req.FileType, req.FileSize, s.cfg.Upload.MaxDirectMB); err != nil {
		return nil, err
	}

	key := objectKey(s.cfg.Upload.Folder, req.FileName, timeNow())

	presigned, err := s.storage.PresignUpload(ctx, key, req.FileType, s.cfg.Upload.PresignExpiry)
	if err != nil {
		log.Printf("uploadService.Presign: presign failed for %s: %v", key, err)
		return nil, err
	}

	log.Printf("uploadService.Presign: issued upload URL for %s, expires %s",
		key, presigned.ExpiresAt.Format(time.RFC3339))

	return &PresignResult{
		UploadURL:  presigned.UploadURL,
		ViewURL:    ViewURL(&s.cfg.Storage, key),
		ObjectName: key,
		ExpiresAt:  presigned.ExpiresAt,
	}, nil
}
