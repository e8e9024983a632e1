package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrMissingConfig       = errors.New("missing required storage configuration")
	ErrBucketNotFound      = errors.New("bucket not found")
	ErrAuthFailed          = errors.New("storage authentication failed")
	ErrStorageUnavailable  = errors.New("storage backend unavailable")
)
