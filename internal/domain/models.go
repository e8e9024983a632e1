package domain

import "time"

// StoredObject is one file resident in the object-storage backend. The
// backend is the sole source of truth; instances are never mutated locally.
type StoredObject struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	ETag         string    `json:"etag"`
}

// GalleryImage is the derived view of a stored object exposed by the gallery
// listing. URL is recomputed from the object name and storage location on
// every listing; it is never persisted.
type GalleryImage struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	ETag         string    `json:"etag"`
}

// PresignedUpload grants write-only, time-boxed access to a single object
// key. After ExpiresAt the backend rejects any use of UploadURL.
type PresignedUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
