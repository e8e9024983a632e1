// Package storage selects and constructs the configured object-storage
// provider behind the port.ObjectStorage interface.
package storage

import (
	"fmt"

	"galeria/internal/config"
	"galeria/internal/port"
	miniostorage "galeria/internal/storage/minio"
	s3storage "galeria/internal/storage/s3"
)

// New returns the ObjectStorage implementation named by cfg.Provider.
func New(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	switch cfg.Provider {
	case "s3", "":
		return s3storage.NewClient(cfg)
	case "minio":
		return miniostorage.NewClient(cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider %q (supported: s3, minio)", cfg.Provider)
	}
}
