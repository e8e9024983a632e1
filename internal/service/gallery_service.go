package service

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"galeria/internal/config"
	"galeria/internal/domain"
	"galeria/internal/port"
)

// GalleryService lists the gallery's images, newest first.
type GalleryService interface {
	List(ctx context.Context) ([]domain.GalleryImage, error)
}

type galleryService struct {
	storage port.ObjectStorage
	cfg     *config.Config
}

// NewGalleryService creates a new GalleryService implementation.
func NewGalleryService(storage port.ObjectStorage, cfg *config.Config) GalleryService {
	return &galleryService{storage: storage, cfg: cfg}
}

// List fetches every object under the gallery folder, keeps only image
// extensions, derives each public view URL, and sorts by recency. Any
// storage failure propagates as-is; there are no partial results.
func (s *galleryService) List(ctx context.Context) ([]domain.GalleryImage, error) {
	// Derived view URLs embed the namespace and bucket, so listing without
	// them would hand out malformed links. PublicBase replaces the derived
	// host entirely and needs neither.
	if s.cfg.Storage.PublicBase == "" && (s.cfg.Storage.Namespace == "" || s.cfg.Storage.Bucket == "") {
		return nil, fmt.Errorf("%w: GALERIA_STORAGE_NAMESPACE and GALERIA_STORAGE_BUCKET must be set", domain.ErrMissingConfig)
	}

	objects, err := s.storage.List(ctx, s.cfg.Upload.Folder+"/")
	if err != nil {
		return nil, err
	}

	images := []domain.GalleryImage{}
	for _, obj := range objects {
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(obj.Name)), ".")
		if !domain.GalleryExtensions[ext] {
			continue
		}
		images = append(images, domain.GalleryImage{
			ID:           obj.Name,
			Name:         obj.Name,
			URL:          ViewURL(&s.cfg.Storage, obj.Name),
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ETag:         obj.ETag,
		})
	}

	// Most recent first; zero timestamps sort as oldest.
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].LastModified.After(images[j].LastModified)
	})

	return images, nil
}

// Paginate returns the page-th window (1-based) of size perPage over images.
// Concatenating all pages in order reproduces the input exactly.
func Paginate(images []domain.GalleryImage, page, perPage int) []domain.GalleryImage {
	if page < 1 || perPage < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(images) {
		return nil
	}
	end := start + perPage
	if end > len(images) {
		end = len(images)
	}
	return images[start:end]
}
