package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"galeria/internal/domain"
	"galeria/internal/service"
	"galeria/mocks"
)

func TestGalleryService_List_FiltersNonImages(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGalleryService(storage, testConfig())

	storage.On("List", mock.Anything, "casamento/").Return([]domain.StoredObject{
		{Name: "casamento/a.png", Size: 10},
		{Name: "casamento/b.txt", Size: 20},
		{Name: "casamento/c.jpg", Size: 30},
		{Name: "casamento/d.JPEG", Size: 40},
		{Name: "casamento/e.webp", Size: 50},
		{Name: "casamento/noext", Size: 60},
	}, nil)

	images, err := svc.List(context.Background())

	require.NoError(t, err)
	names := make([]string, len(images))
	for i, img := range images {
		names[i] = img.Name
	}
	assert.ElementsMatch(t,
		[]string{"casamento/a.png", "casamento/c.jpg", "casamento/d.JPEG", "casamento/e.webp"},
		names)
}

func TestGalleryService_List_SortsNewestFirst(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGalleryService(storage, testConfig())

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	storage.On("List", mock.Anything, mock.Anything).Return([]domain.StoredObject{
		{Name: "casamento/old.jpg", LastModified: old},
		{Name: "casamento/undated.jpg"}, // zero timestamp sorts last
		{Name: "casamento/new.jpg", LastModified: recent},
	}, nil)

	images, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "casamento/new.jpg", images[0].Name)
	assert.Equal(t, "casamento/old.jpg", images[1].Name)
	assert.Equal(t, "casamento/undated.jpg", images[2].Name)
}

func TestGalleryService_List_DerivesViewURLs(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGalleryService(storage, testConfig())

	storage.On("List", mock.Anything, mock.Anything).Return([]domain.StoredObject{
		{Name: "casamento/a.jpg"},
	}, nil)

	images, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t,
		"https://objectstorage.us-ashburn-1.oraclecloud.com/n/idabc/b/fotos/o/casamento%2Fa.jpg",
		images[0].URL)
}

func TestGalleryService_List_MissingConfig(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testConfig()
	cfg.Storage.Namespace = ""
	cfg.Storage.Bucket = ""
	svc := service.NewGalleryService(storage, cfg)

	_, err := svc.List(context.Background())

	assert.ErrorIs(t, err, domain.ErrMissingConfig)
	storage.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGalleryService_List_PublicBaseNeedsNoNamespace(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	cfg := testConfig()
	cfg.Storage.Namespace = ""
	cfg.Storage.Bucket = ""
	cfg.Storage.PublicBase = "https://cdn.example.com/fotos/"
	svc := service.NewGalleryService(storage, cfg)

	storage.On("List", mock.Anything, mock.Anything).Return([]domain.StoredObject{
		{Name: "casamento/a.jpg"},
	}, nil)

	images, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.example.com/fotos/casamento%2Fa.jpg", images[0].URL)
}

func TestGalleryService_List_PropagatesStorageError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewGalleryService(storage, testConfig())

	boom := errors.New("connection refused")
	storage.On("List", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := svc.List(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestPaginate_WindowsReassembleInput(t *testing.T) {
	images := make([]domain.GalleryImage, 45)
	for i := range images {
		images[i] = domain.GalleryImage{ID: string(rune('a' + i%26))}
	}

	var joined []domain.GalleryImage
	for page := 1; ; page++ {
		window := service.Paginate(images, page, 20)
		if len(window) == 0 {
			break
		}
		joined = append(joined, window...)
	}

	assert.Equal(t, images, joined)
}

func TestPaginate_LastPageIsShort(t *testing.T) {
	images := make([]domain.GalleryImage, 45)

	assert.Len(t, service.Paginate(images, 1, 20), 20)
	assert.Len(t, service.Paginate(images, 2, 20), 20)
	assert.Len(t, service.Paginate(images, 3, 20), 5)
	assert.Empty(t, service.Paginate(images, 4, 20))
}

func TestPaginate_InvalidArguments(t *testing.T) {
	images := []domain.GalleryImage{{ID: "a"}}

	assert.Empty(t, service.Paginate(images, 0, 20))
	assert.Empty(t, service.Paginate(images, 1, 0))
}
