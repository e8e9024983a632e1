package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"galeria/internal/domain"
)

// MockGalleryService is a mock implementation of service.GalleryService.
type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) List(ctx context.Context) ([]domain.GalleryImage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GalleryImage), args.Error(1)
}
