package services

import (
	"context"
	"fmt"
	"io"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/infrastructure/metrics"
	"github.com/unimedia/agencysite/internal/ports"
)

// UploadService handles image uploads
type UploadService struct {
	imageStorage ports.ImageStorage
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(imageStorage ports.ImageStorage, m *metrics.Metrics, logger *logger.Logger) *UploadService {
	return &UploadService{
		imageStorage: imageStorage,
		metrics:      m,
		logger:       logger,
	}
}

var _ ports.UploadService = (*UploadService)(nil)

// Upload stores one image for the given upload type
func (s *UploadService) Upload(ctx context.Context, uploadType, originalName string, src io.Reader) (*ports.StoredImage, error) {
	if src == nil {
		return nil, entities.ErrNoFile
	}

	stored, err := s.imageStorage.Save(ctx, uploadType, originalName, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	s.metrics.RecordUpload(stored.Folder)
	s.logger.LogAdminAction("upload", uploadType, map[string]interface{}{
		"path":          stored.Path,
		"original_name": originalName,
	})

	return stored, nil
}
