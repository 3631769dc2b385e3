package ports

import (
	"context"
	"io"

	"github.com/unimedia/agencysite/internal/domain/entities"
)

// RecordRepository defines the interface for collection data operations.
// Every mutation reads the whole collection, changes it and writes it back.
type RecordRepository interface {
	List(ctx context.Context, entityType entities.EntityType) ([]entities.Record, error)
	Create(ctx context.Context, entityType entities.EntityType, record entities.Record) (entities.Record, error)
	Update(ctx context.Context, entityType entities.EntityType, id string, patch entities.Record, check func(entities.Record) error) (entities.Record, error)
	Delete(ctx context.Context, entityType entities.EntityType, id string) error
	Replace(ctx context.Context, entityType entities.EntityType, records []entities.Record) error
}

// SettingsRepository defines the interface for the site settings document
type SettingsRepository interface {
	Get(ctx context.Context) (*entities.Settings, error)
	Save(ctx context.Context, settings *entities.Settings) error
}

// ImageStorage defines the interface for uploaded image files
type ImageStorage interface {
	Save(ctx context.Context, uploadType, originalName string, src io.Reader) (*StoredImage, error)
	Writable() error
}

// StoredImage describes an image written by ImageStorage
type StoredImage struct {
	Folder   string `json:"-"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}
