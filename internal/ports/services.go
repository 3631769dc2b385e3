package ports

import (
	"context"
	"io"

	"github.com/unimedia/agencysite/internal/domain/entities"
)

// RecordService interface for collection management operations
type RecordService interface {
	List(ctx context.Context, entityType entities.EntityType) ([]entities.Record, error)
	Create(ctx context.Context, entityType entities.EntityType, record entities.Record) (entities.Record, error)
	Update(ctx context.Context, entityType entities.EntityType, id string, patch entities.Record) (entities.Record, error)
	Delete(ctx context.Context, entityType entities.EntityType, id string) error
}

// UploadService interface for image uploads
type UploadService interface {
	Upload(ctx context.Context, uploadType, originalName string, src io.Reader) (*StoredImage, error)
}

// SettingsService interface for the site settings document
type SettingsService interface {
	Get(ctx context.Context) (*entities.Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (*entities.Settings, error)
	MigratePhoneSentinel(ctx context.Context) (bool, error)
}

// AuthService interface for admin authentication
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Auth related types
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Settings related types
type UpdateSettingsRequest struct {
	Phone *string `json:"phone" validate:"omitempty,max=40"`
}

// Response types shared by the HTTP adapters
type ItemResponse struct {
	Success bool            `json:"success"`
	Item    entities.Record `json:"item"`
	Message string          `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
