package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

const settingsDir = "settings"

// SettingsRepositoryImpl stores the settings document as a single JSON object
type SettingsRepositoryImpl struct {
	path   string
	logger *logger.Logger
	mu     sync.RWMutex
}

// NewSettingsRepository creates a new settings repository rooted at dataDir
func NewSettingsRepository(dataDir string, appLogger *logger.Logger) *SettingsRepositoryImpl {
	return &SettingsRepositoryImpl{
		path:   filepath.Join(dataDir, settingsDir, dataFileName),
		logger: appLogger.WithComponent("settings_repository"),
	}
}

var _ ports.SettingsRepository = (*SettingsRepositoryImpl)(nil)

// Get returns the stored settings. A missing or unreadable document yields zero settings.
func (r *SettingsRepositoryImpl) Get(ctx context.Context) (*entities.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	start := time.Now()
	var settings entities.Settings
	_, err := readJSONFile(r.path, &settings)
	r.logger.LogStorageOperation("read", r.path, elapsedMillis(start), err)
	if err != nil {
		return &entities.Settings{}, nil
	}

	return &settings, nil
}

func (r *SettingsRepositoryImpl) Save(ctx context.Context, settings *entities.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if settings == nil {
		return entities.ErrInvalidItem
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	err := writeJSONFile(r.path, settings)
	r.logger.LogStorageOperation("write", r.path, elapsedMillis(start), err)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
