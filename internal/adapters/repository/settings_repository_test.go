package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
)

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewSettingsRepository(dir, logger.NewNop())
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, &entities.Settings{}, settings)

	require.NoError(t, repo.Save(ctx, &entities.Settings{Phone: "+98 21 6616 0000"}))

	settings, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+98 21 6616 0000", settings.Phone)
	assert.FileExists(t, filepath.Join(dir, "settings", "data.json"))
}

func TestSettingsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings", "data.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	settings, err := NewSettingsRepository(dir, logger.NewNop()).Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.Phone)
}

func TestSettingsSaveNil(t *testing.T) {
	err := NewSettingsRepository(t.TempDir(), logger.NewNop()).Save(context.Background(), nil)
	assert.ErrorIs(t, err, entities.ErrInvalidItem)
}
