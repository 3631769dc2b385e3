package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimedia/agencysite/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	log, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	require.NotNil(t, log)

	log.WithComponent("test").WithRequestID("req-1").Infow("hello", "k", "v")
}

func TestNewFileOutput(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	log, err := New(config.LoggerConfig{Level: "debug", Format: "console", Output: "file", Filename: filename})
	require.NoError(t, err)

	log.LogStorageOperation("write", "data/work/data.json", 1.5, nil)
	_ = log.Close()

	assert.FileExists(t, filename)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestWithError(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "app.log")
	log, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: "file", Filename: filename})
	require.NoError(t, err)

	log.WithError(errors.New("disk full")).Error("Request failed")
	_ = log.Close()

	raw, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"error":"disk full"`)
	assert.Contains(t, string(raw), `"msg":"Request failed"`)
}
