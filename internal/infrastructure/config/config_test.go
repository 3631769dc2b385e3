package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3001", cfg.Server.Addr())
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "public", cfg.Storage.PublicDir)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.App.IsProduction())
	assert.False(t, cfg.App.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("DATA_DIR", "/srv/agency/data")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "/srv/agency/data", cfg.Storage.DataDir)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 3001},
			Storage: StorageConfig{DataDir: "data", PublicDir: "public"},
		}
	}

	testCases := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(cfg *Config) {}},
		{name: "bad port", mutate: func(cfg *Config) { cfg.Server.Port = 70000 }, wantErr: true},
		{name: "missing data dir", mutate: func(cfg *Config) { cfg.Storage.DataDir = "" }, wantErr: true},
		{name: "auth without hash", mutate: func(cfg *Config) {
			cfg.Auth = AuthConfig{Enabled: true, AdminEmail: "admin@uni.edu", JWTSecret: "0123456789abcdef"}
		}, wantErr: true},
		{name: "auth with short secret", mutate: func(cfg *Config) {
			cfg.Auth = AuthConfig{Enabled: true, AdminEmail: "admin@uni.edu", AdminPasswordHash: "$2a$10$x", JWTSecret: "short"}
		}, wantErr: true},
		{name: "auth complete", mutate: func(cfg *Config) {
			cfg.Auth = AuthConfig{Enabled: true, AdminEmail: "admin@uni.edu", AdminPasswordHash: "$2a$10$x", JWTSecret: "0123456789abcdef"}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := validateConfig(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })
}
