package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
	assert.Equal(t, codec.DefaultMaxAnomalies, config.Limits.MaxAnomalies)
	assert.Equal(t, codec.DefaultBounds(), config.Limits.Bounds)
	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, 2, config.Output.Indent)
	assert.Equal(t, 9300, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Bind)
	assert.Equal(t, "auto", config.Server.APIKey)
	assert.Equal(t, "./archive", config.Archive.Dir)
	assert.Equal(t, 100*time.Millisecond, config.Watch.Debounce)
}

func TestGenerateSecureKey(t *testing.T) {
	t.Run("generate 32 byte key", func(t *testing.T) {
		key, err := GenerateSecureKey(32)
		require.NoError(t, err)
		assert.Len(t, key, 64)

		_, err = hex.DecodeString(key)
		assert.NoError(t, err)
	})

	t.Run("generate different keys", func(t *testing.T) {
		key1, err := GenerateSecureKey(16)
		require.NoError(t, err)
		key2, err := GenerateSecureKey(16)
		require.NoError(t, err)

		assert.NotEqual(t, key1, key2)
	})

	t.Run("zero length", func(t *testing.T) {
		key, err := GenerateSecureKey(0)
		require.NoError(t, err)
		assert.Empty(t, key)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		expected := DefaultConfig()
		expected.Logging.Level = "debug"
		expected.Server.APIKey = "test-api-key"
		expected.Server.CORSOrigins = []string{"https://example.test"}
		expected.Limits.Count = codec.Limits{Min: 0, Max: 500, WarnMin: 0, WarnMax: 100}
		expected.Watch.OutputDir = "/tmp/out"

		require.NoError(t, SaveConfig(expected, configPath))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expected, loaded)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		content := "logging:\n  level: warn\nlimits:\n  max_anomalies: 5\n  cash:\n    max: 1000\nwatch:\n  debounce: 250ms\n"
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

		loaded, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, "warn", loaded.Logging.Level)
		assert.Equal(t, "text", loaded.Logging.Format)
		assert.Equal(t, 5, loaded.Limits.MaxAnomalies)
		assert.Equal(t, 1000, loaded.Limits.Cash.Max)
		assert.Equal(t, codec.DefaultBounds().Count, loaded.Limits.Count)
		assert.Equal(t, 250*time.Millisecond, loaded.Watch.Debounce)
		assert.Equal(t, 9300, loaded.Server.Port)
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("load invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	config := DefaultConfig()

	require.NoError(t, SaveConfig(config, configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debounce: 100ms")
	assert.Contains(t, string(data), "warn_max: 4096")
}

func TestSaveConfigErrorHandling(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	err := SaveConfig(DefaultConfig(), filepath.Join(blocker, "sub", "config.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create config directory")
}

func TestBootstrapConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	archiveDir := "/custom/archive"

	config, err := BootstrapConfig(configPath, archiveDir)
	require.NoError(t, err)

	assert.Equal(t, archiveDir, config.Archive.Dir)
	assert.Equal(t, 9300, config.Server.Port)
	assert.NotEqual(t, "auto", config.Server.APIKey)
	_, err = hex.DecodeString(config.Server.APIKey)
	assert.NoError(t, err)

	assert.True(t, ConfigExists(configPath))
	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestLimitsSessionOptions(t *testing.T) {
	limits := DefaultConfig().Limits
	limits.MaxAnomalies = 7

	opts := limits.SessionOptions(nil)
	assert.Equal(t, 7, opts.MaxAnomalies)
	assert.Equal(t, codec.DefaultBounds(), opts.Bounds)
	assert.Nil(t, opts.Logger)
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.Contains(t, path, "polyparser")
	assert.Contains(t, path, "config.yaml")
}

func TestConfigExists(t *testing.T) {
	dir := t.TempDir()
	existingPath := filepath.Join(dir, "exists.yaml")
	require.NoError(t, os.WriteFile(existingPath, []byte("test"), 0644))

	assert.True(t, ConfigExists(existingPath))
	assert.False(t, ConfigExists(filepath.Join(dir, "does-not-exist.yaml")))
}
