package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ssargent/polyparser/pkg/codec"
	"gopkg.in/yaml.v3"
)

// Config represents the PolyParser configuration
type Config struct {
	Logging Logging `yaml:"logging"`
	Limits  Limits  `yaml:"limits"`
	Output  Output  `yaml:"output"`
	Server  Server  `yaml:"server"`
	Archive Archive `yaml:"archive"`
	Watch   Watch   `yaml:"watch"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Limits tune the decode sanity checks. Zero values fall back to the
// built-in bounds.
type Limits struct {
	MaxAnomalies int `yaml:"max_anomalies"`
	codec.Bounds `yaml:",inline"`
}

// SessionOptions turns the limits into options for codec.NewSession.
func (l Limits) SessionOptions(logger *slog.Logger) codec.SessionOptions {
	return codec.SessionOptions{
		Logger:       logger,
		MaxAnomalies: l.MaxAnomalies,
		Bounds:       l.Bounds,
	}
}

// Output controls the readable tree written by decode.
type Output struct {
	Format string `yaml:"format"`
	Indent int    `yaml:"indent"`
}

// Server contains REST API settings
type Server struct {
	Port         int      `yaml:"port"`
	Bind         string   `yaml:"bind"`
	APIKey       string   `yaml:"api_key"`
	CORSOrigins  []string `yaml:"cors_origins,omitempty"`
	MaxBodyBytes int64    `yaml:"max_body_bytes,omitempty"`
}

// Archive locates the layout archive.
type Archive struct {
	Dir string `yaml:"dir"`
}

// Watch configures the directory watcher.
type Watch struct {
	Debounce  time.Duration `yaml:"debounce"`
	OutputDir string        `yaml:"output_dir,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Limits: Limits{
			MaxAnomalies: codec.DefaultMaxAnomalies,
			Bounds:       codec.DefaultBounds(),
		},
		Output: Output{
			Format: "json",
			Indent: 2,
		},
		Server: Server{
			Port:   9300,
			Bind:   "127.0.0.1",
			APIKey: "auto",
		},
		Archive: Archive{
			Dir: "./archive",
		},
		Watch: Watch{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing
// from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file holds the API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a default configuration with a generated API key.
func BootstrapConfig(configPath string, archiveDir string) (*Config, error) {
	config := DefaultConfig()
	if archiveDir != "" {
		config.Archive.Dir = archiveDir
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Server.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./polyparser.yaml"
	}
	return filepath.Join(homeDir, ".config", "polyparser", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
