// Package config handles application configuration loading and management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the entire configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	Host           string `mapstructure:"host"`
	BaseURL        string `mapstructure:"base_url"`         // prefix for download URLs; empty means relative paths
	ReadTimeout    int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout   int    `mapstructure:"write_timeout"`    // seconds
	IdleTimeout    int    `mapstructure:"idle_timeout"`     // seconds
	RateLimitRPS   int    `mapstructure:"rate_limit_rps"`   // requests per second
	RateLimitBurst int    `mapstructure:"rate_limit_burst"` // burst size
}

// StorageConfig holds artifact storage configuration
type StorageConfig struct {
	Path            string `mapstructure:"path"`
	MaxArtifactSize int64  `mapstructure:"max_artifact_size"` // bytes, per artifact
	MaxArtifacts    int    `mapstructure:"max_artifacts"`     // count before oldest-first eviction
	MaxTotalBytes   int64  `mapstructure:"max_total_bytes"`   // bytes before oldest-first eviction
}

// RenderConfig holds document rendering configuration
type RenderConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // per-render upper bound
	BrowserBin     string `mapstructure:"browser_bin"`     // pre-installed Chromium path; empty lets rod manage one
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.docpress")

	// Environment variable overrides
	viper.SetEnvPrefix("DOCPRESS")
	viper.AutomaticEnv()

	// Bind environment variables
	if err := viper.BindEnv("storage.path", "STORAGE_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind env variable: %w", err)
	}
	if err := viper.BindEnv("server.base_url", "BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env variable: %w", err)
	}
	if err := viper.BindEnv("render.browser_bin", "ROD_BROWSER_BIN"); err != nil {
		return nil, fmt.Errorf("failed to bind env variable: %w", err)
	}

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.base_url", "")
	viper.SetDefault("server.read_timeout", 10)  // 10 seconds
	viper.SetDefault("server.write_timeout", 60) // renders can take a while
	viper.SetDefault("server.idle_timeout", 120) // 120 seconds
	viper.SetDefault("server.rate_limit_rps", 20)
	viper.SetDefault("server.rate_limit_burst", 40)
	viper.SetDefault("storage.path", filepath.Join(os.TempDir(), "docpress"))
	viper.SetDefault("storage.max_artifact_size", 26214400) // 25 MiB
	viper.SetDefault("storage.max_artifacts", 1000)
	viper.SetDefault("storage.max_total_bytes", 536870912) // 512 MiB
	viper.SetDefault("render.timeout_seconds", 30)
	viper.SetDefault("render.browser_bin", "")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	// The config file is optional; defaults plus environment cover the full surface
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Storage.Path == "" {
		return nil, fmt.Errorf("storage.path is required")
	}
	if cfg.Storage.MaxArtifactSize <= 0 {
		return nil, fmt.Errorf("storage.max_artifact_size must be positive")
	}
	if cfg.Storage.MaxArtifacts <= 0 {
		return nil, fmt.Errorf("storage.max_artifacts must be positive")
	}
	if cfg.Storage.MaxTotalBytes < cfg.Storage.MaxArtifactSize {
		return nil, fmt.Errorf("storage.max_total_bytes must be at least storage.max_artifact_size")
	}
	if cfg.Render.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("render.timeout_seconds must be positive")
	}

	return &cfg, nil
}
