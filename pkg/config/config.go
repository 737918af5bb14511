package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete objsync configuration.
//
// This structure captures all configurable aspects of objsync including:
//   - Logging configuration
//   - Object storage selection and configuration (backend-specific)
//   - Local sync destination settings
//   - Share link generation settings
//   - Metrics collection
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (OBJSYNC_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
//
// Storage Configuration Pattern:
// The storage backend defines its own option set decoded from the section
// matching the selected type. Only the section matching the Type field is
// used.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Storage specifies the object storage backend and backend-specific
	// configuration
	Storage StorageConfig `mapstructure:"storage"`

	// Sync contains local synchronization settings
	Sync SyncConfig `mapstructure:"sync"`

	// Share contains share link generation settings
	Share ShareConfig `mapstructure:"share"`

	// Metrics controls metrics collection
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Format specifies the log output format
	// Valid values: text, json
	Format string `mapstructure:"format" validate:"required,oneof=text json"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// StorageConfig specifies object storage configuration.
//
// The Type field determines which backend is used. Only the corresponding
// backend-specific configuration section is used.
type StorageConfig struct {
	// Type specifies which object storage backend to use
	// Valid values: s3
	Type string `mapstructure:"type" validate:"required,oneof=s3"`

	// S3 contains S3-specific configuration
	// Only used when Type = "s3"
	S3 map[string]any `mapstructure:"s3"`
}

// SyncConfig contains local synchronization settings.
type SyncConfig struct {
	// LocalDir is the base directory for relative destination paths
	LocalDir string `mapstructure:"local_dir" validate:"required"`

	// DirMode is the Unix permission mode for created directories (e.g., 0755)
	DirMode uint32 `mapstructure:"dir_mode" validate:"lte=511"` // 511 = 0777 in decimal

	// FileMode is the Unix permission mode for written files (e.g., 0644)
	FileMode uint32 `mapstructure:"file_mode" validate:"lte=511"`
}

// ShareConfig contains share link generation settings.
type ShareConfig struct {
	// DefaultExpirySeconds is the lifetime of generated share links when the
	// caller does not supply one. Capped at 7 days (604800), the longest
	// expiry a presigned URL can carry.
	DefaultExpirySeconds int `mapstructure:"default_expiry_seconds" validate:"required,gte=1,lte=604800"`
}

// MetricsConfig controls metrics collection.
type MetricsConfig struct {
	// Enabled turns on the Prometheus registry and per-operation counters
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (OBJSYNC_*)
//  2. Configuration file
//  3. Default values
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: Configuration loading or validation error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Configure viper
	setupViper(v, configPath)

	// Read configuration file if it exists
	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults for any missing values
	ApplyDefaults(&cfg)

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Set up environment variable support
	// Environment variables use OBJSYNC_ prefix and underscores
	// Example: OBJSYNC_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("OBJSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Configure config file search
	if configPath != "" {
		// Use explicitly specified config file
		v.SetConfigFile(configPath)
	} else {
		// Use default location: $XDG_CONFIG_HOME/objsync/config.yaml
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
//
// A missing file at an explicitly requested path is an error; a miss on
// the default search path is not.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		// Check if error is "config file not found"
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is acceptable - use defaults
			return nil
		}
		// Other errors are problems
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to current
// directory (.) if home directory cannot be determined.
func getConfigDir() string {
	// Check XDG_CONFIG_HOME
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "objsync")
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		// If we can't get home dir, use current directory as last resort
		return "."
	}

	return filepath.Join(home, ".config", "objsync")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// ConfigExists checks if a config file exists at the default location.
func ConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for init command).
func GetConfigDir() string {
	return getConfigDir()
}
