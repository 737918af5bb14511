package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig creates a default configuration file at the default location.
//
// Parameters:
//   - force: Overwrite an existing config file
//
// Returns:
//   - string: Path of the created config file
//   - error: Creation error, including "already exists" without force
func InitConfig(force bool) (string, error) {
	configPath := GetDefaultConfigPath()

	if err := InitConfigToPath(configPath, force); err != nil {
		return "", err
	}

	return configPath, nil
}

// InitConfigToPath creates a default configuration file at the given path.
//
// Parent directories are created as needed. Without force, an existing file
// is left untouched and an error is returned.
func InitConfigToPath(configPath string, force bool) error {
	// Refuse to clobber an existing file unless forced
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists at %s (use force to overwrite)", configPath)
		}
	}

	// Ensure the parent directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Render the default configuration with comments
	content, err := generateYAMLWithComments(GetDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateYAMLWithComments renders a configuration as commented YAML.
//
// The output is hand-assembled rather than marshaled so every section
// carries usage comments; values are taken from the supplied config so the
// generated file always matches the shipped defaults.
func generateYAMLWithComments(cfg *Config) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("config must not be nil")
	}

	yaml := fmt.Sprintf(`# objsync Configuration File
#
# Location: ~/.config/objsync/config.yaml (or $XDG_CONFIG_HOME/objsync/config.yaml)
#
# Environment variables override file values using the OBJSYNC_ prefix.
# Example: OBJSYNC_LOGGING_LEVEL=DEBUG

# Logging configuration
logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: %s
  # Output format: text, json
  format: %s
  # Destination: stdout, stderr, or a file path
  output: %s

# Object storage configuration
storage:
  # Storage backend type: s3
  type: %s
  s3:
    # Region (also required by S3-compatible endpoints)
    region: %s
    # Bucket holding the objects to sync or share
    bucket: "%s"
    # Custom endpoint URL for S3-compatible services (MinIO, Localstack, Cubbit DS3)
    # Leave empty for AWS S3
    endpoint: "%s"
    # Static credentials; leave unset to use the default AWS credential chain
    # access_key_id: ""
    # secret_access_key: ""
    # Force path-style addressing (implied when endpoint is set)
    force_path_style: false
    # Total request attempts for transient failures
    max_retry_attempts: %d

# Local synchronization settings
sync:
  # Base directory for relative destination paths
  local_dir: "%s"
  # Permission mode for created directories
  dir_mode: %#o
  # Permission mode for written files
  file_mode: %#o

# Share link settings
share:
  # Default lifetime of generated links, in seconds (max 604800 = 7 days)
  default_expiry_seconds: %d

# Metrics collection
metrics:
  enabled: %t
`,
		cfg.Logging.Level,
		cfg.Logging.Format,
		cfg.Logging.Output,
		cfg.Storage.Type,
		stringOption(cfg.Storage.S3, "region"),
		stringOption(cfg.Storage.S3, "bucket"),
		stringOption(cfg.Storage.S3, "endpoint"),
		intOption(cfg.Storage.S3, "max_retry_attempts"),
		cfg.Sync.LocalDir,
		cfg.Sync.DirMode,
		cfg.Sync.FileMode,
		cfg.Share.DefaultExpirySeconds,
		cfg.Metrics.Enabled,
	)

	return yaml, nil
}

// intOption reads an integer value from a backend option map.
func intOption(options map[string]any, key string) int {
	if options == nil {
		return 0
	}
	if v, ok := options[key].(int); ok {
		return v
	}
	return 0
}
