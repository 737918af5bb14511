package config

import (
	"strings"
)

// DefaultShareExpirySeconds is the share link lifetime used when neither the
// configuration nor the caller specifies one.
const DefaultShareExpirySeconds = 600

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
//   - Backend-specific defaults are seeded into the option maps so generated
//     config files show every available knob
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyStorageDefaults(&cfg.Storage)
	applySyncDefaults(&cfg.Sync)
	applyShareDefaults(&cfg.Share)

	// Metrics.Enabled defaults to false
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyStorageDefaults sets object storage defaults.
func applyStorageDefaults(cfg *StorageConfig) {
	if cfg.Type == "" {
		cfg.Type = "s3"
	}

	// Initialize maps if nil
	if cfg.S3 == nil {
		cfg.S3 = make(map[string]any)
	}

	// Seed defaults for the S3 backend (for config file generation)
	if _, ok := cfg.S3["region"]; !ok {
		cfg.S3["region"] = "us-east-1"
	}
	if _, ok := cfg.S3["bucket"]; !ok {
		cfg.S3["bucket"] = ""
	}
	if _, ok := cfg.S3["endpoint"]; !ok {
		cfg.S3["endpoint"] = ""
	}
	if _, ok := cfg.S3["max_retry_attempts"]; !ok {
		cfg.S3["max_retry_attempts"] = 3
	}
}

// applySyncDefaults sets local synchronization defaults.
func applySyncDefaults(cfg *SyncConfig) {
	if cfg.LocalDir == "" {
		cfg.LocalDir = "."
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}
}

// applyShareDefaults sets share link defaults.
func applyShareDefaults(cfg *ShareConfig) {
	if cfg.DefaultExpirySeconds == 0 {
		cfg.DefaultExpirySeconds = DefaultShareExpirySeconds
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{
		Logging: LoggingConfig{},
		Storage: StorageConfig{
			S3: make(map[string]any),
		},
		Sync:    SyncConfig{},
		Share:   ShareConfig{},
		Metrics: MetricsConfig{},
	}

	ApplyDefaults(cfg)
	return cfg
}
