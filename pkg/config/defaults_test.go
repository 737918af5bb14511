package config

import (
	"testing"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_LogLevelNormalization(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected normalized level 'DEBUG', got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_Storage(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Storage.Type != "s3" {
		t.Errorf("Expected default storage type 's3', got %q", cfg.Storage.Type)
	}

	// Check seeded S3 option defaults
	if cfg.Storage.S3 == nil {
		t.Fatal("Expected S3 map to be initialized")
	}
	if region, ok := cfg.Storage.S3["region"]; !ok || region != "us-east-1" {
		t.Errorf("Expected default region 'us-east-1', got %v", region)
	}
	if attempts, ok := cfg.Storage.S3["max_retry_attempts"]; !ok || attempts != 3 {
		t.Errorf("Expected default max_retry_attempts 3, got %v", attempts)
	}
}

func TestApplyDefaults_StoragePreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{
			Type: "s3",
			S3: map[string]any{
				"region": "eu-central-1",
				"bucket": "artifacts",
			},
		},
	}
	ApplyDefaults(cfg)

	if cfg.Storage.S3["region"] != "eu-central-1" {
		t.Errorf("Explicit region was overwritten: %v", cfg.Storage.S3["region"])
	}
	if cfg.Storage.S3["bucket"] != "artifacts" {
		t.Errorf("Explicit bucket was overwritten: %v", cfg.Storage.S3["bucket"])
	}
}

func TestApplyDefaults_Sync(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Sync.LocalDir != "." {
		t.Errorf("Expected default local_dir '.', got %q", cfg.Sync.LocalDir)
	}
	if cfg.Sync.DirMode != 0755 {
		t.Errorf("Expected default dir_mode 0755, got %#o", cfg.Sync.DirMode)
	}
	if cfg.Sync.FileMode != 0644 {
		t.Errorf("Expected default file_mode 0644, got %#o", cfg.Sync.FileMode)
	}
}

func TestApplyDefaults_Share(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Share.DefaultExpirySeconds != DefaultShareExpirySeconds {
		t.Errorf("Expected default expiry %d, got %d",
			DefaultShareExpirySeconds, cfg.Share.DefaultExpirySeconds)
	}
}

func TestApplyDefaults_SharePreservesExplicitValue(t *testing.T) {
	cfg := &Config{}
	cfg.Share.DefaultExpirySeconds = 3600
	ApplyDefaults(cfg)

	if cfg.Share.DefaultExpirySeconds != 3600 {
		t.Errorf("Explicit expiry was overwritten: %d", cfg.Share.DefaultExpirySeconds)
	}
}
