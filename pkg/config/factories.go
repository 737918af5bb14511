package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cubbit/objsync/internal/logger"
	"github.com/cubbit/objsync/pkg/remote"
	"github.com/mitchellh/mapstructure"
)

// CreateRemoteHandle creates a handle for one remote object based on
// configuration.
//
// This factory function uses the Type field to determine which storage
// backend to use, then decodes the backend-specific configuration from the
// corresponding map and builds the client stack for it.
//
// Supported types:
//   - "s3": Amazon S3 or any S3-compatible endpoint (MinIO, Localstack, Cubbit DS3)
//
// Parameters:
//   - ctx: Context for client construction
//   - cfg: Object storage configuration
//   - key: Key of the remote object the handle is bound to
//   - opts: Handle options (metrics, ...)
//
// Returns:
//   - *remote.Handle: Handle bound to the configured bucket and the given key
//   - error: Configuration or construction error
func CreateRemoteHandle(ctx context.Context, cfg *StorageConfig, key string, opts ...remote.Option) (*remote.Handle, error) {
	switch cfg.Type {
	case "s3":
		return createS3Handle(ctx, cfg.S3, key, opts...)
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

// createS3Handle builds the S3 client pair and binds a handle to one object.
func createS3Handle(ctx context.Context, options map[string]any, key string, opts ...remote.Option) (*remote.Handle, error) {
	// Define the configuration struct for the S3 backend
	type S3StorageOptions struct {
		Region           string `mapstructure:"region"`
		Bucket           string `mapstructure:"bucket"`
		Endpoint         string `mapstructure:"endpoint"`
		AccessKeyID      string `mapstructure:"access_key_id"`
		SecretAccessKey  string `mapstructure:"secret_access_key"`
		ForcePathStyle   bool   `mapstructure:"force_path_style"`
		MaxRetryAttempts int    `mapstructure:"max_retry_attempts"`
	}

	// Decode the options into the config struct
	var storageOpts S3StorageOptions
	if err := mapstructure.Decode(options, &storageOpts); err != nil {
		return nil, fmt.Errorf("failed to decode S3 storage config: %w", err)
	}

	// Validate required fields
	if storageOpts.Bucket == "" {
		return nil, fmt.Errorf("S3 storage: bucket is required")
	}

	if storageOpts.Region == "" {
		return nil, fmt.Errorf("S3 storage: region is required")
	}

	// ========================================================================
	// Step 1: Build AWS Config
	// ========================================================================

	var configOptions []func(*awsConfig.LoadOptions) error

	// Set region
	configOptions = append(configOptions, awsConfig.WithRegion(storageOpts.Region))

	// Set custom endpoint if provided (for MinIO, Localstack, etc.)
	if storageOpts.Endpoint != "" {
		//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
		customResolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
				return aws.Endpoint{
					URL:               storageOpts.Endpoint,
					HostnameImmutable: true,
					Source:            aws.EndpointSourceCustom,
				}, nil
			},
		)
		//nolint:staticcheck // TODO: migrate to BaseEndpoint when AWS SDK v2 stabilizes the new API
		configOptions = append(configOptions, awsConfig.WithEndpointResolverWithOptions(customResolver))
	}

	// Set credentials if provided, otherwise use default credential chain
	if storageOpts.AccessKeyID != "" && storageOpts.SecretAccessKey != "" {
		credProvider := credentials.NewStaticCredentialsProvider(
			storageOpts.AccessKeyID,
			storageOpts.SecretAccessKey,
			"", // session token (empty for static credentials)
		)
		configOptions = append(configOptions, awsConfig.WithCredentialsProvider(credProvider))
	}

	// Configure retries for transient S3 failures (502, 503, timeouts, etc.)
	// Default to 3 attempts if not specified, matching the AWS default
	maxAttempts := storageOpts.MaxRetryAttempts
	if maxAttempts == 0 {
		maxAttempts = 3
	}
	configOptions = append(configOptions, awsConfig.WithRetryer(func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxAttempts
		})
	}))

	// Load AWS config
	cfg, err := awsConfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// ========================================================================
	// Step 2: Create S3 Client and Presign Client
	// ========================================================================

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// Force path-style addressing for compatibility with MinIO/Localstack
		if storageOpts.Endpoint != "" || storageOpts.ForcePathStyle {
			o.UsePathStyle = true
		}
	})

	presignClient := s3.NewPresignClient(client)

	// ========================================================================
	// Step 3: Bind the Handle
	// ========================================================================

	handle, err := remote.NewHandle(client, presignClient, remote.ObjectRef{
		Bucket: storageOpts.Bucket,
		Key:    key,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote handle: %w", err)
	}

	logger.Debug("S3 storage initialized: bucket=%s, region=%s, key=%s",
		storageOpts.Bucket, storageOpts.Region, key)

	return handle, nil
}
