package remote

import (
	"context"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectAPI is the subset of the S3 client surface a Handle reads through.
//
// *s3.Client satisfies this interface. Declaring only the two calls the
// handle needs keeps test doubles small and makes the read-only nature of
// the handle explicit.
type ObjectAPI interface {
	// HeadObject retrieves object metadata without transferring content
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)

	// GetObject retrieves the full object
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// PresignAPI is the subset of the S3 presigner used for share links.
//
// *s3.PresignClient satisfies this interface.
type PresignAPI interface {
	// PresignGetObject produces a time-limited GET URL for an object
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}
