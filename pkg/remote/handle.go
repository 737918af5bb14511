package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cubbit/objsync/internal/logger"
)

// DefaultShareExpiry is the share link lifetime used when the caller does
// not supply a positive one.
const DefaultShareExpiry = 600 * time.Second

// ObjectRef identifies a unique object in a bucket.
//
// Immutable once constructed; owned by the Handle built for it.
type ObjectRef struct {
	// Bucket is the name of the container holding the object
	Bucket string

	// Key is the object's path within the bucket
	Key string
}

// String returns "bucket/key" for log messages.
func (r ObjectRef) String() string {
	return r.Bucket + "/" + r.Key
}

// objectHead is the cached outcome of the metadata query.
type objectHead struct {
	modifiedAt time.Time
	found      bool
}

// Handle exposes one remote object through memoized accessors.
//
// Memoization Design:
//   - Two independent cache slots: one for the metadata query (backing
//     Exists and ModifiedAt), one for the content fetch (backing Content)
//   - Each slot is filled at most once per handle, guarded by sync.Once
//   - Failed requests fill their slot with the absent outcome; a handle
//     makes a single attempt per request kind and never retries
//   - ShareURL is deliberately not memoized: every call may carry a
//     different expiry and should mint a fresh link
//
// The slots live exactly as long as the handle. Build a new handle to
// observe fresh remote state.
type Handle struct {
	api     ObjectAPI
	presign PresignAPI
	ref     ObjectRef
	metrics Metrics

	headOnce sync.Once
	head     objectHead

	contentOnce sync.Once
	content     []byte
	contentOK   bool
}

// Option customizes a Handle at construction time.
type Option func(*Handle)

// WithMetrics attaches a metrics collector to the handle.
func WithMetrics(m Metrics) Option {
	return func(h *Handle) {
		if m != nil {
			h.metrics = m
		}
	}
}

// NewHandle binds a storage client pair to one remote object.
//
// The presign client may be nil; such a handle serves existence, metadata
// and content queries but cannot generate share URLs.
//
// Parameters:
//   - api: S3 client (or equivalent) for metadata and content requests
//   - presign: Presigner for share URL generation, may be nil
//   - ref: Bucket and key of the target object
//   - opts: Handle options (metrics, ...)
//
// Returns:
//   - *Handle: Handle bound to the given object
//   - error: ErrMissingClient or ErrInvalidReference for unusable input
func NewHandle(api ObjectAPI, presign PresignAPI, ref ObjectRef, opts ...Option) (*Handle, error) {
	if api == nil {
		return nil, ErrMissingClient
	}

	if ref.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidReference)
	}
	if ref.Key == "" {
		return nil, fmt.Errorf("%w: key is required", ErrInvalidReference)
	}

	h := &Handle{
		api:     api,
		presign: presign,
		ref:     ref,
		metrics: noopMetrics{},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Ref returns the object reference this handle is bound to.
func (h *Handle) Ref() ObjectRef {
	return h.ref
}

// Exists reports whether the remote object is reachable.
//
// The underlying metadata query runs at most once per handle; repeated
// calls return the cached answer. Any failure - including transport errors
// unrelated to the object - reads as false (see the package documentation
// on failure conflation).
//
// Context Cancellation:
// Cancellation surfaces as a failed query and therefore as false; the
// failed outcome is cached like any other.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//
// Returns:
//   - bool: True if the metadata query found the object
func (h *Handle) Exists(ctx context.Context) bool {
	return h.fetchHead(ctx).found
}

// ModifiedAt returns the remote object's last-modification instant.
//
// Shares the memoized metadata query with Exists. The second return value
// is false when the object is absent, the query failed, or the service
// supplied no modification time.
func (h *Handle) ModifiedAt(ctx context.Context) (time.Time, bool) {
	head := h.fetchHead(ctx)
	if !head.found || head.modifiedAt.IsZero() {
		return time.Time{}, false
	}

	return head.modifiedAt, true
}

// Content returns the remote object's full content.
//
// The fetch runs at most once per handle; repeated calls return the cached
// buffer. The returned slice is the cache itself - callers must not modify
// it. Any failure reads as (nil, false), causes conflated.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//
// Returns:
//   - []byte: Object content, valid only when the second value is true
//   - bool: True if the fetch succeeded
func (h *Handle) Content(ctx context.Context) ([]byte, bool) {
	h.contentOnce.Do(func() {
		start := time.Now()

		out, err := h.api.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(h.ref.Bucket),
			Key:    aws.String(h.ref.Key),
		})
		if err != nil {
			h.observe("get", start, err)
			if isNotFound(err) {
				logger.Debug("remote object %s not found", h.ref)
			} else {
				logger.Debug("content fetch for %s failed, treating as absent: %v", h.ref, err)
			}
			return
		}
		defer out.Body.Close()

		data, err := io.ReadAll(out.Body)
		h.observe("get", start, err)
		if err != nil {
			logger.Debug("content read for %s failed, treating as absent: %v", h.ref, err)
			return
		}

		h.metrics.RecordBytes("get", int64(len(data)))
		h.content = data
		h.contentOK = true
	})

	return h.content, h.contentOK
}

// ShareURL generates a time-limited public URL for the object.
//
// Not memoized: every call mints a fresh link, and different calls may use
// different expiries. A non-positive expiry falls back to
// DefaultShareExpiry. Generation requires no round trip to the storage
// service - the URL is signed locally - but can still fail on credential
// problems, which read as ("", false).
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - expiry: Link lifetime; DefaultShareExpiry when <= 0
//
// Returns:
//   - string: Presigned GET URL, valid only when the second value is true
//   - bool: True if link generation succeeded
func (h *Handle) ShareURL(ctx context.Context, expiry time.Duration) (string, bool) {
	if h.presign == nil {
		logger.Debug("no presign client configured for %s", h.ref)
		return "", false
	}

	if expiry <= 0 {
		expiry = DefaultShareExpiry
	}

	start := time.Now()
	req, err := h.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(h.ref.Bucket),
		Key:    aws.String(h.ref.Key),
	}, s3.WithPresignExpires(expiry))
	h.observe("presign", start, err)
	if err != nil {
		logger.Debug("share link generation for %s failed: %v", h.ref, err)
		return "", false
	}

	return req.URL, true
}

// fetchHead runs the memoized metadata query.
func (h *Handle) fetchHead(ctx context.Context) objectHead {
	h.headOnce.Do(func() {
		start := time.Now()

		out, err := h.api.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(h.ref.Bucket),
			Key:    aws.String(h.ref.Key),
		})
		h.observe("head", start, err)
		if err != nil {
			if isNotFound(err) {
				logger.Debug("remote object %s not found", h.ref)
			} else {
				logger.Debug("metadata query for %s failed, treating as absent: %v", h.ref, err)
			}
			return
		}

		h.head.found = true
		if out.LastModified != nil {
			h.head.modifiedAt = *out.LastModified
		}
	})

	return h.head
}

// observe reports one operation to the metrics collector. An absent object
// is a successful round trip, so not-found answers count as success.
func (h *Handle) observe(operation string, start time.Time, err error) {
	if isNotFound(err) {
		err = nil
	}
	h.metrics.ObserveOperation(operation, time.Since(start), err)
}

// isNotFound reports whether err is the storage service's "object absent"
// answer rather than a transport failure. HeadObject reports absence as
// *types.NotFound while GetObject uses *types.NoSuchKey.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchKey)
}
