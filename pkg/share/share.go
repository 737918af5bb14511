// Package share hands out time-limited download links for remote objects.
package share

import (
	"context"
	"time"

	"github.com/cubbit/objsync/internal/logger"
	"github.com/cubbit/objsync/pkg/remote"
)

// Object is the view of a remote object a link request needs.
// *remote.Handle implements it; tests substitute fakes.
type Object interface {
	Exists(ctx context.Context) bool
	ShareURL(ctx context.Context, expiry time.Duration) (string, bool)
	Ref() remote.ObjectRef
}

var _ Object = (*remote.Handle)(nil)

// Service generates presigned download links for objects that exist.
//
// The service holds no per-object state; it is a guard in front of the
// handle's link generation, plus the configured default lifetime.
type Service struct {
	// DefaultExpiry is used when a request supplies no positive expiry
	DefaultExpiry time.Duration
}

// NewService returns a Service with the given default link lifetime.
// A non-positive value falls back to remote.DefaultShareExpiry.
func NewService(defaultExpiry time.Duration) *Service {
	if defaultExpiry <= 0 {
		defaultExpiry = remote.DefaultShareExpiry
	}

	return &Service{DefaultExpiry: defaultExpiry}
}

// DownloadLink returns a time-limited URL for the object.
//
// The existence check runs first: no link is minted for an object that is
// unreachable, so a returned URL always pointed at a live object at the
// moment of the check. Failures of any kind read as ("", false).
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - obj: Remote object to link to
//   - expiry: Link lifetime; the service default when <= 0
//
// Returns:
//   - string: Presigned URL, valid only when the second value is true
//   - bool: True if the object exists and signing succeeded
func (s *Service) DownloadLink(ctx context.Context, obj Object, expiry time.Duration) (string, bool) {
	if !obj.Exists(ctx) {
		logger.Debug("not generating link for %s: object unreachable", obj.Ref())
		return "", false
	}

	if expiry <= 0 {
		expiry = s.DefaultExpiry
	}

	return obj.ShareURL(ctx, expiry)
}
