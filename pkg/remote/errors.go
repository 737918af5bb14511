package remote

import "errors"

// Construction is the only place this package fails loudly; once a Handle
// exists, every accessor is total and reports failure as absence (see the
// package documentation). These sentinels cover the construction errors.
//
// Error Wrapping:
// Constructors wrap these errors with additional context:
//
//	return nil, fmt.Errorf("%w: bucket is required", ErrInvalidReference)

var (
	// ErrInvalidReference indicates the object reference is malformed.
	//
	// This error is returned when:
	//   - NewHandle() called with an empty bucket name
	//   - NewHandle() called with an empty object key
	ErrInvalidReference = errors.New("invalid object reference")

	// ErrMissingClient indicates no storage client was supplied.
	//
	// This error is returned when:
	//   - NewHandle() called with a nil ObjectAPI
	ErrMissingClient = errors.New("object storage client is required")
)
