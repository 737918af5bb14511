// Package remote binds a single object in an S3-compatible bucket to a
// small set of lazily-evaluated, memoized accessors: existence, remote
// modification time, full content, and time-limited share links.
//
// Evaluation Model:
// A Handle performs at most one metadata request and at most one content
// request over its whole lifetime, no matter how many times its accessors
// are called or in which order. The two requests are cached independently,
// so checking Exists followed by Content costs one HeadObject and one
// GetObject total. Every accessor call observes the same snapshot of remote
// state; a Handle is meant to live for exactly one logical operation and be
// discarded afterwards.
//
// Failure Conflation:
// Accessors never return errors. Any storage failure - object missing,
// network error, authentication failure - is reported as absence (false or
// a missing value). Callers therefore cannot distinguish "the object does
// not exist" from "the request failed"; this keeps every per-object
// operation total from the caller's perspective at the cost of precision.
// The swallowed cause is logged at debug level. Failed requests are cached
// like successful ones: a Handle makes a single attempt per request kind
// and does not retry within its lifetime.
//
// Only construction fails loudly: NewHandle rejects missing clients and
// invalid object references, since a broken configuration would make every
// subsequent call meaningless.
//
// Thread Safety:
// A Handle is safe for concurrent use; the memoized slots are guarded by
// sync.Once. The expected usage is still one handle per logical flow, with
// independent handles for independent objects.
package remote
