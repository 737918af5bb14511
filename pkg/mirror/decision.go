// Package mirror keeps a local file in step with a single remote object.
//
// The policy half (Evaluate) is a pure function over observed state. The
// action half (Syncer) queries a remote object, applies the policy and
// performs at most one local write per call.
package mirror

import "time"

// State classifies a local file against its remote object.
type State int

const (
	// StateMissing means the remote object is unreachable; there is
	// nothing to mirror.
	StateMissing State = iota

	// StateUpToDate means the local file is at least as new as the
	// remote object.
	StateUpToDate

	// StateStale means the local file is absent or older than the
	// remote object and should be replaced.
	StateStale
)

// String returns the state name for log messages.
func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUpToDate:
		return "up-to-date"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Decision is the outcome of comparing local state against remote state.
type Decision struct {
	// State classifies the comparison
	State State

	// ShouldCopy is true when a copy action should run
	ShouldCopy bool
}

// Evaluate decides what to do about a local file given what is known
// about its remote counterpart. Identical inputs always yield the
// identical decision; nothing is touched or fetched here.
//
// Rules, in order:
//  1. Remote unreachable: nothing to mirror, no copy.
//  2. No local file: stale, copy.
//  3. Local at least as new as remote: up to date, no copy. A tie counts
//     as current, so an unchanged pair never triggers a transfer.
//  4. Otherwise: stale, copy.
//
// A remote object without a usable modification instant compares as
// infinitely old, so any existing local file counts as current.
func Evaluate(remoteExists bool, remoteModifiedAt time.Time, localExists bool, localModifiedAt time.Time) Decision {
	if !remoteExists {
		return Decision{State: StateMissing}
	}

	if !localExists {
		return Decision{State: StateStale, ShouldCopy: true}
	}

	if !localModifiedAt.Before(remoteModifiedAt) {
		return Decision{State: StateUpToDate}
	}

	return Decision{State: StateStale, ShouldCopy: true}
}
