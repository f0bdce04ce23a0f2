package secondary

import "errors"

// Sentinel errors shared across repository implementations. Services check
// these with errors.Is to classify failures without depending on adapter
// internals.
var (
	// ErrNotFound indicates a referenced entity no longer exists. For an
	// allocation apply this is fatal: the caller passed a stale snapshot
	// and must refresh and retry the whole run.
	ErrNotFound = errors.New("not found")

	// ErrStaleProposal indicates transactional re-validation failed: a
	// concurrent write consumed the supply or deficit the proposal relied
	// on. The proposal is skipped, not retried.
	ErrStaleProposal = errors.New("stale proposal - re-plan required")

	// ErrNoMatch indicates no available volunteer satisfies a skill/role
	// request. Reported, not retried.
	ErrNoMatch = errors.New("no matching volunteer")
)
