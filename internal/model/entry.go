package model

// EntryState describes where a frontier entry is in its lifecycle.
// Entries move Pending -> InFlight -> one of the terminal states.
// Every terminal transition is logged so that no entry silently
// disappears from the run.
type EntryState int

const (
	// StatePending means the entry sits in the work queue, not yet dispatched.
	StatePending EntryState = iota

	// StateInFlight means a related-content fetch for the entry is in progress.
	StateInFlight

	// StateExpanded means the fetch succeeded and children were processed.
	StateExpanded

	// StateFailed means the retry budget was exhausted for this entry.
	// The entry's own result stands; it contributes no children.
	StateFailed

	// StateDepthCut means the entry sits exactly at the depth limit.
	// It is reported as a result but never expanded. Not a failure.
	StateDepthCut
)

// String returns the lowercase state name used in logs.
func (s EntryState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateInFlight:
		return "in_flight"
	case StateExpanded:
		return "expanded"
	case StateFailed:
		return "failed"
	case StateDepthCut:
		return "depth_cut"
	default:
		return "unknown"
	}
}

// FrontierEntry is one unit of traversal work: a video together with the
// depth at which it was discovered. Depth 0 entries are search seeds;
// depth d>0 entries were discovered via a related-video edge from a
// depth d-1 entry.
type FrontierEntry struct {
	// Ref is the video this entry expands.
	Ref VideoRef

	// Depth is the discovery depth, starting at 0 for seeds.
	Depth int

	// Parent is the id of the video whose expansion discovered this entry.
	// Empty for seeds.
	Parent string
}
