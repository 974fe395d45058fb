// SPDX-License-Identifier: EPL-2.0

package plan

// LoopingPolicy selects how windows that wrap past the natural end of
// their resource are handled.
type LoopingPolicy uint8

const (
	// LoopingSkipAll excludes a looping resource entirely, including
	// every other window that shares it.
	LoopingSkipAll LoopingPolicy = iota

	// LoopingSkipAndDuplicate moves all non-looping usage of the
	// resource onto a duplicate and drops the looping usage.
	LoopingSkipAndDuplicate

	// LoopingSplitIntoSegments carves each looping placement into
	// consecutive non-looping chunk references.
	LoopingSplitIntoSegments
)

func (p LoopingPolicy) String() string {
	switch p {
	case LoopingSkipAll:
		return "SkipAll"
	case LoopingSkipAndDuplicate:
		return "SkipAndDuplicate"
	case LoopingSplitIntoSegments:
		return "SplitIntoSegments"
	}
	return "Unknown"
}

// ExternalUsagePolicy selects how resources referenced outside the
// tracked scopes are handled.
type ExternalUsagePolicy uint8

const (
	// ExternalSkipAll excludes the resource from processing entirely.
	ExternalSkipAll ExternalUsagePolicy = iota

	// ExternalSkipAndDuplicate trims a duplicate instead, leaving the
	// original and its external consumers untouched.
	ExternalSkipAndDuplicate
)

func (p ExternalUsagePolicy) String() string {
	switch p {
	case ExternalSkipAll:
		return "SkipAll"
	case ExternalSkipAndDuplicate:
		return "SkipAndDuplicate"
	}
	return "Unknown"
}

// ConflictPolicy selects how a resource with more than one distinct
// usage window is handled.
type ConflictPolicy uint8

const (
	// ConflictSkipAll drops the resource entirely; the ambiguity is
	// unsafe to resolve automatically.
	ConflictSkipAll ConflictPolicy = iota

	// ConflictReimportOneDuplicateRest reimports the last window group
	// into the original resource and every earlier group into its own
	// duplicate. Resolved by the executor, not by a resolver stage.
	ConflictReimportOneDuplicateRest
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictSkipAll:
		return "SkipAll"
	case ConflictReimportOneDuplicateRest:
		return "ReimportOneDuplicateRest"
	}
	return "Unknown"
}

// SegmentReusePolicy selects whether overlapping windows are fragmented
// into minimal reusable segments.
type SegmentReusePolicy uint8

const (
	SegmentKeepOriginal SegmentReusePolicy = iota
	SegmentFragmentForReuse
)

func (p SegmentReusePolicy) String() string {
	switch p {
	case SegmentKeepOriginal:
		return "KeepOriginal"
	case SegmentFragmentForReuse:
		return "FragmentForReuse"
	}
	return "Unknown"
}

// Config is the full configuration surface of the planner. Supplied once
// at run start, read-only thereafter.
type Config struct {
	// ToleranceMs is the minimum difference threshold. It is both the
	// coalescing tolerance for similar windows and the minimum segment
	// length the fragmenter keeps.
	ToleranceMs int

	Looping            LoopingPolicy
	ExternalUsage      ExternalUsagePolicy
	ConflictingWindows ConflictPolicy
	SegmentReuse       SegmentReusePolicy
}

// DefaultConfig returns the configuration used when callers have no
// opinion: 50 ms tolerance, safest policy on every axis.
func DefaultConfig() Config {
	return Config{ToleranceMs: 50}
}
