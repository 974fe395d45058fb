// SPDX-License-Identifier: EPL-2.0

package plan

import "fmt"

// Window is the milliseconds range of a resource actually used by one or
// more references. StartMs and EndMs are offsets into the resource, not
// into the owning scope.
type Window struct {
	StartMs  int
	EndMs    int
	Resource Resource
}

// InvalidWindow is the sentinel returned by hosts that cannot resolve a
// placement. It never passes IsValid.
var InvalidWindow = Window{StartMs: -1, EndMs: -1}

// IsValid reports whether the window has non-negative bounds and an
// owning resource.
func (w Window) IsValid() bool {
	return w.StartMs >= 0 && w.EndMs >= 0 && w.Resource != nil
}

// UsageDurationMs returns the length of the used range.
func (w Window) UsageDurationMs() int {
	return w.EndMs - w.StartMs
}

// TotalDurationMs returns the full duration of the owning resource, which
// may differ from the usage duration.
func (w Window) TotalDurationMs() int {
	if w.Resource == nil {
		return 0
	}
	return w.Resource.TotalDurationMs()
}

// IsLooping reports whether the window wraps past the natural end of the
// resource. Overruns smaller than toleranceMs are rounding noise from the
// host timeline, not loops.
func (w Window) IsLooping(toleranceMs int) bool {
	total := w.TotalDurationMs()
	return w.EndMs > total && w.EndMs-total >= toleranceMs
}

// IsAlreadyTrimmed reports whether the window already covers roughly the
// whole resource, so physically trimming it would be a no-op.
func (w Window) IsAlreadyTrimmed(toleranceMs int) bool {
	return w.TotalDurationMs()-w.UsageDurationMs() < toleranceMs &&
		w.StartMs < toleranceMs
}

// IsSimilar reports whether both windows reference the same resource and
// both bound deltas are within toleranceMs. All window comparisons in the
// planner are tolerance-widened, never exact.
func (w Window) IsSimilar(other Window, toleranceMs int) bool {
	return w.Resource == other.Resource &&
		absDiff(w.StartMs, other.StartMs) <= toleranceMs &&
		absDiff(w.EndMs, other.EndMs) <= toleranceMs
}

// Contains reports whether the [startMs, endMs] range lies entirely
// inside the window.
func (w Window) Contains(startMs, endMs int) bool {
	return startMs >= w.StartMs && endMs <= w.EndMs
}

func (w Window) String() string {
	name := "<none>"
	if w.Resource != nil {
		name = w.Resource.Name()
	}
	return fmt.Sprintf("%s[%d-%d]", name, w.StartMs, w.EndMs)
}

// maxWindow coalesces two similar windows into one, keeping the larger
// start and the larger end independently. Widen-only, so no reference
// ever loses material it needs.
func maxWindow(a, b Window) Window {
	return Window{
		StartMs:  max(a.StartMs, b.StartMs),
		EndMs:    max(a.EndMs, b.EndMs),
		Resource: a.Resource,
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
