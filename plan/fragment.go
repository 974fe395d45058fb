// SPDX-License-Identifier: EPL-2.0

package plan

import (
	"sort"

	"go.uber.org/zap"
)

// segment is a candidate reusable sub-range of a resource, in resource
// milliseconds.
type segment struct {
	startMs, endMs int
}

// applyFragmentation optionally splits overlapping windows into the
// minimal set of non-overlapping reusable segments.
func (p *Planner) applyFragmentation(idx *Index) {
	switch p.cfg.SegmentReuse {
	case SegmentKeepOriginal:
		return
	case SegmentFragmentForReuse:
		for _, res := range idx.Resources() {
			p.fragmentResource(idx, res)
		}
	default:
		panic("plan: unhandled SegmentReusePolicy value " + p.cfg.SegmentReuse.String())
	}
}

// fragmentResource replaces the resource's N possibly-overlapping
// windows with non-overlapping segments such that every original window
// is exactly covered by a contiguous run of segments, and a sub-range
// shared by several windows becomes a single segment referenced by all
// of them. References whose placement already equals a single segment
// are left alone.
func (p *Planner) fragmentResource(idx *Index, res Resource) {
	wm := idx.Windows(res)
	if wm == nil || wm.Len() < 2 {
		// Nothing can overlap, the minimal cover is the window itself.
		return
	}

	segs := cutSegments(wm.Groups(), p.cfg.ToleranceMs)
	if len(segs) == 0 {
		return
	}

	type conversion struct {
		group *Group
		ref   Reference
		made  []Reference
	}

	// Pass 1: synthesize replacement references, no index mutation yet.
	var conversions []conversion
	for _, g := range wm.Groups() {
		if coveredByOneSegment(segs, g.Window) {
			continue
		}

		for _, ref := range g.Refs {
			rw := p.host.PlacementWindow(ref)
			if !rw.IsValid() {
				continue
			}

			made, err := p.synthesizeSegments(ref, rw, segs)
			if err != nil {
				p.log.Warn("fragmentation failed, reference left untouched",
					zap.String("window", rw.String()),
					zap.Error(err))
				continue
			}
			if len(made) == 0 {
				continue
			}
			conversions = append(conversions, conversion{group: g, ref: ref, made: made})
		}
	}
	if len(conversions) == 0 {
		return
	}

	// Pass 2: drop the converted originals and re-derive windows from
	// the fresh references.
	for _, c := range conversions {
		p.host.RemoveReference(c.ref)
		c.group.dropRef(c.ref)
	}
	for _, g := range wm.Groups() {
		if len(g.Refs) == 0 {
			wm.Delete(g)
		}
	}
	for _, c := range conversions {
		for _, ref := range c.made {
			p.addUsage(idx, ref)
		}
	}
	wm.sortGroups()

	p.log.Info("fragmented resource usage into segments",
		zap.String("resource", res.Name()),
		zap.Int("segments", len(segs)),
		zap.Int("windows", wm.Len()))
}

// synthesizeSegments creates one new reference per segment contained in
// the reference's own window, translated into placement coordinates.
// A segment outside the declared range is skipped for this reference,
// not clamped; under-coverage is preferred over audible artifacts.
func (p *Planner) synthesizeSegments(ref Reference, rw Window, segs []segment) ([]Reference, error) {
	var made []Reference
	for _, seg := range segs {
		if !rw.Contains(seg.startMs, seg.endMs) {
			continue
		}

		sub, err := p.host.SplitReferencePlacement(ref, seg.startMs-rw.StartMs, seg.endMs-seg.startMs)
		if err != nil {
			for _, m := range made {
				p.host.RemoveReference(m)
			}
			return nil, err
		}
		made = append(made, sub)
	}
	return made, nil
}

// cutSegments collects every window's bounds into a sorted set of cut
// points and forms a candidate segment from each consecutive pair.
// Candidates shorter than minMs would produce pathological
// micro-segments and are discarded.
//
// A kept segment can be exactly minMs long. Two adjacent minMs-length
// segments are then within tolerance of each other and re-coalesce into
// one widened group when the fresh references are re-indexed; inputs
// with tolerance-scale windows are unguarded here, same as in the
// max/max coalescing rule.
func cutSegments(groups []*Group, minMs int) []segment {
	cuts := make([]int, 0, len(groups)*2)
	for _, g := range groups {
		cuts = append(cuts, g.Window.StartMs, g.Window.EndMs)
	}
	sort.Ints(cuts)

	uniq := cuts[:0]
	for i, c := range cuts {
		if i == 0 || c != uniq[len(uniq)-1] {
			uniq = append(uniq, c)
		}
	}

	var segs []segment
	for i := 1; i < len(uniq); i++ {
		if length := uniq[i] - uniq[i-1]; length >= max(minMs, 1) {
			segs = append(segs, segment{startMs: uniq[i-1], endMs: uniq[i]})
		}
	}
	return segs
}

// coveredByOneSegment reports whether the window maps to exactly one
// segment with its own bounds, i.e. fragmentation would only churn the
// reference without enabling any reuse.
func coveredByOneSegment(segs []segment, w Window) bool {
	for _, seg := range segs {
		if seg.startMs == w.StartMs && seg.endMs == w.EndMs {
			return true
		}
	}
	return false
}
