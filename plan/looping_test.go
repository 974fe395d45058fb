// SPDX-License-Identifier: EPL-2.0

package plan

import (
	"errors"
	"testing"
)

func TestLoopingSkipAllRemovesWholeResource(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	loops := &fakeResource{name: "SW_Loop", totalMs: 1000}
	clean := &fakeResource{name: "SW_Clean", totalMs: 1000}
	s := h.addScope("LS_Main")

	h.addRef(s, loops, 0, 2600)
	h.addRef(s, loops, 100, 700) // same resource, dragged down with it
	h.addRef(s, clean, 100, 700)

	cfg := DefaultConfig()
	cfg.Looping = LoopingSkipAll
	p := newTestPlanner(t, h, &fakePipeline{}, cfg)

	idx := NewIndex(cfg.ToleranceMs)
	p.buildScopeUsage(idx, s)
	p.applyLoopingPolicy(idx)

	if idx.Windows(loops) != nil {
		t.Error("looping resource must be removed entirely")
	}
	if idx.Windows(clean) == nil {
		t.Error("non-looping resource must survive")
	}
}

func TestLoopingSkipAndDuplicate(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	res := &fakeResource{name: "SW_Loop", totalMs: 1000}
	s := h.addScope("LS_Main")

	h.addRef(s, res, 0, 2600)
	partial := h.addRef(s, res, 100, 700)

	cfg := DefaultConfig()
	cfg.Looping = LoopingSkipAndDuplicate
	p := newTestPlanner(t, h, &fakePipeline{}, cfg)

	idx := NewIndex(cfg.ToleranceMs)
	p.buildScopeUsage(idx, s)
	p.applyLoopingPolicy(idx)

	if idx.Windows(res) != nil {
		t.Fatal("original resource must be removed after duplication")
	}
	if h.dupCount != 1 {
		t.Fatalf("dupCount = %d, want 1", h.dupCount)
	}
	if len(h.reassigned) != 1 || h.reassigned[0].ref != Reference(partial) {
		t.Fatalf("reassigned = %v, want only the non-looping reference", h.reassigned)
	}

	dup := h.reassigned[0].res
	wm := idx.Windows(dup)
	if wm == nil || wm.Len() != 1 {
		t.Fatalf("expected the partial window under the duplicate, got %v", wm)
	}
	if w := wm.Groups()[0].Window; w.StartMs != 100 || w.EndMs != 700 {
		t.Errorf("duplicate window = [%d-%d], want [100-700]", w.StartMs, w.EndMs)
	}
}

func TestLoopingSkipAndDuplicateFailure(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	h.dupErr = errors.New("asset registry busy")
	res := &fakeResource{name: "SW_Loop", totalMs: 1000}
	s := h.addScope("LS_Main")
	h.addRef(s, res, 0, 2600)
	h.addRef(s, res, 100, 700)

	cfg := DefaultConfig()
	cfg.Looping = LoopingSkipAndDuplicate
	p := newTestPlanner(t, h, &fakePipeline{}, cfg)

	idx := NewIndex(cfg.ToleranceMs)
	p.buildScopeUsage(idx, s)
	p.applyLoopingPolicy(idx)

	if !idx.IsEmpty() {
		t.Error("duplication failure must leave the resource out of the plan")
	}
	if len(h.reassigned) != 0 {
		t.Error("no reference may be reassigned after a failed duplication")
	}
}

func TestLoopingSplitIntoSegments(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	res := &fakeResource{name: "SW_Loop", totalMs: 1000}
	s := h.addScope("LS_Main")

	orig := h.addRef(s, res, 0, 2600) // two full loops plus 600 ms

	cfg := DefaultConfig()
	cfg.Looping = LoopingSplitIntoSegments
	p := newTestPlanner(t, h, &fakePipeline{}, cfg)

	idx := NewIndex(cfg.ToleranceMs)
	p.buildScopeUsage(idx, s)
	p.applyLoopingPolicy(idx)

	if !orig.removed {
		t.Error("the looping reference must be removed after splitting")
	}
	if got := len(h.refs[s]); got != 3 {
		t.Fatalf("scope has %d refs, want 3 chunk references", got)
	}

	// Chunks covering the full resource carry no trim work, so only the
	// final 600 ms chunk remains indexed.
	wm := idx.Windows(res)
	if wm == nil || wm.Len() != 1 {
		t.Fatalf("expected one remaining window, got %v", wm)
	}
	if w := wm.Groups()[0].Window; w.StartMs != 0 || w.EndMs != 600 {
		t.Errorf("remaining window = [%d-%d], want [0-600]", w.StartMs, w.EndMs)
	}
}

func TestSplitReferenceChunkLayout(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	res := &fakeResource{name: "SW_Loop", totalMs: 1000}
	s := h.addScope("LS_Main")
	ref := h.addRef(s, res, 200, 2600)

	p := newTestPlanner(t, h, &fakePipeline{}, DefaultConfig())
	chunks, err := p.splitReference(ref, h.PlacementWindow(ref), res.totalMs)
	if err != nil {
		t.Fatalf("splitReference: %v", err)
	}

	want := []Window{
		{StartMs: 200, EndMs: 1000},
		{StartMs: 0, EndMs: 1000},
		{StartMs: 0, EndMs: 600},
	}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i, c := range chunks {
		w := h.PlacementWindow(c)
		if w.StartMs != want[i].StartMs || w.EndMs != want[i].EndMs {
			t.Errorf("chunk %d = [%d-%d], want [%d-%d]",
				i, w.StartMs, w.EndMs, want[i].StartMs, want[i].EndMs)
		}
		if w.IsLooping(0) {
			t.Errorf("chunk %d = %v still loops", i, w)
		}
	}
}

// A span of exactly k whole loops yields k chunks, no remainder chunk.
func TestSplitReferenceWholeLoops(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	res := &fakeResource{name: "SW_Loop", totalMs: 1000}
	s := h.addScope("LS_Main")
	ref := h.addRef(s, res, 0, 2000)

	p := newTestPlanner(t, h, &fakePipeline{}, DefaultConfig())
	chunks, err := p.splitReference(ref, h.PlacementWindow(ref), res.totalMs)
	if err != nil {
		t.Fatalf("splitReference: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 whole loops", len(chunks))
	}
	for i, c := range chunks {
		w := h.PlacementWindow(c)
		if w.StartMs != 0 || w.EndMs != 1000 {
			t.Errorf("chunk %d = [%d-%d], want [0-1000]", i, w.StartMs, w.EndMs)
		}
		if w.IsLooping(0) {
			t.Errorf("chunk %d = %v still loops", i, w)
		}
	}
}

func TestSplitReferenceFailureCleansUp(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	h.splitErr = errors.New("placement locked")
	res := &fakeResource{name: "SW_Loop", totalMs: 1000}
	s := h.addScope("LS_Main")
	orig := h.addRef(s, res, 0, 2600)

	cfg := DefaultConfig()
	cfg.Looping = LoopingSplitIntoSegments
	p := newTestPlanner(t, h, &fakePipeline{}, cfg)

	idx := NewIndex(cfg.ToleranceMs)
	p.buildScopeUsage(idx, s)
	p.applyLoopingPolicy(idx)

	if orig.removed {
		t.Error("failed split must leave the original reference in place")
	}
	if got := len(h.refs[s]); got != 1 {
		t.Errorf("scope has %d refs, want the untouched original only", got)
	}
}
