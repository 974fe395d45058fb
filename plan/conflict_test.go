// SPDX-License-Identifier: EPL-2.0

package plan

import "testing"

func TestConflictSkipAll(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	conflicted := &fakeResource{name: "SW_Multi", totalMs: 2000}
	single := &fakeResource{name: "SW_Single", totalMs: 1000}
	s := h.addScope("LS_Main")
	h.addRef(s, conflicted, 0, 300)
	h.addRef(s, conflicted, 700, 1000)
	h.addRef(s, single, 100, 700)

	cfg := DefaultConfig()
	p := newTestPlanner(t, h, &fakePipeline{}, cfg)

	idx := NewIndex(cfg.ToleranceMs)
	p.buildScopeUsage(idx, s)
	p.applyConflictPolicy(idx)

	if idx.Windows(conflicted) != nil {
		t.Error("resource with conflicting windows must be removed")
	}
	if idx.Windows(single) == nil {
		t.Error("single-window resource must survive")
	}
}

func TestConflictReimportOneDuplicateRestDefersToExecutor(t *testing.T) {
	t.Parallel()

	h := newFakeHost()
	res := &fakeResource{name: "SW_Multi", totalMs: 2000}
	s := h.addScope("LS_Main")
	h.addRef(s, res, 0, 300)
	h.addRef(s, res, 700, 1000)

	cfg := DefaultConfig()
	cfg.ConflictingWindows = ConflictReimportOneDuplicateRest
	p := newTestPlanner(t, h, &fakePipeline{}, cfg)

	idx := NewIndex(cfg.ToleranceMs)
	p.buildScopeUsage(idx, s)
	p.applyConflictPolicy(idx)

	wm := idx.Windows(res)
	if wm == nil || wm.Len() != 2 {
		t.Fatalf("both windows must stay for the executor, got %v", wm)
	}
	if h.dupCount != 0 {
		t.Error("no duplication may happen before execution")
	}
}
