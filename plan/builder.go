// SPDX-License-Identifier: EPL-2.0

package plan

import "go.uber.org/zap"

// buildScopeUsage scans one scope and folds every valid usage window
// into the index, coalescing by similarity. An empty or nil scope is a
// no-op with a diagnostic, not an error; downstream stages tolerate an
// empty index.
func (p *Planner) buildScopeUsage(idx *Index, scope Scope) {
	if scope == nil {
		p.log.Warn("skipping nil scope")
		return
	}

	refs := p.host.ResourceReferences(scope)
	if len(refs) == 0 {
		p.log.Warn("no audio references found in scope",
			zap.String("scope", scope.Name()))
		return
	}

	for _, ref := range refs {
		p.addUsage(idx, ref)
	}
}

// addUsage indexes a single reference. Invalid and already-trimmed
// windows are silently excluded here; they carry no trim work.
func (p *Planner) addUsage(idx *Index, ref Reference) {
	w := p.host.PlacementWindow(ref)
	if !w.IsValid() {
		p.log.Debug("excluding reference with invalid window",
			zap.String("window", w.String()))
		return
	}
	if w.IsAlreadyTrimmed(p.cfg.ToleranceMs) {
		p.log.Debug("skipping already trimmed usage",
			zap.String("window", w.String()))
		return
	}

	idx.Add(w, ref)

	if total := w.TotalDurationMs(); total > 0 {
		p.log.Debug("indexed usage window",
			zap.String("window", w.String()),
			zap.Int("usage_ms", w.UsageDurationMs()),
			zap.Float64("used_pct", float64(w.UsageDurationMs())/float64(total)*100))
	}
}

// mergeOtherScopes extends each resource's windows with usages found in
// other scopes that play the same resource. A resource trimmed for one
// scope must account for every other scope that plays it, or trimming
// would silently break unrelated content.
//
// Re-adding a window already in the index is idempotent, so overlapping
// scope visits are harmless.
func (p *Planner) mergeOtherScopes(idx *Index, requested map[Scope]bool) {
	for _, res := range idx.Resources() {
		wm := idx.Windows(res)
		if wm == nil || wm.Len() == 0 {
			continue
		}

		first := wm.FirstReference()
		if first == nil {
			continue
		}
		origin := first.Scope()

		for _, other := range p.host.ScopesReferencing(res) {
			if other == nil || other == origin || requested[other] {
				continue
			}

			p.log.Info("merging usage from other scope",
				zap.String("resource", res.Name()),
				zap.String("scope", other.Name()))

			for _, ref := range p.host.ResourceReferences(other) {
				w := p.host.PlacementWindow(ref)
				if w.Resource != res {
					continue
				}
				p.addUsage(idx, ref)
			}
		}
	}
}
