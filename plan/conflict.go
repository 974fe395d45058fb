// SPDX-License-Identifier: EPL-2.0

package plan

import "go.uber.org/zap"

// applyConflictPolicy resolves resources that ended up with more than
// one distinct usage window.
//
// ConflictReimportOneDuplicateRest is deliberately resolved by the
// executor rather than here: which group gets the original and which
// get duplicates depends on group processing order, and moving that
// decision earlier would change the observable order.
func (p *Planner) applyConflictPolicy(idx *Index) {
	for _, res := range idx.Resources() {
		wm := idx.Windows(res)
		if wm == nil || wm.Len() <= 1 {
			continue
		}

		switch p.cfg.ConflictingWindows {
		case ConflictSkipAll:
			p.log.Warn("skipping resource with conflicting usage windows",
				zap.String("resource", res.Name()),
				zap.Int("windows", wm.Len()))
			idx.Remove(res)

		case ConflictReimportOneDuplicateRest:
			// Validated here, resolved by the executor.

		default:
			panic("plan: unhandled ConflictPolicy value " + p.cfg.ConflictingWindows.String())
		}
	}
}
