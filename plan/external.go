// SPDX-License-Identifier: EPL-2.0

package plan

import "go.uber.org/zap"

// applyExternalPolicy resolves resources that are referenced directly
// from outside the tracked scopes, e.g. by the world or by scripts.
// Reimporting such a resource with new timings would break those
// consumers.
func (p *Planner) applyExternalPolicy(idx *Index) {
	var outside []Resource
	for _, res := range idx.Resources() {
		if p.host.HasExternalReferences(res) {
			p.log.Warn("resource is referenced outside the tracked scopes",
				zap.String("resource", res.Name()),
				zap.String("policy", p.cfg.ExternalUsage.String()))
			outside = append(outside, res)
		}
	}
	if len(outside) == 0 {
		return
	}

	switch p.cfg.ExternalUsage {
	case ExternalSkipAll:
		for _, res := range outside {
			idx.Remove(res)
		}

	case ExternalSkipAndDuplicate:
		for _, res := range outside {
			dup, err := p.host.DuplicateResource(res)
			if err != nil {
				p.log.Warn("cannot duplicate externally used resource, left untouched",
					zap.String("resource", res.Name()),
					zap.Error(err))
				idx.Remove(res)
				continue
			}

			for _, g := range idx.Windows(res).Groups() {
				for _, ref := range g.Refs {
					p.host.ReassignResource(ref, dup)
				}
			}
			idx.Replace(res, dup)

			p.log.Info("redirected tracked usage to duplicate",
				zap.String("resource", res.Name()),
				zap.String("duplicate", dup.Name()))
		}

	default:
		panic("plan: unhandled ExternalUsagePolicy value " + p.cfg.ExternalUsage.String())
	}
}
