// SPDX-License-Identifier: EPL-2.0

package plan

import "go.uber.org/zap"

// applyLoopingPolicy resolves every window that wraps past the natural
// end of its resource.
func (p *Planner) applyLoopingPolicy(idx *Index) {
	looping := p.loopingResources(idx)
	if len(looping) == 0 {
		return
	}

	switch p.cfg.Looping {
	case LoopingSkipAll:
		for _, res := range looping {
			p.log.Warn("skipping looping resource entirely",
				zap.String("resource", res.Name()),
				zap.String("policy", p.cfg.Looping.String()))
			idx.Remove(res)
		}

	case LoopingSkipAndDuplicate:
		for _, res := range looping {
			p.duplicateAroundLoop(idx, res)
		}

	case LoopingSplitIntoSegments:
		for _, res := range looping {
			p.splitLoopingWindows(idx, res)
		}

	default:
		panic("plan: unhandled LoopingPolicy value " + p.cfg.Looping.String())
	}
}

func (p *Planner) loopingResources(idx *Index) []Resource {
	var out []Resource
	for _, res := range idx.Resources() {
		for _, g := range idx.Windows(res).Groups() {
			if g.Window.IsLooping(p.cfg.ToleranceMs) {
				out = append(out, res)
				break
			}
		}
	}
	return out
}

// duplicateAroundLoop moves every non-looping window of the resource
// onto a fresh duplicate and drops the looping usage. The original
// resource entry is always removed afterwards: either its windows moved
// to the duplicate or nothing was left to trim.
func (p *Planner) duplicateAroundLoop(idx *Index, res Resource) {
	wm := idx.Windows(res)

	var dup Resource
	for _, g := range wm.Groups() {
		if g.Window.IsLooping(p.cfg.ToleranceMs) {
			continue
		}

		if dup == nil {
			d, err := p.host.DuplicateResource(res)
			if err != nil {
				p.log.Warn("cannot duplicate around looping usage, resource left untouched",
					zap.String("resource", res.Name()),
					zap.Error(err))
				idx.Remove(res)
				return
			}
			dup = d
			p.log.Info("duplicated resource for non-looping usage",
				zap.String("resource", res.Name()),
				zap.String("duplicate", dup.Name()))
		}

		w := g.Window
		w.Resource = dup
		for _, ref := range g.Refs {
			p.host.ReassignResource(ref, dup)
			idx.Add(w, ref)
		}
	}

	idx.Remove(res)
}

// splitLoopingWindows replaces each looping placement with consecutive
// non-looping chunk references and recomputes the resource's windows
// from the fresh references. This is the only path where the builder is
// re-invoked mid-pipeline, and only on the freshly produced references.
func (p *Planner) splitLoopingWindows(idx *Index, res Resource) {
	wm := idx.Windows(res)
	total := res.TotalDurationMs()
	if total <= 0 {
		idx.Remove(res)
		return
	}

	// Pass 1: compute edits without mutating the live map.
	var drop []*Group
	var fresh []Reference
	for _, g := range wm.Groups() {
		if !g.Window.IsLooping(p.cfg.ToleranceMs) {
			continue
		}
		drop = append(drop, g)

		for _, ref := range g.Refs {
			chunks, err := p.splitReference(ref, g.Window, total)
			if err != nil {
				p.log.Warn("loop split failed, reference left untouched",
					zap.String("window", g.Window.String()),
					zap.Error(err))
				continue
			}
			p.host.RemoveReference(ref)
			fresh = append(fresh, chunks...)
		}
	}

	// Pass 2: apply.
	for _, g := range drop {
		wm.Delete(g)
	}
	for _, ref := range fresh {
		p.addUsage(idx, ref)
	}

	if wm.Len() == 0 {
		idx.Remove(res)
		return
	}
	wm.sortGroups()
}

// splitReference carves the reference's placement into consecutive
// chunks: the first sized totalMs minus the window start, the rest sized
// totalMs, the last taking the remainder. Each chunk plays a non-looping
// sub-range of the resource.
func (p *Planner) splitReference(ref Reference, w Window, totalMs int) ([]Reference, error) {
	span := w.UsageDurationMs()

	chunk := totalMs - w.StartMs
	if chunk <= 0 {
		chunk = totalMs
	}

	var out []Reference
	for offset := 0; offset < span; {
		if chunk > span-offset {
			chunk = span - offset
		}

		sub, err := p.host.SplitReferencePlacement(ref, offset, chunk)
		if err != nil {
			for _, made := range out {
				p.host.RemoveReference(made)
			}
			return nil, err
		}
		out = append(out, sub)

		offset += chunk
		chunk = totalMs
	}
	return out, nil
}
