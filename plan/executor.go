// SPDX-License-Identifier: EPL-2.0

package plan

import (
	"fmt"

	"go.uber.org/zap"
)

// Summary reports the outcome of one run.
type Summary struct {
	// Processed counts window groups that went through the physical
	// export, trim and reimport path.
	Processed int
	// Reused counts references repointed to an already-produced result
	// without any physical work.
	Reused int
	// Skipped counts window groups left alone because the usage already
	// covers the whole resource.
	Skipped int
	// Failed counts window groups whose physical step failed. The
	// affected references were left exactly as found.
	Failed int
}

func (s *Summary) String() string {
	return fmt.Sprintf("processed=%d reused=%d skipped=%d failed=%d",
		s.Processed, s.Reused, s.Skipped, s.Failed)
}

// Per-group processing states. A group enters processing exactly once;
// every reference after the primary goes straight to reused.
type groupState uint8

const (
	groupPending groupState = iota
	groupSkipped
	groupProcessing
	groupDone
	groupFailed
)

// execute walks the final index and performs the physical work. For each
// window group only the primary reference drives export, trim and
// reimport; every other reference is repointed to the produced resource.
// This is the only stage with side effects on external state.
func (p *Planner) execute(idx *Index) *Summary {
	sum := &Summary{}

	for _, res := range idx.Resources() {
		wm := idx.Windows(res)
		if wm == nil || wm.Len() == 0 {
			continue
		}

		groups := wm.Groups()
		for i, g := range groups {
			if len(g.Refs) == 0 {
				continue
			}

			if g.Window.IsAlreadyTrimmed(p.cfg.ToleranceMs) {
				p.log.Info("skipping group, usage already covers the resource",
					zap.String("window", g.Window.String()))
				sum.Skipped++
				continue
			}

			// Under ReimportOneDuplicateRest every group but the last
			// reimports into its own duplicate, so trimming one window
			// cannot break the next.
			target := res
			if p.cfg.ConflictingWindows == ConflictReimportOneDuplicateRest && i < len(groups)-1 {
				dup, err := p.host.DuplicateResource(res)
				if err != nil {
					p.log.Warn("cannot duplicate for conflicting window, group left untouched",
						zap.String("window", g.Window.String()),
						zap.Error(err))
					sum.Failed++
					continue
				}
				target = dup
			}

			if p.processGroup(g, target) == groupDone {
				sum.Processed++
				sum.Reused += len(g.Refs) - 1
			} else {
				sum.Failed++
			}
		}
	}

	p.log.Info("processing complete",
		zap.Int("processed", sum.Processed),
		zap.Int("reused", sum.Reused),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed))

	return sum
}

// processGroup runs the physical pipeline once for the group's primary
// reference and repoints the rest to the result. On any failure the
// whole group is left exactly as found; processing is never retried with
// another reference.
func (p *Planner) processGroup(g *Group, target Resource) groupState {
	w := g.Window
	primary := g.Refs[0]

	exported, err := p.pipe.ExportToIntermediate(target)
	if err != nil {
		p.log.Warn("failed to export resource",
			zap.String("resource", target.Name()),
			zap.Error(err))
		return groupFailed
	}

	trimmed, err := p.pipe.TrimIntermediate(exported, w.StartMs, w.EndMs)
	if err != nil {
		p.log.Warn("failed to trim intermediate",
			zap.String("window", w.String()),
			zap.Error(err))
		p.pipe.DeleteIntermediate(exported)
		return groupFailed
	}

	if err := p.pipe.ReimportIntoResource(target, trimmed); err != nil {
		p.log.Warn("failed to reimport trimmed audio",
			zap.String("resource", target.Name()),
			zap.Error(err))
		p.pipe.DeleteIntermediate(exported)
		p.pipe.DeleteIntermediate(trimmed)
		return groupFailed
	}

	p.host.RepointReference(primary, target)

	p.pipe.DeleteIntermediate(exported)
	p.pipe.DeleteIntermediate(trimmed)

	for _, ref := range g.Refs[1:] {
		p.host.RepointReference(ref, target)
	}

	p.log.Info("trimmed window group",
		zap.String("window", w.String()),
		zap.String("target", target.Name()),
		zap.Int("references", len(g.Refs)))

	return groupDone
}
