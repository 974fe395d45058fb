// SPDX-License-Identifier: EPL-2.0

package plan

import "go.uber.org/zap"

// Planner drives the whole consolidation and trim pipeline. It runs
// single-threaded and synchronously; the index is mutated on one logical
// thread of control, so no locking happens inside the core.
type Planner struct {
	host Host
	pipe Pipeline
	cfg  Config
	log  *zap.Logger
}

// New creates a planner. A nil logger falls back to zap.NewNop().
func New(host Host, pipe Pipeline, cfg Config, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{host: host, pipe: pipe, cfg: cfg, log: log}
}

// Run consolidates every usage of shared audio resources in the given
// scopes and executes the resulting trim plan. Stages run in fixed
// order: build, merge other scopes, looping policy, external-usage
// policy, conflicting-windows policy, fragmentation, execution. Each
// policy stage may remove or rewrite entries the next one consumes.
//
// Every failure is resource-scoped; one resource failing never affects
// another's processing.
func (p *Planner) Run(scopes ...Scope) *Summary {
	idx := NewIndex(p.cfg.ToleranceMs)

	requested := make(map[Scope]bool, len(scopes))
	for _, scope := range scopes {
		p.buildScopeUsage(idx, scope)
		if scope != nil {
			requested[scope] = true
		}
	}

	if idx.IsEmpty() {
		p.log.Warn("no valid usage windows found in the requested scopes")
		return &Summary{}
	}

	p.mergeOtherScopes(idx, requested)
	p.applyLoopingPolicy(idx)
	p.applyExternalPolicy(idx)
	p.applyConflictPolicy(idx)
	p.applyFragmentation(idx)

	p.log.Info("trim plan ready", zap.Int("resources", idx.Len()))

	return p.execute(idx)
}
