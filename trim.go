// SPDX-License-Identifier: EPL-2.0

package seqtrim

import (
	"go.uber.org/zap"

	"github.com/seqtrim/seqtrim/plan"
)

// Trim runs the full consolidation and trim pass over the given scopes
// with the process-global zap logger. It is a convenience wrapper
// around plan.New.
func Trim(host plan.Host, pipe plan.Pipeline, cfg plan.Config, scopes ...plan.Scope) *plan.Summary {
	return plan.New(host, pipe, cfg, zap.L()).Run(scopes...)
}
