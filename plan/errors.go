// SPDX-License-Identifier: EPL-2.0

package plan

import "errors"

var (
	// ErrTrimFailed marks a physical trim step that failed. Pipeline
	// implementations wrap it so callers can distinguish trim failures
	// from export or reimport failures. The affected references are
	// left unmodified and the run continues.
	ErrTrimFailed = errors.New("audio trim failed")

	// ErrDuplicationFailed marks a resource copy that could not be
	// created. Host implementations wrap it; the dependent policy step
	// aborts for that resource only.
	ErrDuplicationFailed = errors.New("resource duplication failed")
)
