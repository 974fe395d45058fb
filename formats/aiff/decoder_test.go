// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(strings.NewReader("not an aiff stream"))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Fatalf("err = %v, want ErrNotAiffFile", err)
	}
}
