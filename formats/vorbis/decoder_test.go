package vorbis

import (
	"strings"
	"testing"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(strings.NewReader("not an ogg container")); err == nil {
		t.Fatal("garbage input must not produce a source")
	}
}
