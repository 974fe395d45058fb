// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type stubSource struct {
	samples    []float32
	pos        int
	sampleRate int
	channels   int
	chunk      int // max samples per read, 0 = unlimited
	failAfter  int // fail once pos passes this, 0 = never
}

func (s *stubSource) SampleRate() int { return s.sampleRate }
func (s *stubSource) Channels() int   { return s.channels }
func (s *stubSource) Close() error    { return nil }

func (s *stubSource) ReadSamples(dst []float32) (int, error) {
	if s.failAfter > 0 && s.pos >= s.failAfter {
		return 0, errors.New("stream corrupted")
	}
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	if s.chunk > 0 && len(dst) > s.chunk {
		dst = dst[:s.chunk]
	}
	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	return n, nil
}

type stubDecoder struct {
	src Source
	err error
}

func (d stubDecoder) Decode(io.Reader) (Source, error) {
	return d.src, d.err
}

func TestRegistryDecode(t *testing.T) {
	t.Parallel()

	want := &stubSource{sampleRate: 44100, channels: 1}
	reg := NewRegistry()
	reg.Register("wav", stubDecoder{src: want})

	got, err := reg.Decode("wav", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != Source(want) {
		t.Error("Decode must return the registered decoder's source")
	}
}

func TestRegistryDecodeUnknownFormat(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	_, err := reg.Decode("flac", strings.NewReader("payload"))
	if !errors.Is(err, ErrNoDecoder) {
		t.Fatalf("Decode err = %v, want ErrNoDecoder", err)
	}
}

func TestRegistryReplacesDecoder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("wav", stubDecoder{err: errors.New("old")})
	want := &stubSource{}
	reg.Register("wav", stubDecoder{src: want})

	got, err := reg.Decode("wav", strings.NewReader(""))
	if err != nil || got != Source(want) {
		t.Error("the later registration must win")
	}
}

func TestCollect16(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		samples:    []float32{0, 0.5, -0.5, 1, -1},
		sampleRate: 8000,
		channels:   1,
		chunk:      2, // force several partial reads
	}

	got, err := Collect16(src, 3)
	if err != nil {
		t.Fatalf("Collect16: %v", err)
	}

	want := []int16{0, 16383, -16383, 32767, -32767}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCollect16PropagatesErrors(t *testing.T) {
	t.Parallel()

	src := &stubSource{
		samples:    make([]float32, 10),
		sampleRate: 8000,
		channels:   1,
		chunk:      4,
		failAfter:  4,
	}

	if _, err := Collect16(src, 4); err == nil {
		t.Fatal("a mid-stream failure must surface, not truncate silently")
	}
}
