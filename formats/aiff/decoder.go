// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/seqtrim/seqtrim/audio"
)

type source struct {
	samples    []float32
	pos        int
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	return n, nil
}

type Decoder struct{}

// Decode reads a whole 16-bit PCM AIFF stream into memory and exposes
// it as an audio.Source.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dec := goaiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16Supported
	}
	format := dec.Format()
	if format == nil {
		return nil, ErrNotAiffFile
	}

	var samples []float32
	buf := &goaudio.IntBuffer{
		Data:   make([]int, 4096),
		Format: format,
	}
	for {
		n, err := dec.PCMBuffer(buf)
		for i := 0; i < n; i++ {
			samples = append(samples, float32(buf.Data[i])/32768.0)
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 || err == io.EOF {
			break
		}
	}

	return &source{
		samples:    samples,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}, nil
}
