// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// WriteFile writes interleaved 16-bit PCM samples as a canonical PCM
// WAV file at path.
func WriteFile(path string, sampleRate, channels int, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := encode16(f, sampleRate, channels, samples); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Marshal16 encodes interleaved 16-bit PCM samples as WAV bytes in
// memory.
func Marshal16(sampleRate, channels int, samples []int16) ([]byte, error) {
	var buf seekBuffer
	if err := encode16(&buf, sampleRate, channels, samples); err != nil {
		return nil, err
	}
	return buf.data, nil
}

func encode16(ws io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(s)
	}

	e := gowav.NewEncoder(ws, sampleRate, 16, channels, 1)
	err := e.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	})
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// seekBuffer adapts an in-memory byte slice to the io.WriteSeeker the
// WAV encoder needs for header backpatching.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		if need <= cap(b.data) {
			b.data = b.data[:need]
		} else {
			grown := make([]byte, need, max(need, 2*cap(b.data)))
			copy(grown, b.data)
			b.data = grown
		}
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("wav: invalid seek whence %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("wav: negative seek position %d", pos)
	}
	b.pos = int(pos)
	return pos, nil
}
