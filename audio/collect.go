// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/seqtrim/seqtrim/utils"
)

// Collect16 reads the whole source and returns its samples as 16-bit
// PCM, interleaved, channel count preserved.
//
// bufferSize is the read buffer size in samples (e.g. 4096); larger
// buffers may be more efficient but use more memory.
func Collect16(src Source, bufferSize int) ([]int16, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	// Grow from a rough estimate, re-allocating only when needed.
	pcm16 := make([]int16, 0, src.SampleRate()*src.Channels())
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if cap(pcm16)-len(pcm16) < n {
				grown := make([]int16, len(pcm16), len(pcm16)+max(n, cap(pcm16)))
				copy(grown, pcm16)
				pcm16 = grown
			}

			start := len(pcm16)
			pcm16 = pcm16[:start+n]
			for i := 0; i < n; i++ {
				pcm16[start+i] = utils.FloatToInt16(buf[i])
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return pcm16, nil
}
