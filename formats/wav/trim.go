// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/seqtrim/seqtrim/utils"
)

// TrimFile decodes the PCM WAV at inPath, keeps the [startMs, endMs]
// frame range and writes it to outPath. An end past the natural file end
// is clamped; an empty resulting range is an error.
func TrimFile(inPath, outPath string, startMs, endMs int) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer in.Close()

	d := gowav.NewDecoder(in)
	if !d.IsValidFile() {
		return ErrNotWavFile
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	channels := buf.Format.NumChannels
	rate := buf.Format.SampleRate
	if channels <= 0 || rate <= 0 {
		return ErrNotWavFile
	}
	frames := len(buf.Data) / channels

	startFrame := utils.MsToFrames(startMs, rate)
	endFrame := utils.MsToFrames(endMs, rate)
	if startFrame < 0 {
		startFrame = 0
	}
	if endFrame > frames {
		endFrame = frames
	}
	if startFrame >= endFrame {
		return ErrEmptyTrimRange
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	bitDepth := int(d.BitDepth)
	if buf.SourceBitDepth != 0 {
		bitDepth = buf.SourceBitDepth
	}

	e := gowav.NewEncoder(out, rate, bitDepth, channels, 1)
	err = e.Write(&goaudio.IntBuffer{
		Format:         buf.Format,
		Data:           buf.Data[startFrame*channels : endFrame*channels],
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		out.Close()
		return fmt.Errorf("%w", err)
	}
	if err := e.Close(); err != nil {
		out.Close()
		return fmt.Errorf("%w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// DurationMs returns the duration of the PCM WAV file in milliseconds,
// rounded up.
func DurationMs(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	defer f.Close()

	d := gowav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, ErrNotWavFile
	}

	dur, err := d.Duration()
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	return int((dur + time.Millisecond - 1) / time.Millisecond), nil
}
