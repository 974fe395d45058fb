// SPDX-License-Identifier: EPL-2.0

package memhost

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/seqtrim/seqtrim/audio"
	"github.com/seqtrim/seqtrim/formats/aiff"
	"github.com/seqtrim/seqtrim/formats/mp3"
	"github.com/seqtrim/seqtrim/formats/vorbis"
	"github.com/seqtrim/seqtrim/formats/wav"
	"github.com/seqtrim/seqtrim/plan"
)

const collectBufferSize = 4096

// Pipeline implements plan.Pipeline over temporary WAV files in dir.
// Resources in any registered format are exported to 16-bit PCM WAV,
// trimmed on disk, and reimported as WAV.
type Pipeline struct {
	reg *audio.Registry
	dir string
	log *zap.Logger
	seq int
}

// NewPipeline returns a pipeline writing intermediates into dir. An
// empty dir falls back to the system temp directory; a nil logger falls
// back to zap.NewNop. Decoders for wav, mp3, ogg and aiff are
// pre-registered.
func NewPipeline(dir string, log *zap.Logger) *Pipeline {
	if dir == "" {
		dir = os.TempDir()
	}
	if log == nil {
		log = zap.NewNop()
	}

	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return &Pipeline{reg: reg, dir: dir, log: log}
}

// Registry exposes the decoder registry so callers can add formats.
func (pl *Pipeline) Registry() *audio.Registry { return pl.reg }

func (pl *Pipeline) ExportToIntermediate(res plan.Resource) (string, error) {
	r := res.(*Resource)

	src, err := pl.reg.Decode(r.format, bytes.NewReader(r.data))
	if err != nil {
		return "", fmt.Errorf("export %s: %w", r.name, err)
	}
	defer src.Close()

	samples, err := audio.Collect16(src, collectBufferSize)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", r.name, err)
	}

	pl.seq++
	path := filepath.Join(pl.dir, fmt.Sprintf("%s_%d.wav", r.name, pl.seq))
	if err := wav.WriteFile(path, src.SampleRate(), src.Channels(), samples); err != nil {
		return "", fmt.Errorf("export %s: %w", r.name, err)
	}

	pl.log.Debug("exported intermediate",
		zap.String("resource", r.name),
		zap.String("path", path),
	)
	return path, nil
}

func (pl *Pipeline) TrimIntermediate(path string, startMs, endMs int) (string, error) {
	out := strings.TrimSuffix(path, ".wav") + "_trimmed.wav"
	if err := wav.TrimFile(path, out, startMs, endMs); err != nil {
		return "", fmt.Errorf("%w: %s: %w", plan.ErrTrimFailed, path, err)
	}

	if before, err := os.Stat(path); err == nil {
		if after, err := os.Stat(out); err == nil {
			pl.log.Debug("trimmed intermediate",
				zap.String("path", out),
				zap.Int64("bytes_before", before.Size()),
				zap.Int64("bytes_after", after.Size()),
			)
		}
	}
	return out, nil
}

func (pl *Pipeline) ReimportIntoResource(res plan.Resource, path string) error {
	r := res.(*Resource)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reimport %s: %w", r.name, err)
	}
	durationMs, err := wav.DurationMs(path)
	if err != nil {
		return fmt.Errorf("reimport %s: %w", r.name, err)
	}

	r.data = data
	r.format = "wav"
	r.durationMs = durationMs
	return nil
}

func (pl *Pipeline) DeleteIntermediate(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		pl.log.Warn("failed to delete intermediate",
			zap.String("path", path),
			zap.Error(err),
		)
	}
}
