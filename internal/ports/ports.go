package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mpetrun5/subburn/internal/types"
)

// ErrNoAudioTrack reports a source video without any audio stream. Callers
// treat it as a graceful per-video abort rather than a crash.
var ErrNoAudioTrack = errors.New("no audio track in source video")

// ModelSize selects the speech model variant. Larger models trade speed for
// accuracy; the effect is otherwise opaque to this system.
type ModelSize string

const (
	ModelTiny   ModelSize = "tiny"
	ModelBase   ModelSize = "base"
	ModelSmall  ModelSize = "small"
	ModelMedium ModelSize = "medium"
	ModelLarge  ModelSize = "large"
)

func ParseModelSize(s string) (ModelSize, error) {
	m := ModelSize(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge:
		return m, nil
	}
	return "", fmt.Errorf("unknown model size %q (want tiny, base, small, medium or large)", s)
}

type VideoTool interface {
	HasAudioStream(ctx context.Context, inVideo string) (bool, error)
	ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error
	BurnSubtitles(ctx context.Context, inVideo, srtPath, outVideo string) error
}

type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string, model ModelSize) (types.Transcript, error)
}
